package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/tacovision/backend/internal/domain/models"
)

type session struct {
	user      models.User
	expiresAt time.Time
}

// SessionStore holds bearer-token sessions in memory. Tokens expire after the
// configured TTL; expired entries are dropped lazily on lookup.
type SessionStore struct {
	sessions map[string]session
	ttl      time.Duration
	mu       sync.RWMutex
	now      func() time.Time
}

// NewSessionStore creates a session store with the given token lifetime.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a fresh token for the user.
func (st *SessionStore) Create(user models.User) string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[token] = session{user: user, expiresAt: st.now().Add(st.ttl)}
	return token
}

// Lookup resolves a token to its user, dropping the session when expired.
func (st *SessionStore) Lookup(token string) (models.User, bool) {
	st.mu.RLock()
	sess, exists := st.sessions[token]
	st.mu.RUnlock()

	if !exists {
		return models.User{}, false
	}
	if st.now().After(sess.expiresAt) {
		st.Revoke(token)
		return models.User{}, false
	}
	return sess.user, true
}

// Revoke removes a token.
func (st *SessionStore) Revoke(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

// RevokeUser removes every session belonging to the given public user id.
func (st *SessionStore) RevokeUser(publicID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for token, sess := range st.sessions {
		if sess.user.ID == publicID {
			delete(st.sessions, token)
		}
	}
}
