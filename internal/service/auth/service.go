package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/mongodb"
)

// ErrInvalidCredentials indicates the id/pin pair does not match any user.
var ErrInvalidCredentials = errors.New("invalid user id or pin")

// ErrInvalidUser indicates a user payload failed validation.
var ErrInvalidUser = errors.New("invalid user")

// ErrDuplicateUserID indicates the public id is already taken.
var ErrDuplicateUserID = errors.New("user id already exists")

var (
	userIDPattern = regexp.MustCompile(`^\d{1,4}$`)
	pinPattern    = regexp.MustCompile(`^\d{4}$`)
)

// Service handles PIN login, sessions and user administration.
type Service struct {
	repo     mongodb.Repository
	sessions *SessionStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new auth service instance.
func NewService(repo mongodb.Repository, sessions *SessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sessions: sessions, logger: logger, now: time.Now}
}

// Login validates the id/pin pair, stamps the last login and issues a session
// token. Lookup failure and pin mismatch are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, publicID, pin string) (string, models.User, error) {
	user, err := s.repo.FindUserByID(ctx, publicID)
	if errors.Is(err, mongodb.ErrNotFound) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, err
	}

	if user.PIN != pin {
		return "", models.User{}, ErrInvalidCredentials
	}

	if err := s.repo.UpdateUserLastLogin(ctx, publicID); err != nil {
		s.logger.Warn("failed to stamp last login", zap.String("user", publicID), zap.Error(err))
	}
	user.LastLogin = s.now()

	token := s.sessions.Create(user)
	s.logger.Info("user logged in", zap.String("user", publicID), zap.String("role", string(user.Role)))
	return token, user, nil
}

// Logout revokes the session token.
func (s *Service) Logout(token string) {
	s.sessions.Revoke(token)
}

// UserFromToken resolves a bearer token to its user.
func (s *Service) UserFromToken(token string) (models.User, bool) {
	return s.sessions.Lookup(token)
}

// ChangePIN lets a user rotate their own credential after verifying the
// current one. Live sessions survive; only the stored pin changes.
func (s *Service) ChangePIN(ctx context.Context, actor models.User, currentPIN, newPIN string) error {
	if !pinPattern.MatchString(newPIN) {
		return fmt.Errorf("%w: pin must be exactly 4 digits", ErrInvalidUser)
	}

	user, err := s.repo.FindUserByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user.PIN != currentPIN {
		return ErrInvalidCredentials
	}

	if err := s.repo.UpdateUserPIN(ctx, actor.ID, newPIN); err != nil {
		return err
	}

	s.audit(ctx, actor.Name, models.ActionUpdatedPIN, actor.ID)
	return nil
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser validates and stores a new account.
func (s *Service) CreateUser(ctx context.Context, actor models.User, user models.User) (models.User, error) {
	switch {
	case !userIDPattern.MatchString(user.ID):
		return models.User{}, fmt.Errorf("%w: id must be 1-4 digits", ErrInvalidUser)
	case user.Name == "":
		return models.User{}, fmt.Errorf("%w: name is required", ErrInvalidUser)
	case !user.Role.Valid():
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, user.Role)
	case !pinPattern.MatchString(user.PIN):
		return models.User{}, fmt.Errorf("%w: pin must be exactly 4 digits", ErrInvalidUser)
	}

	if _, err := s.repo.FindUserByID(ctx, user.ID); err == nil {
		return models.User{}, ErrDuplicateUserID
	} else if !errors.Is(err, mongodb.ErrNotFound) {
		return models.User{}, err
	}

	user.DocID = primitive.NewObjectID().Hex()
	user.LastLogin = s.now()
	if err := s.repo.InsertUser(ctx, user); err != nil {
		return models.User{}, err
	}

	s.audit(ctx, actor.Name, models.ActionCreatedUser, user.Name)
	return user, nil
}

// DeleteUser removes an account and revokes its live sessions.
func (s *Service) DeleteUser(ctx context.Context, actor models.User, publicID string) error {
	user, err := s.repo.FindUserByID(ctx, publicID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, publicID); err != nil {
		return err
	}
	s.sessions.RevokeUser(publicID)

	s.audit(ctx, actor.Name, models.ActionDeletedUser, user.Name)
	return nil
}

func (s *Service) audit(ctx context.Context, user, action, item string) {
	entry := models.AuditLogEntry{
		ID:        primitive.NewObjectID().Hex(),
		User:      user,
		Action:    action,
		Item:      item,
		Timestamp: s.now(),
	}
	if err := s.repo.AppendAuditLog(ctx, entry); err != nil {
		s.logger.Error("failed to append audit log", zap.String("action", action), zap.Error(err))
	}
}
