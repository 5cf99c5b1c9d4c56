// Package memory provides an in-memory Repository implementation with the
// same semantics as the MongoDB adapter. It backs the service and handler
// tests and is handy for local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/mongodb"
)

// Repository is a thread-safe in-memory document store.
type Repository struct {
	mu        sync.RWMutex
	inventory []models.InventoryItem
	users     []models.User
	schedules map[string]models.Schedule
	audit     []models.AuditLogEntry
	budget    *models.BudgetSnapshot
}

var _ mongodb.Repository = (*Repository)(nil)

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{schedules: make(map[string]models.Schedule)}
}

// ListInventory returns a copy of every inventory item.
func (r *Repository) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.InventoryItem(nil), r.inventory...), nil
}

// GetInventoryItem fetches a single item by id.
func (r *Repository) GetInventoryItem(ctx context.Context, id string) (models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.inventory {
		if item.ID == id {
			return item, nil
		}
	}
	return models.InventoryItem{}, mongodb.ErrNotFound
}

// InsertInventoryItem stores a new inventory item.
func (r *Repository) InsertInventoryItem(ctx context.Context, item models.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inventory = append(r.inventory, item)
	return nil
}

// UpdateInventoryStock sets the stock level of an existing item.
func (r *Repository) UpdateInventoryStock(ctx context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.inventory {
		if r.inventory[i].ID == id {
			r.inventory[i].Stock = stock
			return nil
		}
	}
	return mongodb.ErrNotFound
}

// FindUserByID looks a user up by public id.
func (r *Repository) FindUserByID(ctx context.Context, publicID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == publicID {
			return user, nil
		}
	}
	return models.User{}, mongodb.ErrNotFound
}

// ListUsers returns all users.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.User(nil), r.users...), nil
}

// InsertUser stores a new user.
func (r *Repository) InsertUser(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

// DeleteUser removes a user by public id.
func (r *Repository) DeleteUser(ctx context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, user := range r.users {
		if user.ID == publicID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

// UpdateUserLastLogin stamps the user's last login time.
func (r *Repository) UpdateUserLastLogin(ctx context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == publicID {
			r.users[i].LastLogin = time.Now()
			return nil
		}
	}
	return nil
}

// UpdateUserPIN replaces the user's credential.
func (r *Repository) UpdateUserPIN(ctx context.Context, publicID, pin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == publicID {
			r.users[i].PIN = pin
			return nil
		}
	}
	return mongodb.ErrNotFound
}

// GetSchedule fetches the schedule stored under the given week key.
func (r *Repository) GetSchedule(ctx context.Context, weekKey string) (models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schedule, exists := r.schedules[weekKey]
	if !exists {
		return models.Schedule{}, mongodb.ErrNotFound
	}
	return schedule, nil
}

// UpsertSchedule replaces the week's schedule wholesale.
func (r *Repository) UpsertSchedule(ctx context.Context, schedule models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[schedule.ID] = schedule
	return nil
}

// AppendAuditLog stores an audit record.
func (r *Repository) AppendAuditLog(ctx context.Context, entry models.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audit = append(r.audit, entry)
	return nil
}

// ListAuditLogs returns the most recent entries first.
func (r *Repository) ListAuditLogs(ctx context.Context, limit int64) ([]models.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := append([]models.AuditLogEntry(nil), r.audit...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetBudget fetches the current budget snapshot.
func (r *Repository) GetBudget(ctx context.Context) (models.BudgetSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.budget == nil {
		return models.BudgetSnapshot{}, mongodb.ErrNotFound
	}
	return *r.budget, nil
}

// SaveBudget overwrites the current budget snapshot.
func (r *Repository) SaveBudget(ctx context.Context, snapshot models.BudgetSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budget = &snapshot
	return nil
}

// AuditEntries returns the raw audit log in insertion order, for tests.
func (r *Repository) AuditEntries() []models.AuditLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.AuditLogEntry(nil), r.audit...)
}
