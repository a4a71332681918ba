// Package store holds reconciled user records for the lifetime of the
// process. Records live in memory only; durability is out of scope.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skolar/auth-gateway/internal/models"
)

// Memory is a mutex-guarded in-memory user table. The raw map is never
// exposed; all access goes through the methods below.
type Memory struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users: make(map[string]models.User),
		now:   time.Now,
	}
}

// FindByID returns the user with the given id, or false if absent.
func (m *Memory) FindByID(id string) (*models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, false
	}
	return &u, true
}

// FindByEmail returns the first user with the given email, or false if none.
// Email is not unique across providers; this is a convenience lookup only.
func (m *Memory) FindByEmail(email string) (*models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, true
		}
	}
	return nil, false
}

// FindByProviderIdentity returns the user owning the (provider, providerID)
// pair, or false if absent.
func (m *Memory) FindByProviderIdentity(provider models.Provider, providerID string) (*models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.findByProviderLocked(provider, providerID)
	if !ok {
		return nil, false
	}
	user := u
	return &user, true
}

// UpsertFromProfile reconciles a normalized provider profile into a user
// record. An existing record for the same (provider, providerID) pair is
// returned unchanged; otherwise a new record is created. The check and the
// insert run under a single exclusive lock, so concurrent identical callbacks
// cannot create duplicates.
func (m *Memory) UpsertFromProfile(provider models.Provider, profile models.NormalizedProfile) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.findByProviderLocked(provider, profile.ProviderID); ok {
		return existing
	}

	now := m.now().UTC()
	user := models.User{
		ID:         uuid.NewString(),
		Email:      profile.Email,
		Name:       profile.Name,
		Avatar:     profile.Avatar,
		Provider:   provider,
		ProviderID: profile.ProviderID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.users[user.ID] = user
	return user
}

// Update merges the non-nil fields of upd into the user with the given id and
// refreshes UpdatedAt. Returns false if the id is unknown.
func (m *Memory) Update(id string, upd models.UserUpdate) (*models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, false
	}

	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	u.UpdatedAt = m.now().UTC()

	m.users[id] = u
	return &u, true
}

// Delete removes the user with the given id, reporting whether it existed.
func (m *Memory) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.users[id]
	if ok {
		delete(m.users, id)
	}
	return ok
}

// ListAll returns a snapshot of every user record.
func (m *Memory) ListAll() []models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out
}

// Count returns the number of user records.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.users)
}

// findByProviderLocked scans for a (provider, providerID) match. Callers must
// hold at least a read lock.
func (m *Memory) findByProviderLocked(provider models.Provider, providerID string) (models.User, bool) {
	for _, u := range m.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return u, true
		}
	}
	return models.User{}, false
}
