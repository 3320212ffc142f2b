// Package repositorytest provides an in-memory UserRepository for tests.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
)

// MemoryUsers is a concurrency-safe in-memory repository.UserRepository that
// enforces login code uniqueness and counts calls.
type MemoryUsers struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byCode  map[string]string
	Reads   int
	Writes  int
	FailErr error
}

var _ repository.UserRepository = (*MemoryUsers)(nil)

// NewMemoryUsers returns an empty repository.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:   make(map[string]*domain.User),
		byCode: make(map[string]string),
	}
}

func (m *MemoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.FailErr != nil {
		return m.FailErr
	}
	if _, taken := m.byCode[user.LoginCode]; taken {
		return repository.ErrDuplicateKey
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	m.store(user)
	return nil
}

func (m *MemoryUsers) UpsertByLoginCode(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.FailErr != nil {
		return m.FailErr
	}
	now := time.Now().UTC()
	if id, ok := m.byCode[user.LoginCode]; ok {
		existing := m.byID[id]
		existing.PasswordHash = user.PasswordHash
		existing.UpdatedAt = now
		*user = *existing
		return nil
	}
	user.CreatedAt, user.UpdatedAt = now, now
	m.store(user)
	return nil
}

func (m *MemoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.FailErr != nil {
		return nil, m.FailErr
	}
	user, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryUsers) GetByLoginCode(_ context.Context, loginCode string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.FailErr != nil {
		return nil, m.FailErr
	}
	id, ok := m.byCode[loginCode]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

// Delete removes a user, simulating deletion after token issuance.
func (m *MemoryUsers) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.byID[id]; ok {
		delete(m.byCode, user.LoginCode)
		delete(m.byID, id)
	}
}

// Put seeds a user directly.
func (m *MemoryUsers) Put(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(user)
}

// ResetCounters zeroes Reads and Writes.
func (m *MemoryUsers) ResetCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads, m.Writes = 0, 0
}

func (m *MemoryUsers) store(user *domain.User) {
	cp := *user
	m.byID[user.ID] = &cp
	m.byCode[user.LoginCode] = user.ID
}
