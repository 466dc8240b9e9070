package device

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use SQLite or PostgreSQL.
type InMemoryRepository struct {
	mu            sync.RWMutex
	registrations map[string]*Registration // keyed by user ID
}

// NewInMemoryRepository creates a new in-memory registration repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		registrations: make(map[string]*Registration),
	}
}

// Upsert inserts or replaces the registration for reg.UserID.
func (r *InMemoryRepository) Upsert(_ context.Context, reg *Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registrations[reg.UserID] = copyRegistration(reg)
	return nil
}

// FindByUser retrieves the registration for a user.
func (r *InMemoryRepository) FindByUser(_ context.Context, userID string) (*Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[userID]
	if !ok {
		return nil, ErrRegistrationNotFound
	}

	return copyRegistration(reg), nil
}

// ListActive retrieves all active registrations, newest first.
func (r *InMemoryRepository) ListActive(_ context.Context) ([]*Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var regs []*Registration
	for _, reg := range r.registrations {
		if reg.Active {
			regs = append(regs, copyRegistration(reg))
		}
	}

	sort.Slice(regs, func(i, j int) bool {
		return regs[i].RegisteredAt.After(regs[j].RegisteredAt)
	})

	return regs, nil
}

// Count returns the number of stored registrations.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registrations)
}

// copyRegistration returns a copy so callers never share the stored value.
func copyRegistration(reg *Registration) *Registration {
	if reg == nil {
		return nil
	}
	regCopy := *reg
	return &regCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
