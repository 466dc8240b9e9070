package like

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use SQLite or PostgreSQL.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events []*Event
}

// NewInMemoryRepository creates a new in-memory like event repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Record appends a like event.
func (r *InMemoryRepository) Record(_ context.Context, event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, copyEvent(event))
	return nil
}

// Events returns a copy of all recorded events in insertion order.
func (r *InMemoryRepository) Events() []*Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, copyEvent(e))
	}
	return events
}

func copyEvent(e *Event) *Event {
	if e == nil {
		return nil
	}
	eventCopy := *e
	if e.Token != nil {
		token := *e.Token
		eventCopy.Token = &token
	}
	return &eventCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
