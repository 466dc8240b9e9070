package device

import "context"

// Repository defines the interface for registration persistence.
type Repository interface {
	// Upsert atomically inserts or replaces the registration for
	// reg.UserID. The identity is the uniqueness key, not the token.
	Upsert(ctx context.Context, reg *Registration) error

	// FindByUser retrieves the registration for a user.
	// Returns ErrRegistrationNotFound if the user has never registered.
	FindByUser(ctx context.Context, userID string) (*Registration, error)

	// ListActive retrieves all active registrations, newest first.
	ListActive(ctx context.Context) ([]*Registration, error)
}
