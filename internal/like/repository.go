package like

import "context"

// Repository defines the interface for like event persistence.
// The log is append-only: events are never updated or deleted.
type Repository interface {
	// Record appends a like event.
	Record(ctx context.Context, event *Event) error
}
