// Package like records like events and triggers their notifications.
//
// An event is immutable once written. It snapshots the device token resolved
// for the target user at write time; later token changes never rewrite
// history.
package like

import "time"

// Event is an immutable record of one like action.
type Event struct {
	ID          string
	PhotoID     string
	LikerUserID string
	// Token is the device token resolved for the target user at write
	// time, nil when none was resolvable.
	Token     *string
	CreatedAt time.Time
}

// Field length bounds for caller-supplied identifiers.
const (
	MaxPhotoIDLength = 128
	MaxUserIDLength  = 128
)
