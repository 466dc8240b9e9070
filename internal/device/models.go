// Package device provides device registration for push notifications.
//
// At most one registration exists per user identity: registering a new token
// for a known user replaces the old one rather than adding a second row.
package device

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrRegistrationNotFound = errors.New("device registration not found")
)

// Token length bounds. Push tokens from real providers land well inside this
// range; anything outside it is a caller bug.
const (
	MinTokenLength = 16
	MaxTokenLength = 4096
)

// MaxUserIDLength bounds the caller-supplied identity string.
const MaxUserIDLength = 128

// Registration maps a user identity to its current push token.
type Registration struct {
	UserID       string
	Token        string
	Active       bool
	RegisteredAt time.Time
}

// TokenPrefix returns a short redacted form of the token, safe for responses
// and logs.
func (r *Registration) TokenPrefix() string {
	return RedactToken(r.Token)
}

// RedactToken keeps only a short prefix of a push token.
func RedactToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
