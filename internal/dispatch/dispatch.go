// Package dispatch sends push notifications through an opaque sender.
//
// Delivery is never part of a request's durability contract: under the
// best-effort policy a sender failure is logged and swallowed, because the
// primary record is already durable by the time dispatch runs.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Policy names how a dispatch failure propagates.
type Policy int

const (
	// BestEffort logs and swallows sender failures; the caller always
	// gets a nil error.
	BestEffort Policy = iota

	// Authoritative returns sender failures to the caller.
	Authoritative
)

// Status is the terminal state of one dispatch attempt.
type Status string

const (
	// StatusSent means the sender accepted the notification.
	StatusSent Status = "sent"
	// StatusFailed means the sender was invoked and reported an error.
	StatusFailed Status = "failed"
	// StatusSkipped means no attempt was made: no token was resolved or
	// no provider is configured. Skipping is not an error.
	StatusSkipped Status = "skipped"
)

// Notification is the payload handed to the sender.
type Notification struct {
	Title string
	Body  string
	// Data identifies the target screen and entity ids so the receiving
	// client can deep-link.
	Data map[string]string
}

// LikeNotification builds the payload for a like on a photo. Text matches
// what the mobile client expects.
func LikeNotification(photoID, userID string) Notification {
	return Notification{
		Title: "Nuevo like en tu foto",
		Body:  fmt.Sprintf("Tu foto (%s) recibió un like", photoID),
		Data: map[string]string{
			"screen":   "profile",
			"photo_id": photoID,
			"user_id":  userID,
		},
	}
}

// Sender delivers a notification to a device token.
type Sender interface {
	Send(ctx context.Context, token string, n Notification) error
}

// DispatcherConfig holds configuration for the Dispatcher.
type DispatcherConfig struct {
	// Sender is the push provider. Nil means no provider credential is
	// configured and every dispatch is skipped.
	Sender Sender

	// Timeout bounds each sender call. Default: 10 seconds.
	Timeout time.Duration

	// Logger for dispatch outcomes.
	Logger zerolog.Logger
}

// Dispatcher decides whether and how to push a notification.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	logger  zerolog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Dispatcher{
		sender:  cfg.Sender,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Configured reports whether a push provider is wired in.
func (d *Dispatcher) Configured() bool {
	return d.sender != nil
}

// Dispatch attempts to deliver n to token under the given policy.
// An empty token or an unconfigured provider skips silently.
func (d *Dispatcher) Dispatch(ctx context.Context, policy Policy, token string, n Notification) (Status, error) {
	if token == "" || d.sender == nil {
		d.logger.Debug().
			Bool("provider_configured", d.sender != nil).
			Msg("dispatch skipped")
		return StatusSkipped, nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, token, n); err != nil {
		if policy == Authoritative {
			return StatusFailed, err
		}
		d.logger.Warn().
			Err(err).
			Str("token_prefix", redact(token)).
			Msg("notification send failed")
		return StatusFailed, nil
	}

	d.logger.Info().
		Str("token_prefix", redact(token)).
		Msg("notification sent")
	return StatusSent, nil
}

func redact(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
