// Package notify dispatches notification events for out-of-band delivery.
// The application only generates and publishes events; an external worker
// turns them into actual email/SMS messages.
package notify

import (
	"context"
	"time"

	"trashapp/internal/logger"
)

// Event is the payload published for each notification.
type Event struct {
	Type      string            `json:"type"`
	Recipient string            `json:"recipient"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Event types.
const (
	EventEmailVerification   = "email.verification"
	EventPasswordReset       = "password.reset"
	EventPickupStatusChanged = "pickup.status_changed"
	EventDriverContact       = "pickup.contact_driver"
)

// Notifier publishes notification events. Implementations must never
// fail the calling request: errors are returned for logging only and
// callers are free to ignore them.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// LogNotifier is the fallback used when no broker is configured; it
// just logs each event so local development still shows the tokens.
type LogNotifier struct{}

// Publish logs the event.
func (LogNotifier) Publish(_ context.Context, event Event) error {
	logger.Get().Infow("notification",
		"type", event.Type,
		"recipient", event.Recipient,
		"data", event.Data,
	)
	return nil
}
