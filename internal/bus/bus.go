// Package bus announces stored events to other services.
package bus

import (
	"context"
	"time"
)

// DefaultSubject is the NATS subject inserted events are announced on.
const DefaultSubject = "hybrid.events.inserted"

// EventInserted is the announcement body for one persisted event.
type EventInserted struct {
	StoreID        string    `json:"storeId"`
	BusinessID     string    `json:"id"`
	EventTimestamp time.Time `json:"event_ts"`

	// Origin is "api" for caller-supplied events or the producer instance id.
	Origin string `json:"origin"`
}

// Publisher is the interface for emitting announcements.
type Publisher interface {
	Publish(ctx context.Context, subject string, msg any) error
	Close() error
}

// NoopPublisher is a Publisher that does nothing (used when NATS is not configured).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, subject string, msg any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
