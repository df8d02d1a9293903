package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/google/uuid"
)

var (
	// ErrInvalidEvent is returned when an event misses id or event_ts. Nothing is written.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidIdentifier is returned when a store id is not in the store's id format.
	ErrInvalidIdentifier = errors.New("invalid store id")

	// ErrCounterCorrupt is returned when the sequence counter holds a non-integer value.
	ErrCounterCorrupt = errors.New("sequence counter is not numeric")

	// ErrIndexNameTaken is returned when a required index name already belongs
	// to another table. Index names are shared by every table in a schema.
	ErrIndexNameTaken = errors.New("index name taken")
)

// Table and index names shared by every document store.
const (
	EventsTable   = "hybrid_events"
	CountersTable = "counters"

	// DefaultCounterID is the well-known key of the event sequence counter.
	DefaultCounterID = "hybrid_events_id_seq"
)

// EventRepository provides CRUD and point lookups over stored events.
// Find* methods report absence with found=false and a nil error.
type EventRepository interface {
	FindByBusinessID(ctx context.Context, id string) (*v1.Event, bool, error)
	FindByStoreID(ctx context.Context, storeID string) (*v1.Event, bool, error)
	FindByTimestamp(ctx context.Context, ts time.Time) (*v1.Event, bool, error)

	// FindAll materializes every stored event. There is no pagination.
	FindAll(ctx context.Context) ([]*v1.Event, error)

	// InsertOne validates and persists the event and returns a copy annotated
	// with its newly assigned StoreID.
	InsertOne(ctx context.Context, event *v1.Event) (*v1.Event, error)

	// InsertMany persists events in one batched write and returns the number
	// written. An empty slice is a no-op.
	InsertMany(ctx context.Context, events []*v1.Event) (int, error)
}

// Sequencer hands out strictly increasing, never repeated sequence numbers.
// Implementations must increment atomically inside the store.
type Sequencer interface {
	NextSequence(ctx context.Context) (int64, error)
}

// NewStoreID returns a fresh time-ordered store id.
func NewStoreID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate store id: %w", err)
	}
	return id.String(), nil
}

// ParseStoreID validates a store id and returns it in canonical form.
func ParseStoreID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return id.String(), nil
}

// ValidateForInsert normalizes an event for storage or returns ErrInvalidEvent.
func ValidateForInsert(event *v1.Event) (*v1.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return event.Normalize(), nil
}

// CounterValue converts a raw counter value read from a store into an int64.
// Integral floats are accepted. Non-numeric values and fractional numbers are
// reported as ErrCounterCorrupt, since a fraction cannot come from increments.
func CounterValue(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrCounterCorrupt, v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrCounterCorrupt, raw, raw)
	}
}
