// Package producer generates synthetic hybrid events from the shared sequence
// counter and inserts them into the event store.
package producer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/aevon-lab/hybrid-events/internal/bus"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultSource is the source tag written into every synthetic payload.
	DefaultSource = "ansible"

	StatusEven = "OK"
	StatusOdd  = "WARN"

	idPrefix       = "prd-"
	idAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength       = 8
	maxTemperature = 100
)

// EventInserter is the slice of storage.EventRepository the producer writes through.
type EventInserter interface {
	InsertOne(ctx context.Context, event *v1.Event) (*v1.Event, error)
}

// Options configures a Producer. Zero values select the defaults.
type Options struct {
	Source    string
	Publisher bus.Publisher
	Subject   string

	// Now and Intn are overridable for deterministic tests.
	Now  func() time.Time
	Intn func(n int) int
}

// Producer builds events numbered by a Sequencer and inserts them one at a time.
// It holds no counter state of its own; several producers may share one counter.
type Producer struct {
	id        string
	sequencer storage.Sequencer
	events    EventInserter
	publisher bus.Publisher
	subject   string
	source    string
	now       func() time.Time
	intn      func(n int) int
}

// New creates a producer with a fresh instance id.
func New(sequencer storage.Sequencer, events EventInserter, opts Options) (*Producer, error) {
	if sequencer == nil || events == nil {
		return nil, errors.New("producer requires a sequencer and an event store")
	}
	suffix, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate producer id: %w", err)
	}

	p := &Producer{
		id:        idPrefix + suffix,
		sequencer: sequencer,
		events:    events,
		publisher: opts.Publisher,
		subject:   opts.Subject,
		source:    opts.Source,
		now:       opts.Now,
		intn:      opts.Intn,
	}
	if p.publisher == nil {
		p.publisher = &bus.NoopPublisher{}
	}
	if p.subject == "" {
		p.subject = bus.DefaultSubject
	}
	if p.source == "" {
		p.source = DefaultSource
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.intn == nil {
		p.intn = rand.IntN
	}
	return p, nil
}

// ID returns the instance id used in logs and announcements.
func (p *Producer) ID() string {
	return p.id
}

// BuildEvent returns the synthetic event for seq without persisting it.
func (p *Producer) BuildEvent(seq int64) *v1.Event {
	status := StatusOdd
	if seq%2 == 0 {
		status = StatusEven
	}

	return &v1.Event{
		EventTimestamp: p.now(),
		BusinessID:     BusinessID(seq),
		Payload: v1.Payload{
			"temperature": p.intn(maxTemperature),
			"status":      status,
			"meta": map[string]any{
				"sequence": seq,
				"source":   p.source,
			},
		},
	}
}

// BusinessID derives the business id of the event numbered seq.
func BusinessID(seq int64) string {
	return fmt.Sprintf("id_%d", seq)
}

// InsertNext draws the next sequence number, builds the event and inserts it.
// The returned event carries its store id.
func (p *Producer) InsertNext(ctx context.Context) (*v1.Event, error) {
	seq, err := p.sequencer.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to draw sequence: %w", err)
	}

	stored, err := p.events.InsertOne(ctx, p.BuildEvent(seq))
	if err != nil {
		return nil, fmt.Errorf("failed to insert event seq=%d: %w", seq, err)
	}

	slog.Debug("[Producer] Inserted event",
		"producer_id", p.id,
		"seq", seq,
		"business_id", stored.BusinessID,
		"store_id", stored.StoreID,
	)

	announcement := bus.EventInserted{
		StoreID:        stored.StoreID,
		BusinessID:     stored.BusinessID,
		EventTimestamp: stored.EventTimestamp,
		Origin:         p.id,
	}
	if err := p.publisher.Publish(ctx, p.subject, announcement); err != nil {
		slog.Warn("[Producer] Failed to announce event", "producer_id", p.id, "seq", seq, "error", err)
	}

	return stored, nil
}

// Run calls InsertNext n times, or until ctx is cancelled when n is negative,
// pausing for throttle between iterations. It returns the number of events
// inserted. Cancellation before an iteration or during a pause stops the loop
// and is returned as ctx.Err().
func (p *Producer) Run(ctx context.Context, n int, throttle time.Duration) (int, error) {
	slog.Info("[Producer] Starting", "producer_id", p.id, "count", n, "throttle", throttle, "source", p.source)

	inserted := 0
	for i := 0; n < 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			slog.Info("[Producer] Stopping (context cancelled)", "producer_id", p.id, "inserted", inserted)
			return inserted, err
		}

		if _, err := p.InsertNext(ctx); err != nil {
			return inserted, err
		}
		inserted++

		if n >= 0 && i == n-1 {
			break
		}
		if err := sleep(ctx, throttle); err != nil {
			slog.Info("[Producer] Stopping during throttle", "producer_id", p.id, "inserted", inserted)
			return inserted, err
		}
	}

	slog.Info("[Producer] Finished", "producer_id", p.id, "inserted", inserted)
	return inserted, nil
}

// sleep pauses for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
