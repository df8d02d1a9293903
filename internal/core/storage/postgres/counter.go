package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aevon-lab/hybrid-events/internal/core/storage"
)

// Counter implements storage.Sequencer on the counters table.
// Each call is one upsert statement, so concurrent producers in any number
// of processes never observe the same value.
type Counter struct {
	db *sql.DB
	id string
}

// NewCounter returns a sequencer for the counter row with the given id.
func NewCounter(db *sql.DB, id string) *Counter {
	if id == "" {
		id = storage.DefaultCounterID
	}
	return &Counter{db: db, id: id}
}

// NextSequence atomically increments the counter and returns the new value.
func (c *Counter) NextSequence(ctx context.Context) (int64, error) {
	var raw interface{}
	if err := c.db.QueryRowContext(ctx, queryNextSequence, c.id).Scan(&raw); err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", c.id, err)
	}
	return storage.CounterValue(raw)
}
