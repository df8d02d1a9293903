package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aevon-lab/hybrid-events/internal/core/storage"
)

// Counter implements storage.Sequencer on the counters table.
type Counter struct {
	sqlDB *sql.DB
	id    string
}

// NewCounter returns a sequencer for the counter row with the given id.
func NewCounter(sqlDB *sql.DB, id string) *Counter {
	if id == "" {
		id = storage.DefaultCounterID
	}
	return &Counter{sqlDB: sqlDB, id: id}
}

// NextSequence increments and returns the counter in one statement.
func (c *Counter) NextSequence(ctx context.Context) (int64, error) {
	var raw any
	if err := c.sqlDB.QueryRowContext(ctx, queryNextSequence, c.id).Scan(&raw); err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", c.id, err)
	}
	return storage.CounterValue(raw)
}
