// Package redis provides a Redis-backed sequence counter for deployments that
// keep the counter outside the event database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	goredis "github.com/redis/go-redis/v9"
)

// Counter implements storage.Sequencer with INCR, which creates the key at 0
// and increments it atomically on the server.
type Counter struct {
	client *goredis.Client
	key    string
}

// NewCounter creates a counter stored under "counters:<id>".
func NewCounter(addr, password string, db int, id string) *Counter {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewCounterWithClient(rdb, id)
}

// NewCounterWithClient wraps an existing client.
func NewCounterWithClient(client *goredis.Client, id string) *Counter {
	if id == "" {
		id = storage.DefaultCounterID
	}
	return &Counter{client: client, key: fmt.Sprintf("%s:%s", storage.CountersTable, id)}
}

// NextSequence increments the counter and returns the new value.
// A key holding a non-integer value yields storage.ErrCounterCorrupt.
func (c *Counter) NextSequence(ctx context.Context) (int64, error) {
	seq, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		if isNotIntegerErr(err) {
			return 0, fmt.Errorf("%w: key %s: %v", storage.ErrCounterCorrupt, c.key, err)
		}
		return 0, fmt.Errorf("failed to increment counter %s: %w", c.key, err)
	}
	return seq, nil
}

// Ping reports Redis connectivity.
func (c *Counter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *Counter) Close() error {
	return c.client.Close()
}

func isNotIntegerErr(err error) bool {
	var rerr goredis.Error
	if !errors.As(err, &rerr) {
		return false
	}
	msg := rerr.Error()
	return strings.Contains(msg, "not an integer") || strings.Contains(msg, "WRONGTYPE")
}
