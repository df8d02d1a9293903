// Package sqlite provides an embedded SQLite-backed event store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	_ "modernc.org/sqlite" // Register sqlite driver
)

// Store implements storage.EventRepository on SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMicros(value time.Time) int64 {
	return value.UTC().UnixMicro()
}

func fromMicros(value int64) time.Time {
	return time.UnixMicro(value).UTC()
}

// Open opens a SQLite database file with WAL and a busy timeout so concurrent
// writers wait for the lock instead of failing.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	slog.Info("[SQLite] Database opened", "path", path)
	return sqlDB, nil
}

// NewStore creates the event repository and ensures its secondary indexes.
// The hybrid_events table must exist (see internal/migrations).
func NewStore(ctx context.Context, sqlDB *sql.DB) (*Store, error) {
	var exists bool
	if err := sqlDB.QueryRowContext(ctx, queryTableExists, storage.EventsTable).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check schema: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%s table does not exist - did you run migrations?", storage.EventsTable)
	}

	s := &Store{sqlDB: sqlDB}
	if _, err := storage.EnsureIndexes(ctx, s, storage.RequiredIndexes); err != nil {
		return nil, err
	}
	return s, nil
}

// ListIndexNames returns the names of all indexes on the events table.
func (s *Store) ListIndexNames(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, queryListIndexNames, storage.EventsTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateIndex creates an ascending index if no index of that name exists.
// Index names are database-wide, so a name held by another table is an error.
func (s *Store) CreateIndex(ctx context.Context, spec storage.IndexSpec) error {
	var owner string
	err := s.sqlDB.QueryRowContext(ctx, queryIndexOwner, spec.Name).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("look up index %s: %w", spec.Name, err)
	case owner == storage.EventsTable:
		return nil
	default:
		return fmt.Errorf("%w: %s is used by table %s", storage.ErrIndexNameTaken, spec.Name, owner)
	}

	_, err = s.sqlDB.ExecContext(ctx, createIndexQuery(spec))
	return err
}

// FindByBusinessID returns the first event stored with the given business id.
func (s *Store) FindByBusinessID(ctx context.Context, id string) (*v1.Event, bool, error) {
	return s.findOne(ctx, queryFindByBusinessID, id)
}

// FindByStoreID returns storage.ErrInvalidIdentifier for malformed ids without querying.
func (s *Store) FindByStoreID(ctx context.Context, storeID string) (*v1.Event, bool, error) {
	id, err := storage.ParseStoreID(storeID)
	if err != nil {
		return nil, false, err
	}
	return s.findOne(ctx, queryFindByStoreID, id)
}

// FindByTimestamp is an exact match on event_ts at microsecond precision.
func (s *Store) FindByTimestamp(ctx context.Context, ts time.Time) (*v1.Event, bool, error) {
	return s.findOne(ctx, queryFindByTimestamp, toMicros(v1.NormalizeTimestamp(ts)))
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*v1.Event, bool, error) {
	evt, err := scanEvent(s.sqlDB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query event: %w", err)
	}
	return evt, true, nil
}

// FindAll returns every stored event ordered by store id.
func (s *Store) FindAll(ctx context.Context) ([]*v1.Event, error) {
	rows, err := s.sqlDB.QueryContext(ctx, queryFindAll)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []*v1.Event{}
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// InsertOne persists an event and returns it with its new StoreID.
func (s *Store) InsertOne(ctx context.Context, event *v1.Event) (*v1.Event, error) {
	evt, err := storage.ValidateForInsert(event)
	if err != nil {
		return nil, err
	}
	storeID, err := storage.NewStoreID()
	if err != nil {
		return nil, err
	}
	args, err := eventArgs(storeID, evt)
	if err != nil {
		return nil, err
	}

	if _, err := s.sqlDB.ExecContext(ctx, querySaveEvent, args...); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	evt.StoreID = storeID

	slog.Debug("[SQLite] Saved event", "business_id", evt.BusinessID, "store_id", storeID)
	return evt, nil
}

// InsertMany validates every event and writes them in one transaction.
func (s *Store) InsertMany(ctx context.Context, events []*v1.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(events)*4)
	for i, event := range events {
		evt, err := storage.ValidateForInsert(event)
		if err != nil {
			return 0, fmt.Errorf("event %d: %w", i, err)
		}
		storeID, err := storage.NewStoreID()
		if err != nil {
			return 0, err
		}
		row, err := eventArgs(storeID, evt)
		if err != nil {
			return 0, fmt.Errorf("event %d: %w", i, err)
		}
		args = append(args, row...)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(events); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(events))
		if _, err := tx.ExecContext(ctx, buildInsertManyQuery(end-start), args[start*4:end*4]...); err != nil {
			return 0, fmt.Errorf("insert events: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit events: %w", err)
	}
	return len(events), nil
}

// Ping reports database connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*v1.Event, error) {
	var (
		evt         v1.Event
		micros      int64
		payloadJSON sql.NullString
	)
	if err := row.Scan(&evt.StoreID, &evt.BusinessID, &micros, &payloadJSON); err != nil {
		return nil, err
	}
	payload, err := v1.DecodePayload([]byte(payloadJSON.String))
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	evt.EventTimestamp = fromMicros(micros)
	evt.Payload = payload
	return &evt, nil
}

func eventArgs(storeID string, evt *v1.Event) ([]any, error) {
	payloadJSON, err := v1.EncodePayload(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return []any{storeID, evt.BusinessID, toMicros(evt.EventTimestamp), string(payloadJSON)}, nil
}
