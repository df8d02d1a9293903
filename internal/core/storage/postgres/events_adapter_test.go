package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter_BootstrapsMissingIndexes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	expectPrepares(mock)
	mock.ExpectQuery(regexp.QuoteMeta(queryListIndexNames)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"indexname"}).
			AddRow("hybrid_events_pkey").
			AddRow("event_ts_1"))
	mock.ExpectQuery(regexp.QuoteMeta(queryIndexOwner)).
		WithArgs("id_1").
		WillReturnRows(sqlmock.NewRows([]string{"tablename"}))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS "id_1" ON "hybrid_events" ("id" ASC)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	adapter, err := NewAdapter(context.Background(), db)
	require.NoError(t, err)
	require.NotNil(t, adapter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewAdapter_IndexNameOwnedByAnotherTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	expectPrepares(mock)
	mock.ExpectQuery(regexp.QuoteMeta(queryListIndexNames)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"indexname"}).AddRow("event_ts_1"))
	mock.ExpectQuery(regexp.QuoteMeta(queryIndexOwner)).
		WithArgs("id_1").
		WillReturnRows(sqlmock.NewRows([]string{"tablename"}).AddRow("orders"))

	_, err = NewAdapter(context.Background(), db)
	require.ErrorIs(t, err, storage.ErrIndexNameTaken)
	require.ErrorContains(t, err, "orders")
}

func TestAdapter_CreateIndex(t *testing.T) {
	spec := storage.IndexSpec{Name: "id_1", Field: "id"}
	createQuery := regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS "id_1" ON "hybrid_events" ("id" ASC)`)

	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock)
		wantErr    error
	}{
		{
			name: "free name is created",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryIndexOwner)).
					WithArgs("id_1").
					WillReturnRows(sqlmock.NewRows([]string{"tablename"}))
				mock.ExpectExec(createQuery).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "already on the events table",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryIndexOwner)).
					WithArgs("id_1").
					WillReturnRows(sqlmock.NewRows([]string{"tablename"}).AddRow(storage.EventsTable))
			},
		},
		{
			name: "name owned by another table",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryIndexOwner)).
					WithArgs("id_1").
					WillReturnRows(sqlmock.NewRows([]string{"tablename"}).AddRow("orders"))
			},
			wantErr: storage.ErrIndexNameTaken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tc.mockResult(mock)
			a := &Adapter{db: db}
			err = a.CreateIndex(context.Background(), spec)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewAdapter_AllIndexesPresentCreatesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	expectPrepares(mock)
	mock.ExpectQuery(regexp.QuoteMeta(queryListIndexNames)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"indexname"}).
			AddRow("event_ts_1").
			AddRow("id_1"))

	_, err = NewAdapter(context.Background(), db)
	require.NoError(t, err)
	// Any CREATE INDEX would be an unexpected call.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewAdapter_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs(storage.EventsTable).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = NewAdapter(context.Background(), db)
	require.ErrorContains(t, err, "did you run migrations")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_InsertOne(t *testing.T) {
	ts := time.Date(2026, 1, 30, 12, 34, 56, 0, time.UTC)

	tests := []struct {
		name       string
		event      *v1.Event
		mockResult func(mock sqlmock.Sqlmock)
		assertions func(t *testing.T, got *v1.Event, err error)
	}{
		{
			name: "success assigns store id",
			event: &v1.Event{
				BusinessID:     "id_1",
				EventTimestamp: ts,
				Payload:        v1.Payload{"temperature": 51, "status": "OK"},
			},
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(querySaveEvent)).
					WithArgs(sqlmock.AnyArg(), "id_1", ts, `{"status":"OK","temperature":51}`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			assertions: func(t *testing.T, got *v1.Event, err error) {
				require.NoError(t, err)
				_, parseErr := storage.ParseStoreID(got.StoreID)
				require.NoError(t, parseErr)
				require.Equal(t, "id_1", got.BusinessID)
				require.Equal(t, ts, got.EventTimestamp)
			},
		},
		{
			name: "caller store id is replaced",
			event: &v1.Event{
				StoreID:        "00000000-0000-0000-0000-000000000001",
				BusinessID:     "id_2",
				EventTimestamp: ts,
			},
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(querySaveEvent)).
					WithArgs(sqlmock.AnyArg(), "id_2", ts, `{}`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			assertions: func(t *testing.T, got *v1.Event, err error) {
				require.NoError(t, err)
				require.NotEqual(t, "00000000-0000-0000-0000-000000000001", got.StoreID)
			},
		},
		{
			name:  "missing business id writes nothing",
			event: &v1.Event{EventTimestamp: ts},
			assertions: func(t *testing.T, got *v1.Event, err error) {
				require.ErrorIs(t, err, storage.ErrInvalidEvent)
				require.Nil(t, got)
			},
		},
		{
			name:  "missing timestamp writes nothing",
			event: &v1.Event{BusinessID: "id_3"},
			assertions: func(t *testing.T, got *v1.Event, err error) {
				require.ErrorIs(t, err, storage.ErrInvalidEvent)
				require.Nil(t, got)
			},
		},
		{
			name: "storage failure is wrapped",
			event: &v1.Event{
				BusinessID:     "id_4",
				EventTimestamp: ts,
			},
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(querySaveEvent)).
					WillReturnError(errors.New("connection reset"))
			},
			assertions: func(t *testing.T, got *v1.Event, err error) {
				require.ErrorContains(t, err, "failed to save event")
				require.Nil(t, got)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			if tc.mockResult != nil {
				tc.mockResult(mock)
			}

			got, err := adapter.InsertOne(context.Background(), tc.event)
			tc.assertions(t, got, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_FindByBusinessID(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	storeID, err := storage.NewStoreID()
	require.NoError(t, err)
	ts := time.Date(2026, 1, 30, 12, 34, 56, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByBusinessID)).
		WithArgs("id_1").
		WillReturnRows(sqlmock.NewRows(eventRowColumns()).
			AddRow(storeID, "id_1", ts, []byte(`{"temperature":51,"status":"OK"}`)))

	evt, found, err := adapter.FindByBusinessID(context.Background(), "id_1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, storeID, evt.StoreID)
	require.Equal(t, "id_1", evt.BusinessID)
	require.Equal(t, ts, evt.EventTimestamp)
	require.Equal(t, json.Number("51"), evt.Payload["temperature"])
	require.Equal(t, "OK", evt.Payload["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindByBusinessID_NotFound(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByBusinessID)).
		WithArgs("nonexistent").
		WillReturnRows(sqlmock.NewRows(eventRowColumns()))

	evt, found, err := adapter.FindByBusinessID(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, evt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindByStoreID_InvalidFormatSkipsLookup(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	_, _, err := adapter.FindByStoreID(context.Background(), "not-a-valid-id-format")
	require.ErrorIs(t, err, storage.ErrInvalidIdentifier)
	// No query was expected, so none may have been issued.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindByStoreID(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	storeID, err := storage.NewStoreID()
	require.NoError(t, err)
	ts := time.Date(2026, 1, 30, 12, 34, 56, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByStoreID)).
		WithArgs(storeID).
		WillReturnRows(sqlmock.NewRows(eventRowColumns()).
			AddRow(storeID, "id_9", ts, nil))

	evt, found, err := adapter.FindByStoreID(context.Background(), storeID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "id_9", evt.BusinessID)
	require.NotNil(t, evt.Payload)
	require.Empty(t, evt.Payload)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindByTimestamp_NormalizesArgument(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	loc := time.FixedZone("UTC+2", 2*60*60)
	query := time.Date(2026, 1, 30, 14, 34, 56, 999, loc)
	stored := time.Date(2026, 1, 30, 12, 34, 56, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryFindByTimestamp)).
		WithArgs(stored).
		WillReturnRows(sqlmock.NewRows(eventRowColumns()))

	_, found, err := adapter.FindByTimestamp(context.Background(), query)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindAll(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	ts := time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)
	id1, _ := storage.NewStoreID()
	id2, _ := storage.NewStoreID()

	mock.ExpectQuery(regexp.QuoteMeta(queryFindAll)).
		WillReturnRows(sqlmock.NewRows(eventRowColumns()).
			AddRow(id1, "id_1", ts, []byte(`{"status":"WARN"}`)).
			AddRow(id2, "id_2", ts.Add(time.Second), []byte(`{"status":"OK"}`))).
		RowsWillBeClosed()

	events, err := adapter.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "id_1", events[0].BusinessID)
	require.Equal(t, "WARN", events[0].Payload["status"])
	require.Equal(t, "id_2", events[1].BusinessID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_InsertMany(t *testing.T) {
	ts := time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)

	t.Run("empty input is a no-op", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		n, err := adapter.InsertMany(context.Background(), nil)
		require.NoError(t, err)
		require.Zero(t, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single transaction", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(buildInsertManyQuery(2))).
			WithArgs(
				sqlmock.AnyArg(), "id_1", ts, `{"a":1}`,
				sqlmock.AnyArg(), "id_2", ts, `{}`,
			).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		n, err := adapter.InsertMany(context.Background(), []*v1.Event{
			{BusinessID: "id_1", EventTimestamp: ts, Payload: v1.Payload{"a": 1}},
			{BusinessID: "id_2", EventTimestamp: ts},
		})
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid event rejects batch before writing", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		n, err := adapter.InsertMany(context.Background(), []*v1.Event{
			{BusinessID: "id_1", EventTimestamp: ts},
			{EventTimestamp: ts},
		})
		require.ErrorIs(t, err, storage.ErrInvalidEvent)
		require.ErrorContains(t, err, "event 1")
		require.Zero(t, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure rolls back", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(buildInsertManyQuery(1))).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		n, err := adapter.InsertMany(context.Background(), []*v1.Event{
			{BusinessID: "id_1", EventTimestamp: ts},
		})
		require.ErrorContains(t, err, "failed to insert events")
		require.Zero(t, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuildInsertManyQuery(t *testing.T) {
	require.Equal(t,
		"INSERT INTO hybrid_events (store_id, id, event_ts, payload) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8)",
		buildInsertManyQuery(2))
}

func TestAdapter_CloseClosesStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPrepare(regexp.QuoteMeta(querySaveEvent)).WillBeClosed()
	stmtSave, err := db.Prepare(querySaveEvent)
	require.NoError(t, err)

	mock.ExpectPrepare(regexp.QuoteMeta(queryFindAll)).WillBeClosed()
	stmtFindAll, err := db.Prepare(queryFindAll)
	require.NoError(t, err)

	adapter := &Adapter{
		db:            db,
		stmtSaveEvent: stmtSave,
		stmtFindAll:   stmtFindAll,
	}

	require.NoError(t, adapter.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:                  db,
		stmtSaveEvent:       mustPrepareStmt(t, db, mock, querySaveEvent),
		stmtFindByBusiness:  mustPrepareStmt(t, db, mock, queryFindByBusinessID),
		stmtFindByStoreID:   mustPrepareStmt(t, db, mock, queryFindByStoreID),
		stmtFindByTimestamp: mustPrepareStmt(t, db, mock, queryFindByTimestamp),
		stmtFindAll:         mustPrepareStmt(t, db, mock, queryFindAll),
	}

	return adapter, mock, db
}

func expectPrepares(mock sqlmock.Sqlmock) {
	for _, q := range []string{
		querySaveEvent,
		queryFindByBusinessID,
		queryFindByStoreID,
		queryFindByTimestamp,
		queryFindAll,
	} {
		mock.ExpectPrepare(regexp.QuoteMeta(q))
	}
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)

	return stmt
}

func eventRowColumns() []string {
	return []string{"store_id", "id", "event_ts", "payload"}
}
