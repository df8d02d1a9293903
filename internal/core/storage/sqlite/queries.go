package sqlite

import (
	"fmt"
	"strings"

	"github.com/aevon-lab/hybrid-events/internal/core/storage"
)

// event_ts is stored as INTEGER unix microseconds so equality lookups are exact.

const (
	eventColumns = `store_id, id, event_ts, payload`

	querySaveEvent = `
		INSERT INTO hybrid_events (store_id, id, event_ts, payload)
		VALUES (?, ?, ?, ?)
	`

	queryFindByBusinessID = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		WHERE id = ?
		ORDER BY store_id ASC
		LIMIT 1
	`

	queryFindByStoreID = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		WHERE store_id = ?
	`

	queryFindByTimestamp = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		WHERE event_ts = ?
		ORDER BY store_id ASC
		LIMIT 1
	`

	queryFindAll = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		ORDER BY store_id ASC
	`

	// queryNextSequence is a single-statement upsert. SQLite coerces text in
	// arithmetic instead of failing, so a non-integer seq is returned unchanged
	// and rejected by the caller.
	queryNextSequence = `
		INSERT INTO counters (id, seq)
		VALUES (?, 1)
		ON CONFLICT (id) DO UPDATE SET seq = CASE
			WHEN typeof(seq) = 'integer' THEN seq + 1
			ELSE seq
		END
		RETURNING seq
	`

	queryListIndexNames = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'index'
		  AND tbl_name = ?
	`

	queryIndexOwner = `
		SELECT tbl_name
		FROM sqlite_master
		WHERE type = 'index'
		  AND name = ?
	`

	queryTableExists = `
		SELECT COUNT(*) > 0
		FROM sqlite_master
		WHERE type = 'table'
		  AND name = ?
	`
)

// maxRowsPerInsert keeps multi-row inserts below SQLite's bind variable limit.
const maxRowsPerInsert = 500

func buildInsertManyQuery(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO hybrid_events (store_id, id, event_ts, payload) VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?)")
	}
	return b.String()
}

func createIndexQuery(spec storage.IndexSpec) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s ASC)",
		quoteIdent(spec.Name), quoteIdent(storage.EventsTable), quoteIdent(spec.Field))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
