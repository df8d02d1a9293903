package postgres

import (
	"fmt"
	"strings"
)

// SQL for the document-shaped hybrid_events and counters tables.

const (
	eventColumns = `store_id, id, event_ts, payload`

	// querySaveEvent inserts one event. store_id is generated by the adapter.
	querySaveEvent = `
		INSERT INTO hybrid_events (store_id, id, event_ts, payload)
		VALUES ($1, $2, $3, $4)
	`

	// queryFindByBusinessID returns the earliest stored event for a business id.
	// Business ids are indexed but not unique.
	queryFindByBusinessID = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		WHERE id = $1
		ORDER BY store_id ASC
		LIMIT 1
	`

	queryFindByStoreID = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		WHERE store_id = $1
	`

	// queryFindByTimestamp is an exact-match lookup, no range semantics.
	queryFindByTimestamp = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		WHERE event_ts = $1
		ORDER BY store_id ASC
		LIMIT 1
	`

	queryFindAll = `
		SELECT ` + eventColumns + `
		FROM hybrid_events
		ORDER BY store_id ASC
	`

	// queryNextSequence increments the counter and returns the new value in a
	// single statement. The first call creates the row with seq = 1.
	queryNextSequence = `
		INSERT INTO counters (id, seq)
		VALUES ($1, 1)
		ON CONFLICT (id) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`

	queryListIndexNames = `
		SELECT indexname
		FROM pg_indexes
		WHERE schemaname = current_schema()
		  AND tablename = $1
	`

	// queryIndexOwner finds the table that holds an index name. Index names
	// are unique per schema, not per table.
	queryIndexOwner = `
		SELECT tablename
		FROM pg_indexes
		WHERE schemaname = current_schema()
		  AND indexname = $1
	`

	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = current_schema()
			  AND table_name = $1
		)
	`
)

// maxRowsPerInsert keeps multi-row inserts below the 65535 bind parameter limit.
const maxRowsPerInsert = 1000

// buildInsertManyQuery returns a multi-row INSERT for rows events.
func buildInsertManyQuery(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO hybrid_events (store_id, id, event_ts, payload) VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * 4
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
	}
	return b.String()
}
