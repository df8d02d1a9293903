package postgres

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a (store_id, id, event_ts, payload) row into an Event.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.Event, error) {
	var (
		evt         v1.Event
		eventTS     time.Time
		payloadJSON []byte
	)

	if err := row.Scan(&evt.StoreID, &evt.BusinessID, &eventTS, &payloadJSON); err != nil {
		return nil, err
	}

	payload, err := v1.DecodePayload(payloadJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	evt.EventTimestamp = eventTS.UTC()
	evt.Payload = payload
	return &evt, nil
}

// eventArgs returns the bind arguments for one normalized event.
func eventArgs(storeID string, evt *v1.Event) ([]interface{}, error) {
	payloadJSON, err := v1.EncodePayload(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return []interface{}{storeID, evt.BusinessID, evt.EventTimestamp, string(payloadJSON)}, nil
}
