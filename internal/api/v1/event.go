package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampPrecision is the resolution at which event timestamps are stored.
// Both the Postgres and SQLite stores keep microseconds.
const TimestampPrecision = time.Microsecond

// Payload is the schemaless body of an event.
// Values are the JSON tagged union: nil, bool, json.Number (or any Go number),
// string, map[string]any and []any, nested arbitrarily.
type Payload map[string]any

// Event is a time-stamped hybrid event.
type Event struct {
	// StoreID is assigned by the storage layer on insert. It is never taken
	// from the caller and is omitted until the event has been persisted.
	StoreID string `json:"storeId,omitempty"`

	// EventTimestamp is when the event happened (caller supplied, not unique).
	EventTimestamp time.Time `json:"event_ts"`

	// BusinessID is the caller-meaningful identifier. It is indexed for lookups
	// but uniqueness is not enforced.
	BusinessID string `json:"id"`

	Payload Payload `json:"payload"`
}

// eventJSON is the inbound wire shape. It accepts the timestamp aliases older
// clients send and has no storeId field, so a caller-supplied one is dropped.
type eventJSON struct {
	EventTS        *time.Time      `json:"event_ts,omitempty"`
	EventTsCamel   *time.Time      `json:"eventTs,omitempty"`
	EventTimestamp *time.Time      `json:"eventTimestamp,omitempty"`
	BusinessID     string          `json:"id"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// UnmarshalJSON decodes an event, keeping payload numbers as json.Number.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	evt := Event{BusinessID: raw.BusinessID}
	switch {
	case raw.EventTS != nil:
		evt.EventTimestamp = *raw.EventTS
	case raw.EventTsCamel != nil:
		evt.EventTimestamp = *raw.EventTsCamel
	case raw.EventTimestamp != nil:
		evt.EventTimestamp = *raw.EventTimestamp
	}

	payload, err := DecodePayload(raw.Payload)
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	evt.Payload = payload

	*e = evt
	return nil
}

// DecodePayload parses a JSON object into a Payload. Empty input and JSON null
// both yield an empty payload.
func DecodePayload(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

// EncodePayload marshals a payload, writing {} for a nil payload.
func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// Validate ensures the event carries the fields required for persistence.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.BusinessID) == "" {
		return fmt.Errorf("id is required")
	}

	if e.EventTimestamp.IsZero() {
		return fmt.Errorf("event_ts is required")
	}

	return nil
}

// Normalize returns a copy of the event ready for storage: UTC timestamp at
// stored precision, non-nil payload and no store id.
func (e *Event) Normalize() *Event {
	out := *e
	out.StoreID = ""
	out.EventTimestamp = NormalizeTimestamp(e.EventTimestamp)
	if out.Payload == nil {
		out.Payload = Payload{}
	}
	return &out
}

// NormalizeTimestamp converts ts to UTC and truncates it to TimestampPrecision.
func NormalizeTimestamp(ts time.Time) time.Time {
	return ts.UTC().Truncate(TimestampPrecision)
}
