package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// IndexSpec names a single-field ascending secondary index.
type IndexSpec struct {
	Name  string
	Field string
}

// RequiredIndexes are the secondary indexes every event store must have.
// The names are fixed so an operator-managed variant of the same index
// (for example one carrying expiry settings) is recognized and left alone.
var RequiredIndexes = []IndexSpec{
	{Name: "event_ts_1", Field: "event_ts"},
	{Name: "id_1", Field: "id"},
}

// IndexManager enumerates and creates indexes on the events table.
type IndexManager interface {
	ListIndexNames(ctx context.Context) ([]string, error)
	CreateIndex(ctx context.Context, spec IndexSpec) error
}

// EnsureIndexes creates the indexes in specs that do not exist yet.
// An existing index with a matching name is never dropped, recreated or
// altered, whatever its options. Returns the names of created indexes.
func EnsureIndexes(ctx context.Context, m IndexManager, specs []IndexSpec) ([]string, error) {
	names, err := m.ListIndexNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}

	existing := make(map[string]struct{}, len(names))
	for _, n := range names {
		existing[n] = struct{}{}
	}

	var created []string
	for _, spec := range specs {
		if _, ok := existing[spec.Name]; ok {
			slog.Debug("[Bootstrap] Index already present", "index", spec.Name)
			continue
		}
		if err := m.CreateIndex(ctx, spec); err != nil {
			return created, fmt.Errorf("failed to create index %s: %w", spec.Name, err)
		}
		existing[spec.Name] = struct{}{}
		created = append(created, spec.Name)
		slog.Info("[Bootstrap] Created index", "index", spec.Name, "field", spec.Field)
	}

	return created, nil
}
