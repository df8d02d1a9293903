package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/hybrid-events/internal/core/config"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	"github.com/aevon-lab/hybrid-events/internal/core/storage/postgres"
	"github.com/aevon-lab/hybrid-events/internal/core/storage/redis"
	"github.com/aevon-lab/hybrid-events/internal/core/storage/sqlite"
	"github.com/aevon-lab/hybrid-events/internal/migrations"
)

// eventStore is an EventRepository that can also report connectivity.
type eventStore interface {
	storage.EventRepository
	Ping(ctx context.Context) error
}

// backend bundles the storage components a command needs.
type backend struct {
	db        *sql.DB
	events    eventStore
	sequencer storage.Sequencer

	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openDatabase opens the configured database and returns its migration dialect.
func openDatabase(dbCfg corecfg.DatabaseConfig) (*sql.DB, string, error) {
	switch dbCfg.Type {
	case "postgres":
		db, err := postgres.Open(dbCfg.DSN, dbCfg.MaxOpenConns, dbCfg.MaxIdleConns)
		return db, migrations.DialectPostgres, err
	case "sqlite":
		db, err := sqlite.Open(dbCfg.DSN)
		return db, migrations.DialectSQLite, err
	default:
		return nil, "", fmt.Errorf("unsupported database.type %q", dbCfg.Type)
	}
}

// openBackend connects to the database, migrates it if configured and builds
// the repository and the sequence counter.
func openBackend(ctx context.Context, cfg *corecfg.Config) (*backend, error) {
	db, dialect, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	b := &backend{db: db, closers: []func() error{db.Close}}

	if err := migrations.RunMigrations(db, dialect, cfg.Database.AutoMigrate); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	switch dialect {
	case migrations.DialectPostgres:
		adapter, err := postgres.NewAdapter(ctx, db)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.events = adapter
		b.closers = append(b.closers, adapter.Close)
	case migrations.DialectSQLite:
		store, err := sqlite.NewStore(ctx, db)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.events = store
	}

	switch cfg.Sequence.Backend {
	case "redis":
		counter := redis.NewCounter(cfg.Sequence.Redis.Addr, cfg.Sequence.Redis.Password, cfg.Sequence.Redis.DB, cfg.Sequence.CounterID)
		if err := counter.Ping(ctx); err != nil {
			counter.Close()
			b.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Sequence.Redis.Addr, err)
		}
		b.sequencer = counter
		b.closers = append(b.closers, counter.Close)
	default:
		if dialect == migrations.DialectPostgres {
			b.sequencer = postgres.NewCounter(db, cfg.Sequence.CounterID)
		} else {
			b.sequencer = sqlite.NewCounter(db, cfg.Sequence.CounterID)
		}
	}

	slog.Info("Storage initialized",
		"database_type", cfg.Database.Type,
		"sequence_backend", cfg.Sequence.Backend,
		"counter_id", cfg.Sequence.CounterID,
	)
	return b, nil
}
