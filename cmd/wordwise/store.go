package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordwise/internal/config"
	"github.com/phrazzld/wordwise/internal/platform/migrations"
	"github.com/phrazzld/wordwise/internal/platform/postgres"
	"github.com/phrazzld/wordwise/internal/platform/sqlite"
	"github.com/phrazzld/wordwise/internal/store"
)

// Store drivers accepted in StoreConfig.Driver.
const (
	driverMemory   = "memory"
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

var errNoDatabase = errors.New("the memory store has no migrations")

// openDatabase opens the SQL database behind cfg and returns its migration dialect.
func openDatabase(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*sql.DB, migrations.Dialect, error) {
	switch cfg.Driver {
	case driverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		return db, migrations.DialectSQLite, err
	case driverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, logger)
		return db, migrations.DialectPostgres, err
	case driverMemory:
		return nil, "", errNoDatabase
	default:
		return nil, "", fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// openStore opens the key-value store selected by cfg, migrating SQL
// backends to the latest schema. The returned close function releases it.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.KV, func() error, error) {
	if cfg.Driver == driverMemory {
		logger.Warn("using the in-memory store; progress is lost on restart")
		return store.NewMemoryKV(), func() error { return nil }, nil
	}

	db, dialect, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Up(ctx, db, dialect, logger); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	var kv store.KV
	if dialect == migrations.DialectPostgres {
		kv = postgres.NewKVStore(db, logger)
	} else {
		kv = sqlite.NewKVStore(db, logger)
	}
	return kv, db.Close, nil
}

// runMigrations executes a single migration command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, command string) error {
	logger := slog.Default()

	db, dialect, err := openDatabase(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	return migrations.Run(ctx, db, dialect, command, logger)
}
