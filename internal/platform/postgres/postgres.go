package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/phrazzld/wordwise/internal/platform/sqlkv"
	"github.com/phrazzld/wordwise/internal/store"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Open opens a connection pool to dbURL and verifies it with a ping.
func Open(ctx context.Context, dbURL string, logger *slog.Logger) (*sql.DB, error) {
	if dbURL == "" {
		return nil, errors.New("database URL is empty: check your configuration")
	}

	log := logger.With(
		slog.String("component", "postgres"),
		slog.String("url", MaskURL(dbURL)),
	)

	db, err := sql.Open(DriverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	start := time.Now()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		log.ErrorContext(ctx, "database ping failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("database ping timed out after 5s: %w", err)
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return nil, fmt.Errorf("network error connecting to database: %w", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.InfoContext(ctx, "database connection established",
		"duration_ms", time.Since(start).Milliseconds())
	return db, nil
}

// MaskURL hides the password of a database URL for logging.
func MaskURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
		}
	}
	return parsed.String()
}

// NewKVStore returns a store.KV backed by the kv_entries table of db.
func NewKVStore(db store.DBTX, logger *slog.Logger) *sqlkv.KVStore {
	return sqlkv.NewKVStore(db, squirrel.Dollar, MapError, logger)
}
