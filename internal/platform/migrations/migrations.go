// Package migrations applies the embedded schema migrations with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var embedded embed.FS

// Dialect selects the SQL flavor and migration set.
type Dialect string

// Supported dialects, named as goose names them.
const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) dir() (string, error) {
	switch d {
	case DialectSQLite:
		return path.Join("sql", "sqlite"), nil
	case DialectPostgres:
		return path.Join("sql", "postgres"), nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// Supported commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// Commands lists the accepted migration commands.
var Commands = []string{CommandUp, CommandDown, CommandStatus, CommandVersion}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Run executes command against db.
func Run(ctx context.Context, db *sql.DB, dialect Dialect, command string, logger *slog.Logger) error {
	if !slices.Contains(Commands, command) {
		return fmt.Errorf("unknown migration command %q (expected one of %v)", command, Commands)
	}
	dir, err := dialect.dir()
	if err != nil {
		return err
	}

	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("correlation_id", uuid.New().String()),
		slog.String("command", command),
		slog.String("dialect", string(dialect)),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedded)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	start := time.Now()
	log.InfoContext(ctx, "starting migration operation")
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		log.ErrorContext(ctx, "migration operation failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	log.InfoContext(ctx, "migration operation completed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect Dialect, logger *slog.Logger) error {
	return Run(ctx, db, dialect, CommandUp, logger)
}

// slogGooseLogger forwards goose output to slog. Fatalf does not exit; the
// error is returned from Run instead.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
