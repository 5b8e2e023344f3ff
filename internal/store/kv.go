package store

import (
	"context"
	"database/sql"
)

// KV is the persistence contract every backend implements. Put is an upsert;
// Get returns ErrNotFound for a missing key; Delete of a missing key is not
// an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// DBTX abstracts *sql.DB and *sql.Tx for the SQL-backed KV implementations.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
