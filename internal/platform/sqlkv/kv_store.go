// Package sqlkv implements store.KV on a SQL table shared by the SQLite and
// PostgreSQL backends. Both dialects accept the same upsert syntax.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/phrazzld/wordwise/internal/store"
)

// TableName is the table created by the migrations.
const TableName = "kv_entries"

// ErrorMapper translates driver errors into store errors.
type ErrorMapper func(error) error

// KVStore implements store.KV on a kv_entries table.
type KVStore struct {
	db       store.DBTX
	qb       squirrel.StatementBuilderType
	mapError ErrorMapper
	logger   *slog.Logger
	now      func() time.Time
}

var _ store.KV = (*KVStore)(nil)

// NewKVStore creates a store issuing queries with placeholder style
// placeholders. A nil mapError passes driver errors through.
func NewKVStore(db store.DBTX, placeholder squirrel.PlaceholderFormat, mapError ErrorMapper, logger *slog.Logger) *KVStore {
	if mapError == nil {
		mapError = func(err error) error { return err }
	}
	return &KVStore{
		db:       db,
		qb:       squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		mapError: mapError,
		logger:   logger.With(slog.String("component", "kv_store")),
		now:      time.Now,
	}
}

// Get returns the value stored under key, or store.ErrNotFound.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrInvalidKey
	}

	query, args, err := s.qb.Select("value").
		From(TableName).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	var value string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "failed to read key", "key", key, "error", err)
		return nil, s.mapError(err)
	}
	return []byte(value), nil
}

// Put inserts or replaces the value under key.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	query, args, err := s.qb.Insert(TableName).
		Columns("key", "value", "updated_at").
		Values(key, string(value), s.now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "failed to write key", "key", key, "error", err)
		return s.mapError(err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	query, args, err := s.qb.Delete(TableName).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete key", "key", key, "error", err)
		return s.mapError(err)
	}
	return nil
}
