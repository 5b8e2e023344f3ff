package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordwise/internal/platform/logger"
)

// Load reads key from kv and decodes it into a T. A missing key yields def.
// A value that fails to decode is logged, deleted and replaced by def; only
// backend failures are returned as errors.
func Load[T any](ctx context.Context, kv KV, key string, def T) (T, error) {
	log := logger.FromContext(ctx)

	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, NewStoreError(key, "load", "failed to read value", err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.WarnContext(ctx, "discarding corrupt stored value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		if delErr := kv.Delete(ctx, key); delErr != nil {
			log.ErrorContext(ctx, "failed to delete corrupt stored value",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		return def, nil
	}

	return value, nil
}

// Save encodes value as JSON and writes it under key.
func Save[T any](ctx context.Context, kv KV, key string, value T) error {
	data, err := Encode(value)
	if err != nil {
		return NewStoreError(key, "save", "failed to encode value", err)
	}
	if err := kv.Put(ctx, key, data); err != nil {
		return NewStoreError(key, "save", "failed to write value", err)
	}
	return nil
}

// Encode serializes value the way Save does.
func Encode[T any](value T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}
