package task

import (
	"log/slog"

	"github.com/phrazzld/wordwise/internal/store"
)

// Writer schedules JSON writes to a KV store through a TaskQueue. Writes are
// fire-and-forget: failures are logged, never returned to the caller.
type Writer struct {
	kv     store.KV
	queue  *TaskQueue
	logger *slog.Logger
}

// NewWriter creates a writer storing into kv via queue.
func NewWriter(kv store.KV, queue *TaskQueue, logger *slog.Logger) *Writer {
	return &Writer{
		kv:     kv,
		queue:  queue,
		logger: logger.With(slog.String("component", "store_writer")),
	}
}

// Persist encodes value and enqueues a write of it under key. A pending
// write to the same key is replaced.
func (w *Writer) Persist(key string, value any) {
	data, err := store.Encode(value)
	if err != nil {
		w.logger.Error("failed to encode value for persistence", "key", key, "error", err)
		return
	}
	if err := w.queue.Enqueue(NewPutTask(w.kv, key, data)); err != nil {
		w.logger.Error("failed to schedule write", "key", key, "error", err)
	}
}
