package task

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Common errors returned by the TaskQueue
var (
	ErrQueueClosed = errors.New("task queue is closed")
)

// TaskQueue is an unbounded, key-coalescing queue. Enqueueing a task whose
// key is already pending replaces the pending task in place.
type TaskQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	order    []string
	pending  map[string]Task
	inflight map[string]bool
	closed   bool
	logger   *slog.Logger
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue(logger *slog.Logger) *TaskQueue {
	q := &TaskQueue{
		pending:  make(map[string]Task),
		inflight: make(map[string]bool),
		logger:   logger,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue adds a task to the queue for processing.
// Returns ErrQueueClosed after Close.
func (q *TaskQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	key := task.Key()
	if _, exists := q.pending[key]; exists {
		q.logger.Debug("task coalesced", "key", key)
	} else {
		q.order = append(q.order, key)
	}
	q.pending[key] = task
	q.cond.Broadcast()
	return nil
}

// Close prevents further submissions. Pending tasks are still handed out.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
		q.logger.Info("task queue closed", "pending", len(q.order))
	}
}

// Len returns the number of pending tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// take blocks until a task whose key is not being executed is available.
// ok is false once the queue is closed and drained.
func (q *TaskQueue) take() (task Task, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		for i, key := range q.order {
			if q.inflight[key] {
				continue
			}
			task = q.pending[key]
			delete(q.pending, key)
			q.order = slices.Delete(q.order, i, i+1)
			q.inflight[key] = true
			return task, true
		}
		if q.closed && len(q.order) == 0 {
			return nil, false
		}
		q.cond.Wait()
	}
}

// done marks the task with key as finished.
func (q *TaskQueue) done(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.inflight, key)
	q.cond.Broadcast()
}

func (q *TaskQueue) idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order) == 0 && len(q.inflight) == 0
}

// WaitIdle blocks until no task is pending or executing, or ctx is done.
func (q *TaskQueue) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for !q.idle() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
