package task

import (
	"context"

	"github.com/phrazzld/wordwise/internal/store"
)

// Task represents a unit of background work to be processed
type Task interface {
	// Key identifies the resource the task writes. Pending tasks with the
	// same key are coalesced.
	Key() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// PutTask writes one encoded value to a key-value store.
type PutTask struct {
	kv    store.KV
	key   string
	value []byte
}

var _ Task = (*PutTask)(nil)

// NewPutTask creates a task that stores value under key in kv.
func NewPutTask(kv store.KV, key string, value []byte) *PutTask {
	return &PutTask{kv: kv, key: key, value: value}
}

// Key returns the store key the task writes.
func (t *PutTask) Key() string {
	return t.key
}

// Execute writes the value.
func (t *PutTask) Execute(ctx context.Context) error {
	return t.kv.Put(ctx, t.key, t.value)
}
