// Package wordbank holds a learner's word records for one language and the
// read-only views built on them.
package wordbank

import (
	"sort"
	"sync"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Bank is the in-memory word record store of one scope, keyed by record ID.
// It is safe for concurrent use.
type Bank struct {
	mu      sync.RWMutex
	records map[string]domain.Word
}

// New creates a bank holding words. Later duplicates of an ID replace earlier ones.
func New(words []domain.Word) *Bank {
	b := &Bank{records: make(map[string]domain.Word, len(words))}
	for _, w := range words {
		b.records[w.ID] = w
	}
	return b
}

// Upsert inserts w or replaces the record with the same ID.
func (b *Bank) Upsert(w domain.Word) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[w.ID] = w
}

// Get returns the record with id.
func (b *Bank) Get(id string) (domain.Word, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	w, ok := b.records[id]
	return w, ok
}

// Len returns the number of records.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Words returns a snapshot of every record ordered by ID.
func (b *Bank) Words() []domain.Word {
	b.mu.RLock()
	words := make([]domain.Word, 0, len(b.records))
	for _, w := range b.records {
		words = append(words, w)
	}
	b.mu.RUnlock()

	sort.Slice(words, func(i, j int) bool { return words[i].ID < words[j].ID })
	return words
}

// Texts returns the word text of every record, for use as a generation
// exclusion list.
func (b *Bank) Texts() []string {
	words := b.Words()
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Word
	}
	return texts
}
