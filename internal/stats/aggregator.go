// Package stats produces the end-of-session revision statistic of a scope.
package stats

import (
	"sync"
	"time"

	"github.com/phrazzld/wordwise/internal/domain"
)

// LevelSource reports the learner's current CEFR level.
type LevelSource interface {
	Level() domain.CEFRLevel
}

// Partial is the session summary handed over by the session controller.
type Partial struct {
	LastRevised time.Time
	Duration    time.Duration
	TotalWords  int
	NewWords    int
}

// Aggregator keeps the latest RevisionStat of one scope. Each Record replaces
// the previous stat.
type Aggregator struct {
	mu     sync.RWMutex
	levels LevelSource
	latest *domain.RevisionStat
}

// NewAggregator creates an aggregator that stamps stats with levels.Level().
// latest is the previously persisted stat, or nil.
func NewAggregator(levels LevelSource, latest *domain.RevisionStat) *Aggregator {
	return &Aggregator{levels: levels, latest: latest}
}

// Record builds the RevisionStat for p, stamping the level current at call
// time, and makes it the latest.
func (a *Aggregator) Record(p Partial) domain.RevisionStat {
	stat := domain.RevisionStat{
		LastRevised:    p.LastRevised,
		RevisionLength: domain.FormatRevisionLength(p.Duration),
		TotalWords:     p.TotalWords,
		NewWords:       p.NewWords,
		EndCEFRLevel:   a.levels.Level(),
	}

	a.mu.Lock()
	a.latest = &stat
	a.mu.Unlock()

	return stat
}

// Latest returns the most recent stat, if any.
func (a *Aggregator) Latest() (domain.RevisionStat, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.latest == nil {
		return domain.RevisionStat{}, false
	}
	return *a.latest, true
}
