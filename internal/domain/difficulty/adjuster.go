// Package difficulty adapts the learner's CEFR level from verdicts: an "easy"
// verdict moves the level up, a run of "new" verdicts on fresh words moves it
// down.
package difficulty

import (
	"github.com/phrazzld/wordwise/internal/domain"
)

// DefaultStreakLimit is the number of consecutive "new" verdicts on fresh
// cards that lowers the level.
const DefaultStreakLimit = 3

// Change describes the effect of one verdict on the adjuster.
type Change struct {
	From domain.CEFRLevel
	To   domain.CEFRLevel

	// Streak is the consecutive "new" count after the verdict.
	Streak int
}

// LevelChanged reports whether the verdict moved the level.
func (c Change) LevelChanged() bool {
	return c.From != c.To
}

// Adjuster tracks the current level and the streak of "new" verdicts.
// It is not safe for concurrent use; the session controller serializes access.
type Adjuster struct {
	level       domain.CEFRLevel
	streak      int
	streakLimit int
}

// NewAdjuster creates an adjuster starting at level. A non-positive
// streakLimit uses DefaultStreakLimit; an invalid level uses the default level.
func NewAdjuster(level domain.CEFRLevel, streakLimit int) *Adjuster {
	if !level.Valid() {
		level = domain.DefaultCEFRLevel
	}
	if streakLimit <= 0 {
		streakLimit = DefaultStreakLimit
	}
	return &Adjuster{level: level, streakLimit: streakLimit}
}

// Level returns the current level.
func (a *Adjuster) Level() domain.CEFRLevel {
	return a.level
}

// Streak returns the current count of consecutive "new" verdicts.
func (a *Adjuster) Streak() int {
	return a.streak
}

// ResetStreak clears the "new" streak without touching the level.
func (a *Adjuster) ResetStreak() {
	a.streak = 0
}

// Apply updates the level and streak for a verdict given on a review or fresh card.
func (a *Adjuster) Apply(verdict domain.Verdict, isReview bool) Change {
	change := Change{From: a.level}

	switch verdict {
	case domain.VerdictEasy:
		a.level = a.level.Next()
		a.streak = 0
	case domain.VerdictKnown:
		a.streak = 0
	case domain.VerdictNew:
		if isReview {
			break
		}
		a.streak++
		if a.streak >= a.streakLimit {
			a.level = a.level.Previous()
			a.streak = 0
		}
	}

	change.To = a.level
	change.Streak = a.streak
	return change
}
