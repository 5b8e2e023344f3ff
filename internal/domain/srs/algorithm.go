package srs

import (
	"time"

	"github.com/phrazzld/wordwise/internal/domain"
)

// isDue reports whether the record's next review time has been reached.
func isDue(w domain.Word, now time.Time) bool {
	return !w.NextReview.After(now)
}

// selectDue returns the due record with the earliest next review time.
// Ties are broken by ascending record ID so the choice is deterministic.
func selectDue(words []domain.Word, now time.Time) (domain.Word, bool) {
	var (
		best  domain.Word
		found bool
	)
	for _, w := range words {
		if !isDue(w, now) {
			continue
		}
		if !found ||
			w.NextReview.Before(best.NextReview) ||
			(w.NextReview.Equal(best.NextReview) && w.ID < best.ID) {
			best = w
			found = true
		}
	}
	return best, found
}

// calculateNextReview returns the time at which a record on level should next
// be reviewed.
func calculateNextReview(level int, now time.Time, params *Params) time.Time {
	return now.Add(params.Interval(level))
}

// promote returns a copy of w one level higher, clamped at the top level.
func promote(w domain.Word, now time.Time, params *Params) domain.Word {
	next := w
	next.SRSLevel = min(w.SRSLevel+1, domain.MaxSRSLevel)
	next.LastReviewed = now
	next.NextReview = calculateNextReview(next.SRSLevel, now, params)
	return next
}

// restamp returns a copy of w with its level unchanged and its review window
// restarted from now.
func restamp(w domain.Word, now time.Time, params *Params) domain.Word {
	next := w
	next.LastReviewed = now
	next.NextReview = calculateNextReview(next.SRSLevel, now, params)
	return next
}

// mint creates a level-1 record for a vocabulary item.
func mint(item domain.VocabularyItem, level domain.CEFRLevel, now time.Time, params *Params) domain.Word {
	return domain.Word{
		ID:              item.ID(),
		Word:            item.Word,
		Translation:     item.Translation,
		ExampleSentence: item.ExampleSentence,
		CEFRLevel:       level,
		SRSLevel:        domain.MinSRSLevel,
		LastReviewed:    now,
		NextReview:      calculateNextReview(domain.MinSRSLevel, now, params),
	}
}
