package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/wordwise/internal/domain"
)

var testNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func record(id string, level int, next time.Time) domain.Word {
	return domain.Word{
		ID:              id,
		Word:            id,
		Translation:     id + "-en",
		ExampleSentence: "sentence",
		CEFRLevel:       domain.CEFRA2,
		SRSLevel:        level,
		LastReviewed:    next.Add(-time.Hour),
		NextReview:      next,
	}
}

func TestCalculateNextReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name  string
		level int
		hours int
	}{
		{name: "level 1", level: 1, hours: 12},
		{name: "level 2", level: 2, hours: 48},
		{name: "level 3", level: 3, hours: 96},
		{name: "level 4", level: 4, hours: 240},
		{name: "level 5", level: 5, hours: 336},
		{name: "level 6", level: 6, hours: 720},
		{name: "level 7", level: 7, hours: 4380},
		{name: "level 8", level: 8, hours: 8760},
		{name: "above range falls back to level 8", level: 9, hours: 8760},
		{name: "zero falls back to level 8", level: 0, hours: 8760},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateNextReview(tc.level, testNow, params)
			assert.Equal(t, testNow.Add(time.Duration(tc.hours)*time.Hour), got)
		})
	}
}

func TestIsDue(t *testing.T) {
	t.Parallel()

	assert.True(t, isDue(record("a", 1, testNow), testNow), "exactly now is due")
	assert.True(t, isDue(record("a", 1, testNow.Add(-time.Second)), testNow))
	assert.False(t, isDue(record("a", 1, testNow.Add(time.Second)), testNow))
}

func TestSelectDue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		words  []domain.Word
		wantID string
		wantOK bool
	}{
		{name: "empty bank", words: nil},
		{
			name:  "nothing due",
			words: []domain.Word{record("a", 1, testNow.Add(time.Hour))},
		},
		{
			name: "earliest overdue wins",
			words: []domain.Word{
				record("a", 1, testNow.Add(-time.Hour)),
				record("b", 1, testNow.Add(-3*time.Hour)),
				record("c", 1, testNow.Add(time.Hour)),
			},
			wantID: "b",
			wantOK: true,
		},
		{
			name: "tie broken by id",
			words: []domain.Word{
				record("zebra", 1, testNow.Add(-time.Hour)),
				record("apple", 1, testNow.Add(-time.Hour)),
			},
			wantID: "apple",
			wantOK: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := selectDue(tc.words, testNow)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, got.ID)
			}
		})
	}
}

func TestPromoteClampsAtTopLevel(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for level := domain.MinSRSLevel; level <= domain.MaxSRSLevel; level++ {
		original := record("w", level, testNow)
		promoted := promote(original, testNow, params)

		assert.Equal(t, min(level+1, domain.MaxSRSLevel), promoted.SRSLevel)
		assert.GreaterOrEqual(t, promoted.SRSLevel, original.SRSLevel)
		assert.Equal(t, testNow, promoted.LastReviewed)
		assert.Equal(t, testNow.Add(params.Interval(promoted.SRSLevel)), promoted.NextReview)
		assert.Equal(t, level, original.SRSLevel, "input must not be mutated")
	}
}
