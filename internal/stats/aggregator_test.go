package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/wordwise/internal/domain"
)

type fixedLevel domain.CEFRLevel

func (f *fixedLevel) Level() domain.CEFRLevel { return domain.CEFRLevel(*f) }

func TestAggregatorRecord(t *testing.T) {
	t.Parallel()

	level := fixedLevel(domain.CEFRB1)
	agg := NewAggregator(&level, nil)

	_, ok := agg.Latest()
	assert.False(t, ok)

	end := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	first := agg.Record(Partial{
		LastRevised: end,
		Duration:    3*time.Minute + 7*time.Second,
		TotalWords:  8,
		NewWords:    5,
	})

	assert.Equal(t, domain.RevisionStat{
		LastRevised:    end,
		RevisionLength: "3m 7s",
		TotalWords:     8,
		NewWords:       5,
		EndCEFRLevel:   domain.CEFRB1,
	}, first)

	level = fixedLevel(domain.CEFRA2)
	second := agg.Record(Partial{LastRevised: end.Add(time.Hour), Duration: time.Minute, TotalWords: 5, NewWords: 5})
	assert.Equal(t, domain.CEFRA2, second.EndCEFRLevel, "level is read at record time")

	latest, ok := agg.Latest()
	assert.True(t, ok)
	assert.Equal(t, second, latest, "only the latest stat is kept")
}

func TestAggregatorStartsFromPersistedStat(t *testing.T) {
	t.Parallel()

	level := fixedLevel(domain.CEFRC1)
	previous := &domain.RevisionStat{RevisionLength: "1m 0s", TotalWords: 5, NewWords: 5, EndCEFRLevel: domain.CEFRC1}
	agg := NewAggregator(&level, previous)

	latest, ok := agg.Latest()
	assert.True(t, ok)
	assert.Equal(t, *previous, latest)
}
