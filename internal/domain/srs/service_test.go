package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordwise/internal/domain"
)

func freshCard() domain.Card {
	return domain.NewFreshCard(domain.VocabularyItem{
		Word:            "boek",
		Translation:     "book",
		ExampleSentence: "Ik lees een boek.",
	}, domain.CEFRB1)
}

func TestServiceAdvanceOnEasy(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	t.Run("review card is promoted", func(t *testing.T) {
		card := domain.NewReviewCard(record("boek-book", 3, testNow))
		got, err := service.AdvanceOnEasy(card, testNow)
		require.NoError(t, err)
		assert.Equal(t, 4, got.SRSLevel)
		assert.Equal(t, service.NextReview(4, testNow), got.NextReview)
	})

	t.Run("top level stays at top", func(t *testing.T) {
		card := domain.NewReviewCard(record("boek-book", 8, testNow))
		got, err := service.AdvanceOnEasy(card, testNow)
		require.NoError(t, err)
		assert.Equal(t, 8, got.SRSLevel)
	})

	t.Run("fresh card has nothing to promote", func(t *testing.T) {
		_, err := service.AdvanceOnEasy(freshCard(), testNow)
		assert.ErrorIs(t, err, ErrFreshCard)
	})
}

func TestServiceAdvanceOnKnown(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	t.Run("existing record keeps level", func(t *testing.T) {
		existing := record("huis-house", 5, testNow.Add(-48*time.Hour))
		got, err := service.AdvanceOnKnown(domain.NewReviewCard(existing), testNow)
		require.NoError(t, err)
		assert.Equal(t, "huis-house", got.ID)
		assert.Equal(t, 5, got.SRSLevel)
		assert.Equal(t, testNow, got.LastReviewed)
		assert.Equal(t, service.NextReview(5, testNow), got.NextReview)
	})

	t.Run("fresh card mints level 1 record", func(t *testing.T) {
		got, err := service.AdvanceOnKnown(freshCard(), testNow)
		require.NoError(t, err)
		assert.Equal(t, "boek-book", got.ID)
		assert.Equal(t, 1, got.SRSLevel)
		assert.Equal(t, domain.CEFRB1, got.CEFRLevel)
		assert.NoError(t, got.Validate())
	})
}

func TestServiceCreateOnNew(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	got, err := service.CreateOnNew(freshCard(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SRSLevel)
	assert.Equal(t, testNow, got.LastReviewed)
	assert.Equal(t, service.NextReview(1, testNow), got.NextReview)

	_, err = service.CreateOnNew(domain.NewReviewCard(record("x", 2, testNow)), testNow)
	assert.ErrorIs(t, err, ErrReviewCard)

	incomplete := domain.NewFreshCard(domain.VocabularyItem{Word: "boek"}, domain.CEFRA1)
	_, err = service.CreateOnNew(incomplete, testNow)
	assert.ErrorIs(t, err, domain.ErrTranslationEmpty)
}
