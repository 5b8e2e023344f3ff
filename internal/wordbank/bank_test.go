package wordbank

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/wordwise/internal/domain"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func word(text, translation string, level int, next time.Time) domain.Word {
	return domain.Word{
		ID:              domain.WordID(text, translation),
		Word:            text,
		Translation:     translation,
		ExampleSentence: "Voorbeeld met " + text + ".",
		CEFRLevel:       domain.CEFRA2,
		SRSLevel:        level,
		LastReviewed:    testNow.Add(-time.Hour),
		NextReview:      next,
	}
}

func TestBankUpsert(t *testing.T) {
	t.Parallel()

	bank := New([]domain.Word{word("fiets", "bike", 1, testNow)})
	assert.Equal(t, 1, bank.Len())

	updated := word("fiets", "bike", 2, testNow.Add(48*time.Hour))
	bank.Upsert(updated)
	assert.Equal(t, 1, bank.Len(), "same id replaces")

	got, ok := bank.Get("fiets-bike")
	assert.True(t, ok)
	assert.Equal(t, 2, got.SRSLevel)

	bank.Upsert(word("appel", "apple", 1, testNow))
	assert.Equal(t, []string{"appel", "fiets"}, bank.Texts())
}

func TestBankConcurrentAccess(t *testing.T) {
	t.Parallel()

	bank := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			bank.Upsert(word(string(rune('a'+i)), "x", 1, testNow))
		}(i)
		go func() {
			defer wg.Done()
			_ = bank.Words()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, bank.Len())
}

func TestSearch(t *testing.T) {
	t.Parallel()

	words := []domain.Word{
		word("Hond", "dog", 1, testNow),
		word("kat", "cat", 1, testNow),
		word("paard", "horse", 1, testNow),
	}

	assert.Len(t, Search(words, ""), 3)
	assert.Equal(t, "Hond", Search(words, "hON")[0].Word)
	assert.Equal(t, "kat", Search(words, "CAT")[0].Word, "matches translation")
	assert.Empty(t, Search(words, "zebra"))
}

func TestGroupBySRSLevel(t *testing.T) {
	t.Parallel()

	words := []domain.Word{
		word("drie", "three", 3, testNow.Add(5*24*time.Hour)),
		word("een", "one", 1, testNow.Add(3*time.Hour)),
		word("twee", "two", 1, testNow.Add(-time.Minute)),
	}

	groups := GroupBySRSLevel(words, testNow)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, 1, groups[0].SRSLevel)
		assert.Equal(t, "twee", groups[0].Words[0].Word.Word, "earliest review first")
		assert.True(t, groups[0].Words[0].Due)
		assert.Equal(t, "Due now", groups[0].Words[0].NextReviewText)
		assert.Equal(t, "in 3 hours", groups[0].Words[1].NextReviewText)
		assert.Equal(t, 3, groups[1].SRSLevel)
		assert.Equal(t, "in 5 days", groups[1].Words[0].NextReviewText)
	}
}
