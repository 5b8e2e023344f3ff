package domain

import (
	"strings"
	"time"
)

// SRS level bounds for a word record.
const (
	MinSRSLevel = 1
	MaxSRSLevel = 8
)

// VocabularyItem is one generated vocabulary entry before it becomes a record.
type VocabularyItem struct {
	Word            string `json:"word"`
	Translation     string `json:"translation"`
	ExampleSentence string `json:"exampleSentence"`
}

// Validate checks that every field of the item is present.
func (v VocabularyItem) Validate() error {
	if strings.TrimSpace(v.Word) == "" {
		return ErrWordEmpty
	}
	if strings.TrimSpace(v.Translation) == "" {
		return ErrTranslationEmpty
	}
	if strings.TrimSpace(v.ExampleSentence) == "" {
		return ErrExampleSentenceEmpty
	}
	return nil
}

// ID returns the identifier a record minted from this item receives.
func (v VocabularyItem) ID() string {
	return WordID(v.Word, v.Translation)
}

// Word is the persisted record of a vocabulary item the learner has rated.
// CEFRLevel is fixed at creation; SRSLevel and the review timestamps are
// advanced by the scheduler.
type Word struct {
	ID              string    `json:"id"`
	Word            string    `json:"word"`
	Translation     string    `json:"translation"`
	ExampleSentence string    `json:"exampleSentence"`
	CEFRLevel       CEFRLevel `json:"cefrLevel"`
	SRSLevel        int       `json:"srsLevel"`
	LastReviewed    time.Time `json:"lastReviewed"`
	NextReview      time.Time `json:"nextReview"`
}

// WordID derives the stable identifier of a word record from its text and translation.
func WordID(word, translation string) string {
	return word + "-" + translation
}

// Item returns the vocabulary part of the record.
func (w Word) Item() VocabularyItem {
	return VocabularyItem{
		Word:            w.Word,
		Translation:     w.Translation,
		ExampleSentence: w.ExampleSentence,
	}
}

// Validate checks if the Word has valid data.
func (w Word) Validate() error {
	if w.ID == "" {
		return ErrWordIDEmpty
	}
	if err := w.Item().Validate(); err != nil {
		return err
	}
	if !w.CEFRLevel.Valid() {
		return ErrInvalidCEFRLevel
	}
	if w.SRSLevel < MinSRSLevel || w.SRSLevel > MaxSRSLevel {
		return ErrInvalidSRSLevel
	}
	if w.NextReview.Before(w.LastReviewed) {
		return ErrReviewBeforeLast
	}
	return nil
}
