package domain

// Card is the candidate shown to the learner for a single turn. A review card
// wraps an existing record; a fresh card carries a generated item and the
// learner's level at generation time.
type Card struct {
	IsReview bool           `json:"isReview"`
	Item     VocabularyItem `json:"item"`
	Level    CEFRLevel      `json:"cefrLevel"`

	// Record is set only for review cards.
	Record *Word `json:"record,omitempty"`
}

// NewReviewCard builds a card for a due record.
func NewReviewCard(w Word) Card {
	record := w
	return Card{
		IsReview: true,
		Item:     w.Item(),
		Level:    w.CEFRLevel,
		Record:   &record,
	}
}

// NewFreshCard builds a card for a newly generated item.
func NewFreshCard(item VocabularyItem, level CEFRLevel) Card {
	return Card{
		Item:  item,
		Level: level,
	}
}

// ID returns the record identifier of the card, existing or to be minted.
func (c Card) ID() string {
	if c.Record != nil {
		return c.Record.ID
	}
	return c.Item.ID()
}

// Allows reports whether v may be given for this card. "new" is unavailable
// on review cards.
func (c Card) Allows(v Verdict) bool {
	if !v.Valid() {
		return false
	}
	return !(c.IsReview && v == VerdictNew)
}

// Verdicts lists the verdicts the learner can give for this card.
func (c Card) Verdicts() []Verdict {
	verdicts := make([]Verdict, 0, len(AllVerdicts))
	for _, v := range AllVerdicts {
		if c.Allows(v) {
			verdicts = append(verdicts, v)
		}
	}
	return verdicts
}
