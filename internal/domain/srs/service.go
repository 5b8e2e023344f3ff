package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Common errors
var (
	ErrReviewCard = errors.New("card already has a record")
	ErrFreshCard  = errors.New("card has no record")
)

// Service defines the interface for scheduler operations
type Service interface {
	// IsDue reports whether a record should be reviewed at now.
	IsDue(w domain.Word, now time.Time) bool

	// SelectDue picks the most overdue record, if any.
	SelectDue(words []domain.Word, now time.Time) (domain.Word, bool)

	// NextReview computes now plus the interval of level.
	NextReview(level int, now time.Time) time.Time

	// AdvanceOnEasy promotes a review card's record one level.
	AdvanceOnEasy(card domain.Card, now time.Time) (domain.Word, error)

	// AdvanceOnKnown keeps the level of an existing record and restarts its
	// review window, or mints a level-1 record for a fresh card.
	AdvanceOnKnown(card domain.Card, now time.Time) (domain.Word, error)

	// CreateOnNew mints a level-1 record for a fresh card.
	CreateOnNew(card domain.Card, now time.Time) (domain.Word, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduler with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

func (s *defaultService) IsDue(w domain.Word, now time.Time) bool {
	return isDue(w, now)
}

func (s *defaultService) SelectDue(words []domain.Word, now time.Time) (domain.Word, bool) {
	return selectDue(words, now)
}

func (s *defaultService) NextReview(level int, now time.Time) time.Time {
	return calculateNextReview(level, now, s.params)
}

func (s *defaultService) AdvanceOnEasy(card domain.Card, now time.Time) (domain.Word, error) {
	if card.Record == nil {
		return domain.Word{}, ErrFreshCard
	}
	return promote(*card.Record, now, s.params), nil
}

func (s *defaultService) AdvanceOnKnown(card domain.Card, now time.Time) (domain.Word, error) {
	if card.Record != nil {
		return restamp(*card.Record, now, s.params), nil
	}
	if err := card.Item.Validate(); err != nil {
		return domain.Word{}, err
	}
	return mint(card.Item, card.Level, now, s.params), nil
}

func (s *defaultService) CreateOnNew(card domain.Card, now time.Time) (domain.Word, error) {
	if card.IsReview {
		return domain.Word{}, ErrReviewCard
	}
	if err := card.Item.Validate(); err != nil {
		return domain.Word{}, err
	}
	return mint(card.Item, card.Level, now, s.params), nil
}
