package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Guard wraps a Generator and enforces the Word Source contract on every
// result: all fields present, word not in the exclusion list.
type Guard struct {
	next   Generator
	logger *slog.Logger
}

var _ Generator = (*Guard)(nil)

// NewGuard wraps next.
func NewGuard(next Generator, logger *slog.Logger) *Guard {
	return &Guard{
		next:   next,
		logger: logger.With(slog.String("component", "generation_guard")),
	}
}

// GenerateWord delegates to the wrapped generator and validates the result.
func (g *Guard) GenerateWord(ctx context.Context, req Request) (domain.VocabularyItem, error) {
	item, err := g.next.GenerateWord(ctx, req)
	if err != nil {
		return domain.VocabularyItem{}, err
	}

	item = domain.VocabularyItem{
		Word:            strings.TrimSpace(item.Word),
		Translation:     strings.TrimSpace(item.Translation),
		ExampleSentence: strings.TrimSpace(item.ExampleSentence),
	}
	if err := item.Validate(); err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	for _, excluded := range req.Exclude {
		if strings.EqualFold(excluded, item.Word) {
			g.logger.WarnContext(ctx, "generator returned an excluded word",
				"language", req.Language,
				"level", req.Level)
			return domain.VocabularyItem{}, fmt.Errorf("%w: %q", ErrExcludedWord, item.Word)
		}
	}

	return item, nil
}

// Verify forwards to the wrapped generator when it supports verification.
func (g *Guard) Verify(ctx context.Context) error {
	if v, ok := g.next.(Verifier); ok {
		return v.Verify(ctx)
	}
	return nil
}
