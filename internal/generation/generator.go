package generation

import (
	"context"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Request describes the word the learner needs next.
type Request struct {
	Language domain.Language
	Level    domain.CEFRLevel

	// Exclude lists word texts the generator must not return.
	Exclude []string
}

// Generator defines the interface for generating vocabulary items.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Generator interface {
	// GenerateWord returns one vocabulary item for req, or an error wrapping
	// one of the package errors. Implementations do not retry.
	GenerateWord(ctx context.Context, req Request) (domain.VocabularyItem, error)
}

// Verifier is implemented by generators that can check their credentials
// with a minimal request.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Factory builds a Generator bound to apiKey. It returns an error wrapping
// ErrNotConfigured for an empty key.
type Factory func(ctx context.Context, apiKey string) (Generator, error)
