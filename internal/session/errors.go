package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/wordwise/internal/generation"
)

// Sentinel errors returned by the controller. Callers check them with errors.Is.
var (
	// ErrSessionEnded is returned by NextCard and Respond once the session
	// reached its summary. Start begins a new one.
	ErrSessionEnded = errors.New("session has ended")

	// ErrRequestInFlight is returned while a word is being generated.
	ErrRequestInFlight = errors.New("a word request is already in flight")

	// ErrNoCard is returned for a verdict given while no card is presented.
	ErrNoCard = errors.New("no card is presented")

	// ErrVerdictNotAllowed is returned for a verdict the presented card does not accept.
	ErrVerdictNotAllowed = errors.New("verdict not allowed for this card")

	// ErrStaleResult is returned when a generated word arrives after the
	// session it was requested for has been restarted. The word is dropped.
	ErrStaleResult = errors.New("result belongs to a previous session")

	// ErrConfigurationMissing is returned when a new word is needed and the
	// learner has no word source configured.
	ErrConfigurationMissing = generation.ErrNotConfigured
)

// GenerationError reports a failed word request. It is retryable: the
// controller holds no card afterwards and the next NextCard tries again.
type GenerationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("word generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("word generation failed: %s", e.Reason)
}

// Unwrap returns the underlying generation error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

func newGenerationError(err error) *GenerationError {
	return &GenerationError{Reason: generationReason(err), Err: err}
}

func generationReason(err error) string {
	switch {
	case errors.Is(err, generation.ErrContentBlocked):
		return "content blocked"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "invalid response"
	case errors.Is(err, generation.ErrExcludedWord):
		return "repeated a known word"
	case errors.Is(err, generation.ErrTransientFailure):
		return "service temporarily unavailable"
	case errors.Is(err, generation.ErrInvalidConfig):
		return "invalid configuration"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return "generation failed"
	}
}
