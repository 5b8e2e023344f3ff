package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/session"
	"github.com/phrazzld/wordwise/internal/store"
)

// Error codes returned in the "code" field of error responses. Clients
// branch on these; configuration_missing means "send the learner to settings".
const (
	CodeConfigurationMissing = "configuration_missing"
	CodeRequestInFlight      = "request_in_flight"
	CodeGenerationFailed     = "generation_failed"
	CodeStaleResult          = "stale_result"
	CodeSessionEnded         = "session_ended"
	CodeNoCard               = "no_card"
	CodeVerdictNotAllowed    = "verdict_not_allowed"
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidAPIKey        = "invalid_api_key"
	CodeUnsupportedLanguage  = "unsupported_language"
	CodeStoreUnavailable     = "store_unavailable"
	CodeInternal             = "internal_error"
)

// MapErrorToStatusCode maps engine errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var genErr *session.GenerationError
	switch {
	case errors.Is(err, session.ErrRequestInFlight):
		return http.StatusAccepted
	case errors.Is(err, session.ErrConfigurationMissing),
		errors.Is(err, session.ErrStaleResult),
		errors.Is(err, session.ErrSessionEnded),
		errors.Is(err, session.ErrNoCard):
		return http.StatusConflict
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrVerdictNotAllowed),
		errors.Is(err, session.ErrInvalidAPIKey):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyUserID):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidVerdict),
		errors.Is(err, domain.ErrUnsupportedLanguage),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code of err.
func ErrorCode(err error) string {
	var genErr *session.GenerationError
	switch {
	case errors.Is(err, session.ErrRequestInFlight):
		return CodeRequestInFlight
	case errors.Is(err, session.ErrConfigurationMissing):
		return CodeConfigurationMissing
	case errors.Is(err, session.ErrStaleResult):
		return CodeStaleResult
	case errors.Is(err, session.ErrSessionEnded):
		return CodeSessionEnded
	case errors.Is(err, session.ErrNoCard):
		return CodeNoCard
	case errors.As(err, &genErr):
		return CodeGenerationFailed
	case errors.Is(err, session.ErrVerdictNotAllowed):
		return CodeVerdictNotAllowed
	case errors.Is(err, session.ErrInvalidAPIKey):
		return CodeInvalidAPIKey
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return CodeUnsupportedLanguage
	case errors.Is(err, domain.ErrInvalidVerdict),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return CodeInvalidRequest
	case errors.Is(err, store.ErrUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternal
	}
}

// GetSafeErrorMessage returns a user-facing message for err that reveals
// no internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var genErr *session.GenerationError
	switch {
	case errors.Is(err, session.ErrRequestInFlight):
		return "A new word is being prepared"
	case errors.Is(err, session.ErrConfigurationMissing):
		return "No word source is configured; add an API key in settings"
	case errors.Is(err, session.ErrStaleResult):
		return "The session was restarted; request a new card"
	case errors.Is(err, session.ErrSessionEnded):
		return "The session has ended; start a new one"
	case errors.Is(err, session.ErrNoCard):
		return "No card is being shown"
	case errors.As(err, &genErr):
		return "Could not get a new word (" + genErr.Reason + "); try again"
	case errors.Is(err, session.ErrVerdictNotAllowed):
		return "This verdict is not available for the current card"
	case errors.Is(err, session.ErrInvalidAPIKey):
		return "The API key was rejected"
	case errors.Is(err, domain.ErrEmptyUserID):
		return "X-User-ID header is required"
	case errors.Is(err, domain.ErrInvalidVerdict):
		return "Verdict must be one of easy, known, new"
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return "Unsupported language"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, shared.ErrEmptyBody):
		return "Invalid request"
	case errors.Is(err, store.ErrUnavailable):
		return "Storage is temporarily unavailable"
	default:
		return "An unexpected error occurred"
	}
}

// respondWithError writes the mapped error response for err.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), ErrorCode(err), GetSafeErrorMessage(err), err)
}
