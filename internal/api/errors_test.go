package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/session"
	"github.com/phrazzld/wordwise/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	genErr := &session.GenerationError{Reason: "timed out", Err: errors.New("deadline")}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"in flight", session.ErrRequestInFlight, http.StatusAccepted, CodeRequestInFlight},
		{"configuration missing", fmt.Errorf("wrapped: %w", session.ErrConfigurationMissing), http.StatusConflict, CodeConfigurationMissing},
		{"stale", session.ErrStaleResult, http.StatusConflict, CodeStaleResult},
		{"ended", session.ErrSessionEnded, http.StatusConflict, CodeSessionEnded},
		{"no card", session.ErrNoCard, http.StatusConflict, CodeNoCard},
		{"generation", genErr, http.StatusBadGateway, CodeGenerationFailed},
		{"verdict not allowed", session.ErrVerdictNotAllowed, http.StatusUnprocessableEntity, CodeVerdictNotAllowed},
		{"invalid key", session.ErrInvalidAPIKey, http.StatusUnprocessableEntity, CodeInvalidAPIKey},
		{"invalid verdict", domain.ErrInvalidVerdict, http.StatusBadRequest, CodeInvalidRequest},
		{"validation", fmt.Errorf("%w: verdict", domain.ErrValidation), http.StatusBadRequest, CodeInvalidRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest, CodeInvalidRequest},
		{"language", domain.ErrUnsupportedLanguage, http.StatusBadRequest, CodeUnsupportedLanguage},
		{"store", store.NewStoreError("k", "get", "busy", store.ErrUnavailable), http.StatusServiceUnavailable, CodeStoreUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantCode, ErrorCode(tt.err))
			assert.NotEmpty(t, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_GenerationReason(t *testing.T) {
	t.Parallel()

	err := &session.GenerationError{Reason: "service temporarily unavailable", Err: errors.New("503 from upstream key=abc")}
	msg := GetSafeErrorMessage(err)
	assert.Contains(t, msg, "service temporarily unavailable")
	assert.NotContains(t, msg, "abc")
}
