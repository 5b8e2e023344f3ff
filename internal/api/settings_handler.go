package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/platform/logger"
)

// SettingsHandler handles the per-user settings endpoints.
type SettingsHandler struct {
	sessions Sessions
	logger   *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(sessions Sessions, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "settings_handler")),
	}
}

// PutAPIKey handles PUT /settings/api-key. The key is verified against the
// word source before it is stored.
func (h *SettingsHandler) PutAPIKey(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req APIKeyRequest
	err = decodeRequest(w, r, &req, func() {
		req.APIKey = strings.TrimSpace(req.APIKey)
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	if err := h.sessions.SetAPIKey(r.Context(), scope.UserID, req.APIKey); err != nil {
		respondWithError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("api key updated")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAPIKey handles DELETE /settings/api-key.
func (h *SettingsHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.sessions.ClearAPIKey(r.Context(), scope.UserID); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutLanguage handles PUT /settings/language.
func (h *SettingsHandler) PutLanguage(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req LanguageRequest
	if err := decodeRequest(w, r, &req, nil); err != nil {
		respondWithError(w, r, err)
		return
	}
	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.sessions.SetLanguage(r.Context(), scope.UserID, lang); err != nil {
		respondWithError(w, r, err)
		return
	}

	info, _ := lang.Info()
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

// Languages handles GET /languages.
func Languages(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, domain.Languages)
}
