package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/platform/logger"
	"github.com/phrazzld/wordwise/internal/pronounce"
	"github.com/phrazzld/wordwise/internal/session"
)

// Sessions gives handlers access to the per-scope controllers and the
// per-user settings. session.Manager implements it.
type Sessions interface {
	Controller(ctx context.Context, scope domain.Scope) (*session.Controller, error)
	ResolveScope(ctx context.Context, userID, language string) (domain.Scope, error)
	SetAPIKey(ctx context.Context, userID, key string) error
	ClearAPIKey(ctx context.Context, userID string) error
	SetLanguage(ctx context.Context, userID string, lang domain.Language) error
}

var _ Sessions = (*session.Manager)(nil)

// SessionHandler handles the practice session endpoints.
type SessionHandler struct {
	sessions    Sessions
	audioPrefix string
	logger      *slog.Logger
}

// NewSessionHandler creates a SessionHandler. A non-empty audioPrefix adds
// the URL of the presented card's pronunciation to responses.
func NewSessionHandler(sessions Sessions, audioPrefix string, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		sessions:    sessions,
		audioPrefix: audioPrefix,
		logger:      logger.With(slog.String("component", "session_handler")),
	}
}

func (h *SessionHandler) controller(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		respondWithError(w, r, err)
		return nil, false
	}
	ctrl, err := h.sessions.Controller(r.Context(), scope)
	if err != nil {
		respondWithError(w, r, err)
		return nil, false
	}
	return ctrl, true
}

func (h *SessionHandler) response(ctrl *session.Controller, view session.View) SessionResponse {
	resp := SessionResponse{View: view}
	if h.audioPrefix != "" && view.Card != nil {
		resp.AudioURL = h.audioPrefix + pronounce.FileName(view.Card.Item.Word, ctrl.Scope().Language)
	}
	return resp
}

// Start handles POST /session/start. It begins a new session.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	view := ctrl.Start()
	logger.FromContextOrDefault(r.Context(), h.logger).Info("session started", "session_id", view.SessionID)
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(ctrl, view))
}

// Get handles GET /session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.response(ctrl, ctrl.View()))
}

// NextCard handles GET /session/card. It presents a card, answering 202
// with the current view while a new word is being generated.
func (h *SessionHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	// Generation outlives a disconnected client; the card is kept for the
	// next poll.
	ctx := context.WithoutCancel(r.Context())
	_, err := ctrl.NextCard(ctx)
	switch {
	case err == nil:
		shared.RespondWithJSON(w, r, http.StatusOK, h.response(ctrl, ctrl.View()))
	case errors.Is(err, session.ErrRequestInFlight):
		shared.RespondWithJSON(w, r, http.StatusAccepted, h.response(ctrl, ctrl.View()))
	default:
		respondWithError(w, r, err)
	}
}

// Respond handles POST /session/verdict.
func (h *SessionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req VerdictRequest
	err := decodeRequest(w, r, &req, func() {
		req.Verdict = strings.ToLower(strings.TrimSpace(req.Verdict))
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	verdict, err := domain.ParseVerdict(req.Verdict)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	outcome, err := ctrl.Respond(r.Context(), verdict)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VerdictResponse{
		Outcome: outcomeToResponse(outcome),
		Session: h.response(ctrl, ctrl.View()),
	})
}
