package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/wordbank"
)

// WordHandler serves the word bank and progress statistics.
type WordHandler struct {
	sessions Sessions
	clock    func() time.Time
	logger   *slog.Logger
}

// NewWordHandler creates a WordHandler. A nil clock uses time.Now.
func NewWordHandler(sessions Sessions, clock func() time.Time, logger *slog.Logger) *WordHandler {
	if clock == nil {
		clock = time.Now
	}
	return &WordHandler{
		sessions: sessions,
		clock:    clock,
		logger:   logger.With(slog.String("component", "word_handler")),
	}
}

// List handles GET /words?search=. Matching records are grouped by SRS level.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	ctrl, err := h.sessions.Controller(r.Context(), scope)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	words := wordbank.Search(ctrl.Words(), search)

	shared.RespondWithJSON(w, r, http.StatusOK, WordsResponse{
		Total:  len(words),
		Search: search,
		Groups: wordbank.GroupBySRSLevel(words, h.clock()),
	})
}

// Stats handles GET /stats.
func (h *WordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	ctrl, err := h.sessions.Controller(r.Context(), scope)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	now := h.clock()
	words := ctrl.Words()
	due := 0
	for _, word := range words {
		if !word.NextReview.After(now) {
			due++
		}
	}

	info, _ := scope.Language.Info()
	level := ctrl.Level()
	resp := StatsResponse{
		Language:         info,
		Level:            level,
		LevelDescription: level.Description(),
		TotalWords:       len(words),
		DueWords:         due,
	}
	if stat, ok := ctrl.LatestStat(); ok {
		resp.LastRevision = &stat
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
