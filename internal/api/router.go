package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apimw "github.com/phrazzld/wordwise/internal/api/middleware"
	"github.com/phrazzld/wordwise/internal/api/shared"
)

// AudioPath is the URL prefix of pronunciation audio files.
const AudioPath = "/audio/"

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Sessions Sessions
	Logger   *slog.Logger

	// RateLimit is requests per second per learner; zero disables limiting.
	RateLimit float64
	RateBurst int

	// AudioDir, when set, is served under AudioPath.
	AudioDir string

	Clock func() time.Time
}

// NewRouter builds the application router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(apimw.NewTraceMiddleware(cfg.Logger))

	audioPrefix := ""
	if cfg.AudioDir != "" {
		audioPrefix = AudioPath
		r.Handle(AudioPath+"*", http.StripPrefix(AudioPath, http.FileServer(http.Dir(cfg.AudioDir))))
	}

	sessionHandler := NewSessionHandler(cfg.Sessions, audioPrefix, cfg.Logger)
	wordHandler := NewWordHandler(cfg.Sessions, cfg.Clock, cfg.Logger)
	settingsHandler := NewSettingsHandler(cfg.Sessions, cfg.Logger)
	scopeMiddleware := apimw.NewScopeMiddleware(cfg.Sessions)
	limiter := apimw.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/languages", Languages)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Limit)
			r.Use(scopeMiddleware.Resolve)

			r.Post("/session/start", sessionHandler.Start)
			r.Get("/session", sessionHandler.Get)
			r.Get("/session/card", sessionHandler.NextCard)
			r.Post("/session/verdict", sessionHandler.Respond)

			r.Get("/words", wordHandler.List)
			r.Get("/stats", wordHandler.Stats)

			r.Put("/settings/api-key", settingsHandler.PutAPIKey)
			r.Delete("/settings/api-key", settingsHandler.DeleteAPIKey)
			r.Put("/settings/language", settingsHandler.PutLanguage)
		})
	})

	return r
}
