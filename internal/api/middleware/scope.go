package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/platform/logger"
)

// Request headers identifying the learner.
const (
	UserIDHeader   = "X-User-ID"
	LanguageHeader = "X-Language"
)

// ScopeResolver builds a learner scope from the request headers. An empty
// language selects the learner's stored language.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, userID, language string) (domain.Scope, error)
}

// ScopeMiddleware resolves the learner scope of each request and stores it
// in the context. Requests without a user ID are rejected with 401.
type ScopeMiddleware struct {
	resolver ScopeResolver
}

// NewScopeMiddleware creates a ScopeMiddleware.
func NewScopeMiddleware(resolver ScopeResolver) *ScopeMiddleware {
	return &ScopeMiddleware{resolver: resolver}
}

// Resolve is the middleware handler.
func (m *ScopeMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, err := m.resolver.ResolveScope(r.Context(), r.Header.Get(UserIDHeader), r.Header.Get(LanguageHeader))
		switch {
		case errors.Is(err, domain.ErrEmptyUserID):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
			return
		case errors.Is(err, domain.ErrUnsupportedLanguage):
			shared.RespondWithError(w, r, http.StatusBadRequest, "unsupported_language", "Unsupported language")
			return
		case err != nil:
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "store_unavailable",
				"Learner settings are unavailable", err)
			return
		}

		ctx := shared.WithScope(r.Context(), scope)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(
			"user_id", scope.UserID,
			"language", string(scope.Language)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
