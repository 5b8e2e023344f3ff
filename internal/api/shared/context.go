package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/wordwise/internal/domain"
)

// ContextKey is the type of request context keys set by the API layer.
type ContextKey string

// Context keys for request-scoped values.
const (
	// ScopeContextKey holds the learner scope resolved from request headers.
	ScopeContextKey ContextKey = "scope"

	// TraceIDKey holds the trace ID of the request.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds traceID to ctx. An empty traceID is replaced by a random one.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID of ctx, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithScope adds the learner scope to ctx.
func WithScope(ctx context.Context, scope domain.Scope) context.Context {
	return context.WithValue(ctx, ScopeContextKey, scope)
}

// GetScope returns the learner scope of ctx.
func GetScope(ctx context.Context) (domain.Scope, bool) {
	scope, ok := ctx.Value(ScopeContextKey).(domain.Scope)
	return scope, ok
}
