package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/wordwise/internal/api/shared"
	"github.com/phrazzld/wordwise/internal/domain"
)

// decodeRequest decodes and validates the JSON body of r into v. Failures
// wrap domain.ErrValidation.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any, normalize func()) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if normalize != nil {
		normalize()
	}
	if err := shared.ValidateRequest(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// scopeFromRequest returns the scope set by the scope middleware.
func scopeFromRequest(r *http.Request) (domain.Scope, error) {
	scope, ok := shared.GetScope(r.Context())
	if !ok {
		return domain.Scope{}, domain.ErrEmptyUserID
	}
	return scope, nil
}
