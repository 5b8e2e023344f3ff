package store

import (
	"fmt"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Datum names a kind of per-scope data.
type Datum string

// Per-scope data kinds.
const (
	DatumWordBank      Datum = "word-bank"
	DatumCEFRLevel     Datum = "cefr-level"
	DatumRevisionStats Datum = "revision-stats"
)

// UserDatum names a kind of per-user data shared across languages.
type UserDatum string

// Per-user data kinds.
const (
	UserDatumAPIKey   UserDatum = "api-key"
	UserDatumLanguage UserDatum = "language"
)

// ScopeKey returns the key of datum for scope, e.g. "user-42:Dutch:word-bank".
func ScopeKey(scope domain.Scope, datum Datum) string {
	return fmt.Sprintf("user-%s:%s:%s", scope.UserID, scope.Language, datum)
}

// UserKey returns the key of a per-user datum, e.g. "user-42:api-key".
func UserKey(userID string, datum UserDatum) string {
	return fmt.Sprintf("user-%s:%s", userID, datum)
}

// ScopeKeys holds the keys of one scope, computed once per session.
type ScopeKeys struct {
	WordBank      string
	CEFRLevel     string
	RevisionStats string
}

// KeysFor computes every key of scope.
func KeysFor(scope domain.Scope) ScopeKeys {
	return ScopeKeys{
		WordBank:      ScopeKey(scope, DatumWordBank),
		CEFRLevel:     ScopeKey(scope, DatumCEFRLevel),
		RevisionStats: ScopeKey(scope, DatumRevisionStats),
	}
}
