package domain

import "strings"

// Scope identifies whose data an operation touches: one learner practising
// one language. Word bank, level and revision stats are partitioned by scope.
type Scope struct {
	UserID   string   `json:"userId"`
	Language Language `json:"language"`
}

// Validate checks that the scope names a user and a supported language.
func (s Scope) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return ErrEmptyUserID
	}
	if _, ok := s.Language.Info(); !ok {
		return ErrUnsupportedLanguage
	}
	return nil
}

func (s Scope) String() string {
	return s.UserID + ":" + string(s.Language)
}
