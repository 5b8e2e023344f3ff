package api

import (
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/session"
	"github.com/phrazzld/wordwise/internal/wordbank"
)

// SessionResponse is the session view plus the pronunciation audio of the
// presented card, when audio is served.
type SessionResponse struct {
	session.View
	AudioURL string `json:"audioUrl,omitempty"`
}

// VerdictRequest is the body of POST /session/verdict.
type VerdictRequest struct {
	Verdict string `json:"verdict" validate:"required,oneof=easy known new"`
}

// OutcomeResponse describes the effect of a verdict.
type OutcomeResponse struct {
	Verdict      domain.Verdict       `json:"verdict"`
	Record       *domain.Word         `json:"record,omitempty"`
	LevelFrom    domain.CEFRLevel     `json:"levelFrom"`
	LevelTo      domain.CEFRLevel     `json:"levelTo"`
	LevelChanged bool                 `json:"levelChanged"`
	SessionEnded bool                 `json:"sessionEnded"`
	RevisionStat *domain.RevisionStat `json:"revisionStat,omitempty"`
}

// VerdictResponse is the response of POST /session/verdict.
type VerdictResponse struct {
	Outcome OutcomeResponse `json:"outcome"`
	Session SessionResponse `json:"session"`
}

// WordsResponse is the word bank grouped by SRS level.
type WordsResponse struct {
	Total  int              `json:"total"`
	Search string           `json:"search,omitempty"`
	Groups []wordbank.Group `json:"groups"`
}

// StatsResponse summarizes the learner's progress in one language.
type StatsResponse struct {
	Language         domain.LanguageInfo  `json:"language"`
	Level            domain.CEFRLevel     `json:"cefrLevel"`
	LevelDescription string               `json:"cefrDescription"`
	TotalWords       int                  `json:"totalWords"`
	DueWords         int                  `json:"dueWords"`
	LastRevision     *domain.RevisionStat `json:"lastRevision,omitempty"`
}

// APIKeyRequest is the body of PUT /settings/api-key.
type APIKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required,min=8,max=512"`
}

// LanguageRequest is the body of PUT /settings/language.
type LanguageRequest struct {
	Language string `json:"language" validate:"required,max=32"`
}

func outcomeToResponse(o session.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Verdict:      o.Verdict,
		Record:       o.Record,
		LevelFrom:    o.LevelChange.From,
		LevelTo:      o.LevelChange.To,
		LevelChanged: o.LevelChange.LevelChanged(),
		SessionEnded: o.SessionEnded(),
		RevisionStat: o.Stat,
	}
}
