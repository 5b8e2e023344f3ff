package session

import (
	"errors"
	"time"

	"github.com/phrazzld/wordwise/internal/domain"
)

// View is a snapshot of a controller for the presentation layer.
type View struct {
	SessionID string           `json:"sessionId"`
	Scope     domain.Scope     `json:"scope"`
	State     string           `json:"state"`
	StartedAt time.Time        `json:"startedAt"`
	Card      *domain.Card     `json:"card,omitempty"`
	Verdicts  []domain.Verdict `json:"verdicts,omitempty"`
	Loading   bool             `json:"loading"`

	// Progress is the fraction of the session's new words already seen.
	Progress            float64 `json:"progress"`
	NewWordsThisSession int     `json:"newWordsThisSession"`
	NewWordsPerSession  int     `json:"newWordsPerSession"`
	ConsecutiveNew      int     `json:"consecutiveNewWordClicks"`

	Level            domain.CEFRLevel `json:"cefrLevel"`
	LevelDescription string           `json:"cefrDescription"`

	Summary              *Summary `json:"summary,omitempty"`
	Error                string   `json:"error,omitempty"`
	ConfigurationMissing bool     `json:"configurationMissing"`
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	level := c.adjuster.Level()
	v := View{
		SessionID:           c.sessionID.String(),
		Scope:               c.scope,
		State:               c.state.String(),
		StartedAt:           c.startedAt,
		Loading:             c.inFlight,
		Progress:            float64(c.newCount) / float64(c.cfg.NewWordsPerSession),
		NewWordsThisSession: c.newCount,
		NewWordsPerSession:  c.cfg.NewWordsPerSession,
		ConsecutiveNew:      c.adjuster.Streak(),
		Level:               level,
		LevelDescription:    level.Description(),
	}
	if v.Progress > 1 {
		v.Progress = 1
	}

	if c.card != nil {
		card := *c.card
		v.Card = &card
		v.Verdicts = card.Verdicts()
	}

	if c.state == StateSummary {
		summary := Summary{
			New:      append([]domain.Word(nil), c.summary.New...),
			Repeated: append([]domain.Word(nil), c.summary.Repeated...),
		}
		v.Summary = &summary
	}

	if c.lastErr != nil {
		v.ConfigurationMissing = errors.Is(c.lastErr, ErrConfigurationMissing)
		var genErr *GenerationError
		if errors.As(c.lastErr, &genErr) {
			v.Error = genErr.Reason
		} else {
			v.Error = c.lastErr.Error()
		}
	}
	return v
}
