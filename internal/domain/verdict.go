package domain

import (
	"fmt"
	"strings"
)

// Verdict is the learner's self-assessment of a card.
type Verdict string

// Possible verdict values.
const (
	// VerdictEasy means the word is trivially known.
	VerdictEasy Verdict = "easy"
	// VerdictKnown means the word is known but not trivially.
	VerdictKnown Verdict = "known"
	// VerdictNew means the word is unfamiliar.
	VerdictNew Verdict = "new"
)

// AllVerdicts lists the verdicts in display order.
var AllVerdicts = []Verdict{VerdictEasy, VerdictKnown, VerdictNew}

// ParseVerdict converts a case-insensitive string into a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVerdict, s)
	}
	return v, nil
}

// Valid reports whether v is one of the three verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictEasy, VerdictKnown, VerdictNew:
		return true
	default:
		return false
	}
}
