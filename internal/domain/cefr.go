package domain

import (
	"fmt"
	"strings"
)

// CEFRLevel is a Common European Framework of Reference proficiency level.
// Levels are totally ordered from A1 (lowest) to C2 (highest).
type CEFRLevel string

// Supported CEFR levels.
const (
	CEFRA1 CEFRLevel = "A1"
	CEFRA2 CEFRLevel = "A2"
	CEFRB1 CEFRLevel = "B1"
	CEFRB2 CEFRLevel = "B2"
	CEFRC1 CEFRLevel = "C1"
	CEFRC2 CEFRLevel = "C2"
)

// DefaultCEFRLevel is the level assigned to a learner with no stored level.
const DefaultCEFRLevel = CEFRA1

// CEFRLevels lists every level in ascending order.
var CEFRLevels = []CEFRLevel{CEFRA1, CEFRA2, CEFRB1, CEFRB2, CEFRC1, CEFRC2}

var cefrDescriptions = map[CEFRLevel]string{
	CEFRA1: "Beginner",
	CEFRA2: "Elementary",
	CEFRB1: "Intermediate",
	CEFRB2: "Upper-Intermediate",
	CEFRC1: "Advanced",
	CEFRC2: "Proficient",
}

// ParseCEFRLevel converts a case-insensitive string such as "b2" into a CEFRLevel.
func ParseCEFRLevel(s string) (CEFRLevel, error) {
	level := CEFRLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCEFRLevel, s)
	}
	return level, nil
}

// Valid reports whether l is one of the six CEFR levels.
func (l CEFRLevel) Valid() bool {
	return l.index() >= 0
}

// Next returns the level above l, or l itself at C2.
func (l CEFRLevel) Next() CEFRLevel {
	i := l.index()
	if i < 0 {
		return l
	}
	if i == len(CEFRLevels)-1 {
		return l
	}
	return CEFRLevels[i+1]
}

// Previous returns the level below l, or l itself at A1.
func (l CEFRLevel) Previous() CEFRLevel {
	i := l.index()
	if i <= 0 {
		return l
	}
	return CEFRLevels[i-1]
}

// Compare returns -1, 0 or 1 depending on whether l is below, equal to or above other.
func (l CEFRLevel) Compare(other CEFRLevel) int {
	a, b := l.index(), other.index()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Description returns the human-readable name of the level, e.g. "Intermediate".
func (l CEFRLevel) Description() string {
	return cefrDescriptions[l]
}

func (l CEFRLevel) String() string {
	return string(l)
}

func (l CEFRLevel) index() int {
	for i, candidate := range CEFRLevels {
		if candidate == l {
			return i
		}
	}
	return -1
}
