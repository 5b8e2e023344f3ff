package domain

import (
	"fmt"
	"time"
)

// RevisionStat summarizes the learner's most recent completed session.
type RevisionStat struct {
	LastRevised    time.Time `json:"lastRevised"`
	RevisionLength string    `json:"revisionLength"`
	TotalWords     int       `json:"totalWords"`
	NewWords       int       `json:"newWords"`
	EndCEFRLevel   CEFRLevel `json:"endCEFRLevel"`
}

// FormatRevisionLength renders a session duration as "Xm Ys", rounded to the
// nearest second.
func FormatRevisionLength(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
