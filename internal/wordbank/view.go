package wordbank

import (
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Row is one record as shown in the word bank table.
type Row struct {
	domain.Word
	Due            bool   `json:"due"`
	NextReviewText string `json:"nextReviewText"`
}

// Group holds the rows sharing one SRS level.
type Group struct {
	SRSLevel int   `json:"srsLevel"`
	Words    []Row `json:"words"`
}

// Search returns the records whose word or translation contains term,
// case-insensitively. An empty term matches everything.
func Search(words []domain.Word, term string) []domain.Word {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return words
	}

	matched := make([]domain.Word, 0, len(words))
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Word), term) ||
			strings.Contains(strings.ToLower(w.Translation), term) {
			matched = append(matched, w)
		}
	}
	return matched
}

// GroupBySRSLevel buckets words by SRS level in ascending level order, each
// bucket sorted by next review time.
func GroupBySRSLevel(words []domain.Word, now time.Time) []Group {
	buckets := make(map[int][]Row)
	for _, w := range words {
		buckets[w.SRSLevel] = append(buckets[w.SRSLevel], Row{
			Word:           w,
			Due:            !w.NextReview.After(now),
			NextReviewText: FormatNextReview(w.NextReview, now),
		})
	}

	groups := make([]Group, 0, len(buckets))
	for level, rows := range buckets {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].NextReview.Equal(rows[j].NextReview) {
				return rows[i].ID < rows[j].ID
			}
			return rows[i].NextReview.Before(rows[j].NextReview)
		})
		groups = append(groups, Group{SRSLevel: level, Words: rows})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].SRSLevel < groups[j].SRSLevel })
	return groups
}

// FormatNextReview renders the time until next as "Due now" or "in 3 hours".
func FormatNextReview(next, now time.Time) string {
	if !next.After(now) {
		return "Due now"
	}
	return "in " + strings.TrimSpace(humanize.RelTime(next, now, "", ""))
}
