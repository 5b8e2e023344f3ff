package srs

import (
	"time"

	"github.com/phrazzld/wordwise/internal/domain"
)

// Params defines the configurable parameters of the scheduler.
type Params struct {
	// Intervals maps SRS level (1..8) to the time until the next review.
	Intervals map[int]time.Duration
}

// ParamsConfig allows overriding the default interval table. IntervalHours[i]
// is the interval for level i+1; zero or missing entries keep the default.
type ParamsConfig struct {
	IntervalHours []int
}

var defaultIntervalHours = map[int]int{
	1: 12,
	2: 48,
	3: 96,
	4: 240,
	5: 336,
	6: 720,
	7: 4380,
	8: 8760,
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	intervals := make(map[int]time.Duration, len(defaultIntervalHours))
	for level, hours := range defaultIntervalHours {
		intervals[level] = time.Duration(hours) * time.Hour
	}
	return &Params{Intervals: intervals}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	for i, hours := range config.IntervalHours {
		level := i + 1
		if level > domain.MaxSRSLevel {
			break
		}
		if hours > 0 {
			params.Intervals[level] = time.Duration(hours) * time.Hour
		}
	}

	return params
}

// Interval returns the review interval for level. Levels outside 1..8 use the
// level-8 interval.
func (p *Params) Interval(level int) time.Duration {
	if interval, ok := p.Intervals[level]; ok && level >= domain.MinSRSLevel && level <= domain.MaxSRSLevel {
		return interval
	}
	return p.Intervals[domain.MaxSRSLevel]
}
