package domain

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// OccurrenceCount is the fixed length of every recurring series
const OccurrenceCount = 10

// Rule is the derived recurrence definition attached to every occurrence
// of a recurring series
type Rule struct {
	Freq     Recurrence `json:"freq"`
	Anchor   time.Time  `json:"anchor"` // first day of the series
	Interval int        `json:"interval"`
	Count    int        `json:"count"`
}

// NewRule derives the recurrence definition for a series anchored on the given day
func NewRule(freq Recurrence, anchor time.Time) *Rule {
	return &Rule{
		Freq:     freq,
		Anchor:   DateOf(anchor),
		Interval: 1,
		Count:    OccurrenceCount,
	}
}

// RRule builds the equivalent iCalendar recurrence rule
func (r *Rule) RRule() (*rrule.RRule, error) {
	var freq rrule.Frequency
	switch r.Freq {
	case RecurrenceWeekly:
		freq = rrule.WEEKLY
	case RecurrenceMonthly:
		freq = rrule.MONTHLY
	default:
		return nil, fmt.Errorf("recurrence %q has no rule", r.Freq)
	}

	return rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Dtstart:  r.Anchor,
		Interval: r.Interval,
		Count:    r.Count,
	})
}

// Equal reports whether two rules describe the same series pattern
func (r *Rule) Equal(other *Rule) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Freq == other.Freq &&
		r.Anchor.Equal(other.Anchor) &&
		r.Interval == other.Interval &&
		r.Count == other.Count
}
