// Package recurrence expands a base event and its recurrence label into the
// concrete set of dated occurrences that get stored.
package recurrence

import (
	"fmt"

	"github.com/tazhate/planner/internal/domain"
)

// Expand materializes the occurrences for a base event.
//
// With no recurrence it is the identity: one occurrence, no rule attached.
// With Weekly or Monthly recurrence it produces exactly
// domain.OccurrenceCount occurrences, anchored on the base event's date
// (inclusive) with a 1-week or 1-month stride. Every expanded occurrence is a
// copy of base with its own date, the shared rule and IsRecurring set.
// Expansion is a pure function of its inputs.
func Expand(base domain.Event, freq domain.Recurrence) ([]domain.Event, error) {
	if freq == domain.RecurrenceNone {
		base.Rule = nil
		base.IsRecurring = false
		return []domain.Event{base}, nil
	}

	rule := domain.NewRule(freq, base.Date)
	r, err := rule.RRule()
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	occurrences := make([]domain.Event, 0, rule.Count)
	for _, day := range r.All() {
		occ := base
		occ.Date = domain.DateOf(day)
		occ.Rule = rule
		occ.IsRecurring = true
		occurrences = append(occurrences, occ)
	}

	return occurrences, nil
}
