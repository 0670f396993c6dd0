package service

import (
	"time"

	"github.com/tazhate/planner/internal/domain"
)

// MonthGrid returns every day the month view spans: the weeks containing the
// first and last of the month are completed with leading and trailing days of
// the adjacent months, honoring the configured first day of the week.
func MonthGrid(month time.Time, weekStart time.Weekday) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -daysSinceWeekStart(first.Weekday(), weekStart))
	end := last.AddDate(0, 0, 6-daysSinceWeekStart(last.Weekday(), weekStart))

	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func daysSinceWeekStart(d, weekStart time.Weekday) int {
	return (int(d) - int(weekStart) + 7) % 7
}

// DailyCounts computes the per-day occurrence counts for the grid badges.
// Days without events are omitted; a month with no events yields an empty map.
func DailyCounts(events []domain.Event, month time.Time, weekStart time.Weekday) map[time.Time]int {
	counts := make(map[time.Time]int)
	for _, day := range MonthGrid(month, weekStart) {
		for i := range events {
			if domain.SameDay(events[i].Date, day) {
				counts[day]++
			}
		}
	}
	return counts
}

// FilteredMonthList returns the month-scoped event list in store order.
// An empty category or recurrence filter matches everything; month scoping
// compares year and month.
func FilteredMonthList(events []domain.Event, month time.Time, category domain.Category, rec domain.Recurrence) []domain.Event {
	var out []domain.Event
	for _, e := range events {
		if category != "" && e.Category != category {
			continue
		}
		if rec != domain.RecurrenceNone && e.Recurrence != rec {
			continue
		}
		if !e.InMonth(month) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DailyCounts derives the grid badge counts from the current collection
func (s *EventService) DailyCounts(month time.Time, weekStart time.Weekday) map[time.Time]int {
	return DailyCounts(s.events, month, weekStart)
}

// FilteredMonthList derives the filtered month list from the current collection
func (s *EventService) FilteredMonthList(month time.Time, category domain.Category, rec domain.Recurrence) []domain.Event {
	return FilteredMonthList(s.events, month, category, rec)
}
