// Package ics renders the event collection as an iCalendar document.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tazhate/planner/internal/domain"
)

// Export converts the collection to an iCalendar calendar. Occurrences of a
// recurring series collapse into a single VEVENT carrying the series RRULE;
// standalone events become one VEVENT each.
func Export(events []domain.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//planner//calendar//EN")

	seen := make(map[string]bool)
	for i := range events {
		e := &events[i]
		if e.SeriesID != "" {
			if seen[e.SeriesID] {
				continue
			}
			seen[e.SeriesID] = true
		}
		cal.Children = append(cal.Children, eventToVEvent(e).Component)
	}

	return cal
}

// Serialize encodes the calendar to its wire format
func Serialize(cal *ical.Calendar) (string, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode calendar: %w", err)
	}
	return buf.String(), nil
}

func eventToVEvent(e *domain.Event) *ical.Event {
	vevent := ical.NewEvent()

	uid := e.ID
	if e.SeriesID != "" {
		uid = e.SeriesID
	}
	vevent.Props.SetText(ical.PropUID, uid+"@planner")
	vevent.Props.SetText(ical.PropSummary, e.Name)

	if e.Description != "" {
		vevent.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Category != "" {
		vevent.Props.SetText(ical.PropCategories, string(e.Category))
	}

	// Occurrences carry the anchor day's timestamps; rebase onto the
	// occurrence date before encoding.
	start := onDay(e.Date, e.StartTime)
	end := onDay(e.Date, e.EndTime)
	vevent.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	if !e.EndTime.IsZero() {
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	}

	if e.Rule != nil {
		rrule := ical.NewProp(ical.PropRecurrenceRule)
		rrule.Value = ruleText(e.Rule)
		vevent.Props.Set(rrule)
	}

	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	return vevent
}

func ruleText(r *domain.Rule) string {
	freq := "WEEKLY"
	if r.Freq == domain.RecurrenceMonthly {
		freq = "MONTHLY"
	}
	return fmt.Sprintf("FREQ=%s;INTERVAL=%d;COUNT=%d", freq, r.Interval, r.Count)
}

func onDay(day, t time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, day.Location())
}
