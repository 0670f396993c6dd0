package domain

import "time"

// Category classifies an event for filtering and display
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryOther    Category = "Other"
)

// Categories returns the closed set of selectable categories
func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryOther}
}

// ValidCategory reports whether c is empty or one of the known categories
func ValidCategory(c Category) bool {
	switch c {
	case "", CategoryWork, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// Recurrence is the authoring intent of the series an event belongs to
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

// Recurrences returns the selectable recurrence labels (excluding none)
func Recurrences() []Recurrence {
	return []Recurrence{RecurrenceWeekly, RecurrenceMonthly}
}

// ValidRecurrence reports whether r is a known recurrence label
func ValidRecurrence(r Recurrence) bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Event is a single dated occurrence, standalone or part of a recurring series
type Event struct {
	ID          string     `json:"id"`
	SeriesID    string     `json:"seriesId,omitempty"` // shared by all occurrences of one series
	Date        time.Time  `json:"date"`               // calendar day, normalized to local midnight
	Name        string     `json:"name"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     time.Time  `json:"endTime"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category,omitempty"`
	Recurrence  Recurrence `json:"recurrence,omitempty"`
	Rule        *Rule      `json:"recurrenceRule,omitempty"` // nil for one-off events
	IsRecurring bool       `json:"isRecurring,omitempty"`    // true only for expanded occurrences
	CreatedAt   time.Time  `json:"createdAt"`
}

// DateOf truncates t to its calendar day in local time
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// minuteOfDay reduces a timestamp to its wall-clock minute, since occurrences
// of a series keep the anchor day's timestamps and only Date moves.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Overlaps reports whether the [StartTime, EndTime) intervals of e and other
// intersect on the same day. Back-to-back events do not overlap.
func (e *Event) Overlaps(other *Event) bool {
	if !SameDay(e.Date, other.Date) {
		return false
	}
	return minuteOfDay(other.StartTime) < minuteOfDay(e.EndTime) &&
		minuteOfDay(e.StartTime) < minuteOfDay(other.EndTime)
}

// FormatTime returns the time range for display
func (e *Event) FormatTime() string {
	if e.EndTime.IsZero() {
		return e.StartTime.Format("15:04")
	}
	return e.StartTime.Format("15:04") + "-" + e.EndTime.Format("15:04")
}

// FormatDate returns the occurrence day for display
func (e *Event) FormatDate() string {
	return e.Date.Format("02.01.2006")
}

// IsToday returns true if the occurrence falls on the current day
func (e *Event) IsToday() bool {
	return SameDay(e.Date, time.Now())
}

// InMonth reports whether the occurrence falls within the given year and month
func (e *Event) InMonth(month time.Time) bool {
	return e.Date.Year() == month.Year() && e.Date.Month() == month.Month()
}
