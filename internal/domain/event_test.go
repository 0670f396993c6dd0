package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

func interval(d time.Time, start, end string) Event {
	s, _ := time.Parse("15:04", start)
	e, _ := time.Parse("15:04", end)
	return Event{
		Date:      d,
		Name:      "x",
		StartTime: time.Date(d.Year(), d.Month(), d.Day(), s.Hour(), s.Minute(), 0, 0, d.Location()),
		EndTime:   time.Date(d.Year(), d.Month(), d.Day(), e.Hour(), e.Minute(), 0, 0, d.Location()),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Event
		want bool
	}{
		{"touching boundary", interval(day, "09:00", "10:00"), interval(day, "10:00", "11:00"), false},
		{"partial overlap", interval(day, "09:00", "10:30"), interval(day, "10:00", "11:00"), true},
		{"contained", interval(day, "09:00", "12:00"), interval(day, "10:00", "11:00"), true},
		{"identical", interval(day, "09:00", "10:00"), interval(day, "09:00", "10:00"), true},
		{"disjoint", interval(day, "08:00", "09:00"), interval(day, "10:00", "11:00"), false},
		{"same time other day", interval(day, "09:00", "10:00"), interval(day.AddDate(0, 0, 1), "09:00", "10:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(&tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(&tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlapsIgnoresAnchorDayOfTimestamps(t *testing.T) {
	// A series occurrence carries the anchor day's timestamps with only
	// Date moved forward; overlap must still fire on wall-clock collision.
	occurrence := interval(day, "09:00", "10:00")
	occurrence.Date = day.AddDate(0, 0, 7)

	candidate := interval(day.AddDate(0, 0, 7), "09:30", "10:30")
	assert.True(t, occurrence.Overlaps(&candidate))
}

func TestValidate(t *testing.T) {
	valid := interval(day, "09:00", "10:00")
	valid.Name = "ok"
	require.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.Validate(), ErrMissingField)

	inverted := valid
	inverted.StartTime, inverted.EndTime = inverted.EndTime, inverted.StartTime
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidField)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 17, 45, 12, 99, time.Local)
	got := DateOf(ts)
	assert.True(t, got.Equal(day))
	assert.Equal(t, 0, got.Hour())
}

func TestEnums(t *testing.T) {
	assert.True(t, ValidCategory(""))
	assert.True(t, ValidCategory(CategoryWork))
	assert.False(t, ValidCategory("Errands"))

	assert.True(t, ValidRecurrence(RecurrenceNone))
	assert.True(t, ValidRecurrence(RecurrenceMonthly))
	assert.False(t, ValidRecurrence("Daily"))

	assert.Len(t, Categories(), 3)
	assert.Len(t, Recurrences(), 2)
}

func TestInMonth(t *testing.T) {
	e := interval(day, "09:00", "10:00")

	assert.True(t, e.InMonth(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, e.InMonth(time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, e.InMonth(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)), "same month of another year does not match")
}
