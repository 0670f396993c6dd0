package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazhate/planner/internal/domain"
)

func TestMonthGridPadsToFullWeeks(t *testing.T) {
	// March 2025: Mar 1 is a Saturday, Mar 31 a Monday.
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	grid := MonthGrid(march, time.Sunday)
	require.NotEmpty(t, grid)

	assert.Equal(t, time.Sunday, grid[0].Weekday())
	assert.Equal(t, time.Saturday, grid[len(grid)-1].Weekday())
	assert.Zero(t, len(grid)%7, "grid spans whole weeks")

	// Leading pad reaches back into February, trailing pad into April.
	assert.True(t, grid[0].Equal(time.Date(2025, 2, 23, 0, 0, 0, 0, time.Local)))
	assert.True(t, grid[len(grid)-1].Equal(time.Date(2025, 4, 5, 0, 0, 0, 0, time.Local)))
}

func TestMonthGridMondayStart(t *testing.T) {
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	grid := MonthGrid(march, time.Monday)
	assert.Equal(t, time.Monday, grid[0].Weekday())
	assert.Equal(t, time.Sunday, grid[len(grid)-1].Weekday())
	assert.True(t, grid[0].Equal(time.Date(2025, 2, 24, 0, 0, 0, 0, time.Local)))
}

func TestDailyCountsEmptyMonth(t *testing.T) {
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	counts := DailyCounts(nil, march, time.Sunday)
	assert.Empty(t, counts)
}

func TestDailyCountsSameDay(t *testing.T) {
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)
	events := []domain.Event{
		eventOn(day, "A", "08:00", "09:00"),
		eventOn(day, "B", "10:00", "11:00"),
		eventOn(day, "C", "12:00", "13:00"),
	}

	counts := DailyCounts(events, day, time.Sunday)
	require.Len(t, counts, 1)
	assert.Equal(t, 3, counts[day])
}

func TestDailyCountsIncludesAdjacentPadDays(t *testing.T) {
	// Feb 23 2025 sits in March's leading pad week.
	padDay := time.Date(2025, 2, 23, 0, 0, 0, 0, time.Local)
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	events := []domain.Event{eventOn(padDay, "A", "08:00", "09:00")}
	counts := DailyCounts(events, march, time.Sunday)
	assert.Equal(t, 1, counts[padDay])
}

func TestFilteredMonthList(t *testing.T) {
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)

	work := eventOn(day, "Review", "08:00", "09:00")
	work.Category = domain.CategoryWork
	personal := eventOn(day, "Gym", "18:00", "19:00")
	personal.Category = domain.CategoryPersonal
	weekly := eventOn(day, "Standup", "09:00", "09:30")
	weekly.Recurrence = domain.RecurrenceWeekly
	april := eventOn(time.Date(2025, 4, 2, 0, 0, 0, 0, time.Local), "Later", "08:00", "09:00")

	events := []domain.Event{work, personal, weekly, april}

	t.Run("no filter returns month-scoped set", func(t *testing.T) {
		got := FilteredMonthList(events, march, "", domain.RecurrenceNone)
		require.Len(t, got, 3)
		assert.Equal(t, "Review", got[0].Name, "store order is preserved")
	})

	t.Run("category filter", func(t *testing.T) {
		got := FilteredMonthList(events, march, domain.CategoryWork, domain.RecurrenceNone)
		require.Len(t, got, 1)
		assert.Equal(t, "Review", got[0].Name)
	})

	t.Run("recurrence filter", func(t *testing.T) {
		got := FilteredMonthList(events, march, "", domain.RecurrenceWeekly)
		require.Len(t, got, 1)
		assert.Equal(t, "Standup", got[0].Name)
	})
}

func TestFilteredMonthListComparesYearToo(t *testing.T) {
	march2025 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	events := []domain.Event{
		eventOn(time.Date(2024, 3, 12, 0, 0, 0, 0, time.Local), "Last year", "08:00", "09:00"),
		eventOn(time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local), "This year", "08:00", "09:00"),
	}

	got := FilteredMonthList(events, march2025, "", domain.RecurrenceNone)
	require.Len(t, got, 1)
	assert.Equal(t, "This year", got[0].Name)
}
