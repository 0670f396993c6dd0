package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazhate/planner/config"
	"github.com/tazhate/planner/internal/domain"
	"github.com/tazhate/planner/internal/service"
)

type memStore struct{ events []domain.Event }

func (m *memStore) Load() ([]domain.Event, error) { return m.events, nil }

func (m *memStore) Save(events []domain.Event) error { m.events = events; return nil }

func (m *memStore) Close() error { return nil }

type recordingNotifier struct{ messages []string }

func (r *recordingNotifier) Notify(text string) error {
	r.messages = append(r.messages, text)
	return nil
}

func newScheduler(t *testing.T) (*Scheduler, *service.EventService, *recordingNotifier) {
	t.Helper()
	svc := service.NewEventService(&memStore{})
	sched := New(config.Default(), svc)
	rec := &recordingNotifier{}
	sched.SetNotifier(rec)
	return sched, svc, rec
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hh, mm  int
		wantErr bool
	}{
		{in: "09:00", hh: 9, mm: 0},
		{in: "23:59", hh: 23, mm: 59},
		{in: "7:30", hh: 7, mm: 30},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hh, mm, err := parseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hh, hh)
			assert.Equal(t, tt.mm, mm)
		})
	}
}

func TestDailyAgendaListsTodaysEvents(t *testing.T) {
	sched, svc, rec := newScheduler(t)

	today := domain.DateOf(time.Now())
	_, err := svc.Create(domain.Event{
		Date:      today,
		Name:      "Dentist",
		StartTime: today.Add(10 * time.Hour),
		EndTime:   today.Add(11 * time.Hour),
	})
	require.NoError(t, err)

	sched.dailyAgenda()
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "Dentist")
}

func TestDailyAgendaStaysQuietWithNoEvents(t *testing.T) {
	sched, _, rec := newScheduler(t)
	sched.dailyAgenda()
	assert.Empty(t, rec.messages)
}

func TestCheckUpcomingRemindsOnce(t *testing.T) {
	now := time.Now()
	if now.Add(20 * time.Minute).Day() != now.Day() {
		t.Skip("too close to midnight for a same-day reminder window")
	}

	sched, svc, rec := newScheduler(t)

	today := domain.DateOf(now)
	_, err := svc.Create(domain.Event{
		Date:      today,
		Name:      "Dentist",
		StartTime: now.Add(15 * time.Minute),
		EndTime:   now.Add(45 * time.Minute),
	})
	require.NoError(t, err)

	sched.checkUpcoming()
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "Dentist")

	// The same occurrence is not reminded twice.
	sched.checkUpcoming()
	assert.Len(t, rec.messages, 1)
}

func TestCheckUpcomingIgnoresEventsOutsideLead(t *testing.T) {
	now := time.Now()
	if now.Add(3 * time.Hour).Day() != now.Day() {
		t.Skip("too close to midnight for a same-day reminder window")
	}

	sched, svc, rec := newScheduler(t)

	today := domain.DateOf(now)
	_, err := svc.Create(domain.Event{
		Date:      today,
		Name:      "Far away",
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(3 * time.Hour),
	})
	require.NoError(t, err)

	sched.checkUpcoming()
	assert.Empty(t, rec.messages)
}
