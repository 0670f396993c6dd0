package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tazhate/planner/internal/domain"
	"github.com/tazhate/planner/internal/recurrence"
	"github.com/tazhate/planner/internal/storage"
)

// EventService owns the canonical event collection and orchestrates
// create/replace/delete against the store. Each mutation computes the new
// collection snapshot and persists it exactly once.
type EventService struct {
	store  storage.Store
	events []domain.Event // store order
}

// NewEventService creates the service and loads prior state. Unreadable
// persisted state is treated as an empty calendar, not a failure.
func NewEventService(store storage.Store) *EventService {
	events, err := store.Load()
	if err != nil {
		log.Printf("load events: %v (starting empty)", err)
		events = nil
	}
	return &EventService{store: store, events: events}
}

// Events returns the collection in store order
func (s *EventService) Events() []domain.Event {
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// IsOverlapping reports whether the candidate's time range collides with any
// existing event on the candidate's selected day
func (s *EventService) IsOverlapping(candidate *domain.Event) bool {
	for i := range s.events {
		if s.events[i].Overlaps(candidate) {
			return true
		}
	}
	return false
}

// Create admits a new event. Required fields are validated first, then the
// overlap check runs against the selected day; either failure aborts with no
// state change. A recurring event is expanded and all of its occurrences are
// appended in one batch. Returns the stored occurrences.
func (s *EventService) Create(e domain.Event) ([]domain.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if !domain.ValidCategory(e.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidField, e.Category)
	}
	if !domain.ValidRecurrence(e.Recurrence) {
		return nil, fmt.Errorf("%w: unknown recurrence %q", domain.ErrInvalidField, e.Recurrence)
	}

	e.Date = domain.DateOf(e.Date)
	if s.IsOverlapping(&e) {
		return nil, domain.ErrOverlap
	}

	e.ID = uuid.New().String()
	e.CreatedAt = time.Now()

	occurrences, err := recurrence.Expand(e, e.Recurrence)
	if err != nil {
		return nil, err
	}

	if e.Recurrence != domain.RecurrenceNone {
		seriesID := uuid.New().String()
		for i := range occurrences {
			occurrences[i].ID = uuid.New().String()
			occurrences[i].SeriesID = seriesID
		}
	}

	snapshot := append(s.Events(), occurrences...)
	s.commit(snapshot)
	return occurrences, nil
}

// Replace swaps the record matching (oldID, oldDate) for the given event,
// keeping its position and identifier. The overlap check runs against the
// target day excluding the record being replaced.
func (s *EventService) Replace(oldID string, oldDate time.Time, e domain.Event) (domain.Event, error) {
	idx := s.find(oldID, oldDate)
	if idx < 0 {
		return domain.Event{}, domain.ErrNotFound
	}

	if err := e.Validate(); err != nil {
		return domain.Event{}, err
	}
	if !domain.ValidCategory(e.Category) {
		return domain.Event{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidField, e.Category)
	}
	if !domain.ValidRecurrence(e.Recurrence) {
		return domain.Event{}, fmt.Errorf("%w: unknown recurrence %q", domain.ErrInvalidField, e.Recurrence)
	}

	e.Date = domain.DateOf(e.Date)
	for i := range s.events {
		if i != idx && s.events[i].Overlaps(&e) {
			return domain.Event{}, domain.ErrOverlap
		}
	}

	old := s.events[idx]
	e.ID = old.ID
	e.SeriesID = old.SeriesID
	e.CreatedAt = old.CreatedAt

	snapshot := s.Events()
	snapshot[idx] = e
	s.commit(snapshot)
	return e, nil
}

// Delete removes exactly the occurrence matching (id, date). Sibling
// occurrences of the same series are untouched.
func (s *EventService) Delete(id string, date time.Time) error {
	idx := s.find(id, date)
	if idx < 0 {
		return domain.ErrNotFound
	}

	snapshot := make([]domain.Event, 0, len(s.events)-1)
	snapshot = append(snapshot, s.events[:idx]...)
	snapshot = append(snapshot, s.events[idx+1:]...)
	s.commit(snapshot)
	return nil
}

// DeleteSeries removes every occurrence sharing the given series ID and
// returns how many were removed
func (s *EventService) DeleteSeries(seriesID string) (int, error) {
	if seriesID == "" {
		return 0, fmt.Errorf("series id is required")
	}

	snapshot := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.SeriesID != seriesID {
			snapshot = append(snapshot, e)
		}
	}

	removed := len(s.events) - len(snapshot)
	if removed == 0 {
		return 0, domain.ErrNotFound
	}

	s.commit(snapshot)
	return removed, nil
}

// Get returns the occurrence matching (id, date)
func (s *EventService) Get(id string, date time.Time) (domain.Event, error) {
	idx := s.find(id, date)
	if idx < 0 {
		return domain.Event{}, domain.ErrNotFound
	}
	return s.events[idx], nil
}

func (s *EventService) find(id string, date time.Time) int {
	for i := range s.events {
		if s.events[i].ID == id && domain.SameDay(s.events[i].Date, date) {
			return i
		}
	}
	return -1
}

// commit adopts the snapshot in memory and persists it once. A write failure
// leaves the prior persisted state stale but does not fail the operation.
func (s *EventService) commit(snapshot []domain.Event) {
	if err := s.store.Save(snapshot); err != nil {
		log.Printf("save events: %v (persisted state is stale)", err)
	}
	s.events = snapshot
}
