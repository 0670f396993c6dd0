package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required event field is empty
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a field holds a value outside its
	// allowed range, such as an unknown category or an inverted time range
	ErrInvalidField = errors.New("invalid field value")

	// ErrOverlap is returned when an event's time range collides with an
	// existing event on the same day
	ErrOverlap = errors.New("event timing overlaps with another event")

	// ErrNotFound is returned when no event matches the given (id, date) pair
	ErrNotFound = errors.New("event not found")
)

// Validate checks the required-field and time-ordering constraints for a
// candidate event. It does not consult the store.
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if e.StartTime.IsZero() {
		return fmt.Errorf("%w: start time", ErrMissingField)
	}
	if e.EndTime.IsZero() {
		return fmt.Errorf("%w: end time", ErrMissingField)
	}
	if !e.StartTime.Before(e.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidField)
	}
	return nil
}
