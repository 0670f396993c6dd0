// Package storage persists the event collection. Persistence is
// whole-collection replace-on-write: Save replaces the previously persisted
// state with the given snapshot, and Load returns the last saved snapshot.
package storage

import (
	"fmt"

	"github.com/tazhate/planner/internal/domain"
)

// Store is the durable home of the canonical event collection
type Store interface {
	// Load returns the persisted events in store order, or an empty slice
	// when nothing has been persisted yet.
	Load() ([]domain.Event, error)
	// Save replaces the persisted collection with events. An empty snapshot
	// is persisted too, so clearing the calendar is durable.
	Save(events []domain.Event) error
	Close() error
}

// Open creates the store backend selected by driver ("bolt" or "sqlite")
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", "bolt":
		return NewBolt(path)
	case "sqlite":
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
