package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/tazhate/planner/internal/domain"
)

const (
	boltBucketCalendar = "calendar"
	boltKeyEvents      = "events" // JSON array of domain.Event
)

// Bolt stores the collection as a single JSON blob under one fixed key
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) a Bolt database at the given path
func NewBolt(path string) (*Bolt, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketCalendar))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Close closes the database
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Load returns the persisted events. An absent key means no prior state;
// a blob that no longer unmarshals is treated the same way rather than
// failing the session.
func (b *Bolt) Load() ([]domain.Event, error) {
	var events []domain.Event

	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketCalendar)).Get([]byte(boltKeyEvents))
		if v == nil {
			return nil
		}

		if err := json.Unmarshal(v, &events); err != nil {
			log.Printf("storage: discarding corrupt event blob: %v", err)
			events = nil
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	return events, nil
}

// Save replaces the persisted collection with the given snapshot
func (b *Bolt) Save(events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketCalendar)).Put([]byte(boltKeyEvents), data)
	})
}
