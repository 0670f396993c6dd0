package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tazhate/planner/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores the collection in a single events table. Save still follows
// replace-on-write semantics: one transaction clears the table and rewrites
// the full snapshot, so the persisted state always mirrors one Save call.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) an SQLite database at the given path
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			series_id TEXT DEFAULT '',
			date DATETIME NOT NULL,
			name TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			description TEXT DEFAULT '',
			category TEXT DEFAULT '',
			recurrence TEXT DEFAULT '',
			rule TEXT,
			is_recurring INTEGER DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_series ON events(series_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load returns the persisted events in their saved order
func (s *SQLite) Load() ([]domain.Event, error) {
	rows, err := s.db.Query(`SELECT id, series_id, date, name, start_time, end_time,
		description, category, recurrence, rule, is_recurring, created_at
		FROM events ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var ruleJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.SeriesID, &e.Date, &e.Name, &e.StartTime,
			&e.EndTime, &e.Description, &e.Category, &e.Recurrence,
			&ruleJSON, &e.IsRecurring, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		if ruleJSON.Valid && ruleJSON.String != "" {
			var r domain.Rule
			if err := json.Unmarshal([]byte(ruleJSON.String), &r); err != nil {
				return nil, fmt.Errorf("unmarshal rule: %w", err)
			}
			e.Rule = &r
		}

		e.Date = domain.DateOf(e.Date.Local())
		e.StartTime = e.StartTime.Local()
		e.EndTime = e.EndTime.Local()
		events = append(events, e)
	}

	return events, rows.Err()
}

// Save replaces the persisted collection with the given snapshot
func (s *SQLite) Save(events []domain.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO events (id, series_id, date, name,
		start_time, end_time, description, category, recurrence, rule,
		is_recurring, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		var ruleJSON any
		if e.Rule != nil {
			data, err := json.Marshal(e.Rule)
			if err != nil {
				return fmt.Errorf("marshal rule: %w", err)
			}
			ruleJSON = string(data)
		}

		if _, err := stmt.Exec(e.ID, e.SeriesID, e.Date, e.Name, e.StartTime,
			e.EndTime, e.Description, e.Category, e.Recurrence, ruleJSON,
			e.IsRecurring, e.CreatedAt); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return tx.Commit()
}
