package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration
type Config struct {
	// DataPath is the store file location.
	DataPath string `yaml:"data_path"`

	// Driver selects the store backend: "bolt" (default) or "sqlite".
	Driver string `yaml:"driver"`

	// WeekStart controls which weekday opens a grid row: "sunday" (default)
	// or "monday".
	WeekStart string `yaml:"week_start"`

	// AgendaTime is the wall-clock "HH:MM" at which the daily agenda fires.
	AgendaTime string `yaml:"agenda_time"`

	// ReminderLead is how many minutes before an event the upcoming-event
	// reminder fires.
	ReminderLead int `yaml:"reminder_lead"`
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "planner.yaml"
	}
	return filepath.Join(home, ".planner", "config.yaml")
}

// Default returns an in-memory default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values with defaults so partially-filled configs
// still behave
func (c *Config) Normalize() {
	if c.DataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.DataPath = filepath.Join(home, ".planner", "planner.db")
	}
	switch c.Driver {
	case "bolt", "sqlite":
	default:
		c.Driver = "bolt"
	}
	switch c.WeekStart {
	case "sunday", "monday":
	default:
		c.WeekStart = "sunday"
	}
	if c.AgendaTime == "" {
		c.AgendaTime = "09:00"
	}
	if c.ReminderLead <= 0 {
		c.ReminderLead = 30
	}
}

// FirstWeekday maps the configured week start onto time.Weekday
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Load reads the config from path. A missing file creates and returns the
// defaults; an existing file is unmarshaled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the config atomically via a temp file + rename
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".planner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
