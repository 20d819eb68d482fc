package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	appLog "monthcal/internal/log"
)

const (
	defaultLogLevel = "info"
	defaultRefresh  = "*/15 * * * *"
)

// EventConfig describes an event seeded into the calendar at startup.
type EventConfig struct {
	Day         int    `yaml:"day"`
	Description string `yaml:"description"`
	Hour        int    `yaml:"hour"`
	Minute      int    `yaml:"minute"`
	// Completed marks the event complete right after it is added.
	Completed bool `yaml:"completed,omitempty"`
}

// ICSConfig describes an iCalendar source whose single events are imported
// into the calendar month.
type ICSConfig struct {
	// ID is an internal identifier used for logging.
	ID string `yaml:"id"`
	// Path is a local file path or an http(s) URL.
	Path string `yaml:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	// Year selects the calendar year. It is a pointer because year 0 is a
	// valid year; a missing key means the current year.
	Year *int `yaml:"year,omitempty"`
	// Month is 1-12.
	Month int `yaml:"month"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Refresh is a cron-style schedule string (e.g. "*/15 * * * *") for
	// periodic agenda reports.
	Refresh string `yaml:"refresh"`

	Events []EventConfig `yaml:"events"`
	ICS    []ICSConfig   `yaml:"ics"`
}

// DefaultConfig returns an in-memory default configuration for the current
// month.
func DefaultConfig() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// CalendarYear returns the configured year, or the current year when unset.
func (c *Config) CalendarYear() int {
	if c.Year == nil {
		return time.Now().Year()
	}
	return *c.Year
}

// Normalize fills in missing values with defaults so that partially
// filled configs still behave correctly.
func (c *Config) Normalize() {
	now := time.Now()
	if c.Year == nil {
		year := now.Year()
		c.Year = &year
	}
	if c.Month == 0 {
		c.Month = int(now.Month())
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Refresh == "" {
		c.Refresh = defaultRefresh
	}
	if c.Events == nil {
		c.Events = []EventConfig{}
	}
	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
}

// Validate reports configuration values that cannot be used. Event entries
// are not checked here; the calendar decides what it accepts.
func (c *Config) Validate() error {
	var errs []error
	if c.Month < 1 || c.Month > 12 {
		errs = append(errs, fmt.Errorf("month %d not in [1, 12]", c.Month))
	}
	if _, err := appLog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := cron.ParseStandard(c.Refresh); err != nil {
		errs = append(errs, fmt.Errorf("refresh %q: %w", c.Refresh, err))
	}
	for i, src := range c.ICS {
		if src.Path == "" {
			errs = append(errs, fmt.Errorf("ics[%d]: path is empty", i))
		}
	}
	return errors.Join(errs...)
}

// Load reads the YAML config at path. On first run, when path does not
// exist yet, the defaults are written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errPathEmpty
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		appLog.Info("wrote default config", "path", path)
		return cfg, nil
	case err != nil:
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save normalizes cfg and writes it to path as YAML with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errPathEmpty
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFileAtomic(path, data)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}

var errPathEmpty = errors.New("config path is empty")

// writeFileAtomic replaces path with data so readers never observe a
// partially written config. The parent directory is created with 0700.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".monthcal-config-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o600); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
