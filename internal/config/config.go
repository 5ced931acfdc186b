// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tiwariParth/tasklist/internal/classifier"
	"github.com/tiwariParth/tasklist/internal/task"
)

const (
	// DefaultFile is read from the working directory when no -config flag
	// is given. It is optional.
	DefaultFile = "tasklist.yaml"

	// BackendCSV stores tasks in a CSV file.
	BackendCSV = "csv"

	// BackendSQLite stores tasks in an SQLite database file.
	BackendSQLite = "sqlite"
)

// Config holds all settings.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	SortOrder  string           `yaml:"sort_order"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Log        LogConfig        `yaml:"log"`

	// NoColor disables ANSI colors in menu output.
	NoColor bool `yaml:"no_color"`
}

// StorageConfig selects the persisted store.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ClassifierConfig holds training hyper-parameters.
type ClassifierConfig struct {
	Alpha float64 `yaml:"alpha"`
	MinDF int     `yaml:"min_df"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := classifier.DefaultOptions()
	return &Config{
		Storage: StorageConfig{
			Backend: BackendCSV,
			Path:    "tasks.csv",
		},
		SortOrder: string(task.SortLexical),
		Classifier: ClassifierConfig{
			Alpha: opts.Alpha,
			MinDF: opts.MinDF,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads path over the defaults. If path is empty, DefaultFile is
// tried and silently skipped when absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %s or %s, got %q", BackendCSV, BackendSQLite, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path must not be empty")
	}
	if _, err := task.ParseSortOrder(c.SortOrder); err != nil {
		return fmt.Errorf("sort_order: %w", err)
	}
	if c.Classifier.Alpha <= 0 {
		return fmt.Errorf("classifier.alpha must be positive, got %v", c.Classifier.Alpha)
	}
	if c.Classifier.MinDF < 1 {
		return fmt.Errorf("classifier.min_df must be at least 1, got %d", c.Classifier.MinDF)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ClassifierOptions converts the classifier section.
func (c *Config) ClassifierOptions() classifier.Options {
	return classifier.Options{Alpha: c.Classifier.Alpha, MinDF: c.Classifier.MinDF}
}

// Order returns the validated sort order.
func (c *Config) Order() task.SortOrder {
	order, _ := task.ParseSortOrder(c.SortOrder)
	return order
}
