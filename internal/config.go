package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/qcut/qcheck/internal/progress"
)

// Log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const checkpointTimeLayout = "2006-01-02 15:04:05"

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Results    ResultsConfig     `yaml:"results"`
	Checkpoint CheckpointConfig  `yaml:"checkpoint"`
	AppData    AppDataConfig     `yaml:"appdata"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Checkpoint.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel string `yaml:"log_level"`
	NoColor  bool   `yaml:"no_color"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
	)
}

// Level maps the configured name to a slog level. Unset falls back to
// warn so plain runs emit only the report.
func (c *ApplicationConfig) Level() slog.Level {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ResultsConfig locates the E2E result directories.
type ResultsConfig struct {
	Dir string `yaml:"dir"`
}

// Path returns the configured directory. When unset it falls back to
// the conventional repo location relative to the working directory.
func (c *ResultsConfig) Path() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join("docs", "completed", "test-results-raw")
}

// CheckpointConfig is the recorded progress baseline the reporter
// compares against.
type CheckpointConfig struct {
	Time      string `yaml:"time"`
	Completed int    `yaml:"completed"`
	Total     int    `yaml:"total"`
	// Percent is the completion percentage recorded when the
	// checkpoint was taken. It is reported verbatim.
	Percent int `yaml:"percent"`
}

// Validate validates the checkpoint configuration.
func (c *CheckpointConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Time, validation.Required, validation.Date(checkpointTimeLayout)),
		validation.Field(&c.Total, validation.Required, validation.Min(1)),
		validation.Field(&c.Completed, validation.Min(0)),
		validation.Field(&c.Percent, validation.Min(0), validation.Max(100)),
	); err != nil {
		return err
	}
	if c.Completed > c.Total {
		return fmt.Errorf("checkpoint: completed %d exceeds total %d", c.Completed, c.Total)
	}
	return nil
}

// Baseline parses the section into the comparison checkpoint. The time
// is interpreted in local time, matching how it was recorded.
func (c *CheckpointConfig) Baseline() (progress.Checkpoint, error) {
	ts, err := time.ParseInLocation(checkpointTimeLayout, c.Time, time.Local)
	if err != nil {
		return progress.Checkpoint{}, fmt.Errorf("checkpoint: parse time: %w", err)
	}
	return progress.Checkpoint{
		Time:      ts,
		Completed: c.Completed,
		Total:     c.Total,
		Percent:   c.Percent,
	}, nil
}

// AppDataConfig locates the QCut per-user data directory.
type AppDataConfig struct {
	Root string `yaml:"root"`
}

// Path returns the configured root. When unset it falls back to the
// platform user-config directory, the location QCut itself writes to.
func (c *AppDataConfig) Path() (string, error) {
	if c.Root != "" {
		return c.Root, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(base, "qcut"), nil
}

// NewDefaultConfig returns a new Config carrying the recorded
// checkpoint and the conventional paths.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: LogLevelWarn,
		},
		Checkpoint: CheckpointConfig{
			Time:      "2025-10-23 15:38:30",
			Completed: 40,
			Total:     66,
			Percent:   61,
		},
	}
}
