package internal

import (
	"io"
	"time"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config      *Config
	out         io.Writer
	resultsDir  string
	appDataRoot string
	watch       bool
	interval    time.Duration
	detail      bool
	noColor     bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithOutput redirects report output, which defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithResultsDir overrides the configured results directory.
func WithResultsDir(dir string) Option {
	return func(a *application) {
		a.resultsDir = dir
	}
}

// WithAppDataRoot overrides the configured app-data root.
func WithAppDataRoot(root string) Option {
	return func(a *application) {
		a.appDataRoot = root
	}
}

// WithWatch keeps the progress reporter resident, re-rendering on
// changes and every interval. A zero interval keeps the default.
func WithWatch(interval time.Duration) Option {
	return func(a *application) {
		a.watch = true
		a.interval = interval
	}
}

// WithDetail appends the storage breakdown table to the projects report.
func WithDetail() Option {
	return func(a *application) {
		a.detail = true
	}
}

// WithNoColor disables colored status lines.
func WithNoColor() Option {
	return func(a *application) {
		a.noColor = true
	}
}
