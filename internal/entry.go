// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/qcut/qcheck/internal/appdata"
	"github.com/qcut/qcheck/internal/apperr"
	"github.com/qcut/qcheck/internal/progress"
)

func newApplication(opts []Option) *application {
	app := &application{out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// setup validates the application, installs the JSON logger on stderr,
// and applies the color override. Reports go to stdout, logs to
// stderr, so captured reports stay diffable.
func (a *application) setup() (*Config, *slog.Logger, error) {
	if a.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	cfg := a.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.Level(),
	}))
	slog.SetDefault(logger)

	if cfg.App.NoColor || a.noColor {
		color.NoColor = true
	}
	return cfg, logger, nil
}

// RunProgress renders the test-progress report, optionally staying
// resident and re-rendering as result directories appear.
func RunProgress(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	cfg, logger, err := app.setup()
	if err != nil {
		return err
	}

	cp, err := cfg.Checkpoint.Baseline()
	if err != nil {
		return err
	}

	dir := cfg.Results.Path()
	if app.resultsDir != "" {
		dir = app.resultsDir
	}

	logger.Info("checking test progress",
		slog.String("dir", dir),
		slog.Int("checkpoint_count", cp.Completed),
		slog.Int("total", cp.Total))

	render := func() error {
		r, err := progress.Build(dir, cp, time.Now())
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				progress.RenderMissing(app.out, dir, time.Now(), cp)
			}
			return err
		}
		progress.Render(app.out, r)
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !app.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching results directory",
		slog.String("dir", dir),
		slog.Duration("interval", app.interval))

	rerender := func() error {
		fmt.Fprintln(app.out)
		return render()
	}
	var wopts []progress.WatchOption
	if app.interval > 0 {
		wopts = append(wopts, progress.WithInterval(app.interval))
	}
	return progress.Watch(ctx, dir, logger, rerender, wopts...)
}

// RunProjects renders the app-data state report. A missing root is a
// valid observation, not an error.
func RunProjects(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	cfg, logger, err := app.setup()
	if err != nil {
		return err
	}

	root := app.appDataRoot
	if root == "" {
		root, err = cfg.AppData.Path()
		if err != nil {
			return err
		}
	}

	logger.Info("inspecting app data", slog.String("root", root))

	in, err := appdata.Inspect(root, logger)
	if err != nil {
		return err
	}
	if app.detail {
		appdata.RenderDetail(app.out, in)
		return nil
	}
	appdata.Render(app.out, in)
	return nil
}
