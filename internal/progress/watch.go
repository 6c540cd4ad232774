package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultInterval = 30 * time.Second
	defaultDebounce = 500 * time.Millisecond
)

type watchOptions struct {
	interval time.Duration
	debounce time.Duration
}

// WatchOption adjusts watch timing.
type WatchOption func(*watchOptions)

// WithInterval sets how often the report is re-rendered when no
// filesystem events arrive.
func WithInterval(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.interval = d
	}
}

// WithDebounce sets how long filesystem events must settle before a
// re-render.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.debounce = d
	}
}

// Watch re-renders the progress report whenever the results directory
// changes, and at a fixed interval as a fallback for filesystems with
// unreliable notifications. Events are debounced so a burst of writes
// produces a single render. Watch returns nil once ctx is cancelled,
// or the render error if one fails.
func Watch(ctx context.Context, dir string, logger *slog.Logger, render func() error, opts ...WatchOption) error {
	o := watchOptions{
		interval: defaultInterval,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(&o)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("progress: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("progress: watch %s: %w", dir, err)
	}

	// The debounce timer starts drained and is armed by events.
	debounce := time.NewTimer(o.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("results changed",
					slog.String("path", ev.Name),
					slog.String("op", ev.Op.String()))
				debounce.Reset(o.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("error", err.Error()))
		case <-debounce.C:
			if err := render(); err != nil {
				return err
			}
			ticker.Reset(o.interval)
		case <-ticker.C:
			if err := render(); err != nil {
				return err
			}
		}
	}
}
