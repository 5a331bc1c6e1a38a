package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls a function after a single file changes. It watches the
// parent directory so that editors replacing the file by rename are seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   *slog.Logger
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) { w.debounce = d }
}

// WithLogger sets the logger for watch errors and events.
func WithLogger(l *slog.Logger) Option {
	return func(w *FileWatcher) { w.logger = l }
}

// New creates a watcher for path. onChange runs on a timer goroutine.
func New(path string, onChange func(), opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	w := &FileWatcher{
		path:     abs,
		debounce: DefaultDebounceDuration,
		onChange: onChange,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error if the watch could not be set up.
func (w *FileWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.logger.Debug("watching config", "path", w.path)

	deb := NewDebouncer(w.debounce, w.onChange)
	defer deb.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("config changed", "path", w.path, "op", ev.Op.String())
			deb.Trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", w.path, "err", err)
		}
	}
}
