// Package watch re-runs an action when a file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change triggers the action.
const DefaultDebounce = 250 * time.Millisecond

// Config holds watcher configuration.
type Config struct {
	// Path is the file to watch. Its directory is watched so that editors
	// that replace files on save are still seen.
	Path     string
	Debounce time.Duration
	// RunOnStart runs the action once before waiting for changes.
	RunOnStart bool
	// OnChange is called after each debounced burst of changes. Its errors
	// are logged and do not stop the watcher.
	OnChange func(ctx context.Context) error
	Logger   *slog.Logger
}

// Watch blocks until the context is cancelled.
func Watch(ctx context.Context, cfg Config) error {
	if cfg.OnChange == nil {
		return errors.New("watch: OnChange is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	target, err := filepath.Abs(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cfg.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	run := func() {
		logger.Debug("running action", "file", target)
		if err := cfg.OnChange(ctx); err != nil {
			logger.Error("action failed", "file", target, "error", err)
		}
	}
	if cfg.RunOnStart {
		run()
	}

	logger.Info("watching for changes", "file", target, "debounce", cfg.Debounce)

	// Debounce timer; stopped until the first event arrives.
	timer := time.NewTimer(cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			timer.Reset(cfg.Debounce)

		case <-timer.C:
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
