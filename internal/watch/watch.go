// Package watch regenerates the alias header whenever the registry changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nodesetexporter/aliasmap/internal/generator"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Runner performs one full regeneration.
type Runner interface {
	Run(ctx context.Context) (*generator.Result, error)
}

// Config configures a Watcher.
type Config struct {
	SourcePath string
	Debounce   time.Duration
	Logger     *slog.Logger
	// OnResult is called after every regeneration, including the initial one.
	OnResult func(*generator.Result, error)
}

// Watcher runs a Runner once at start and again after each change to the
// registry file.
type Watcher struct {
	runner   Runner
	source   string
	debounce time.Duration
	logger   *slog.Logger
	onResult func(*generator.Result, error)

	mu sync.Mutex // serializes regenerations
}

// New returns a Watcher for runner.
func New(runner Runner, cfg Config) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		runner:   runner,
		source:   filepath.Clean(cfg.SourcePath),
		debounce: debounce,
		logger:   logger,
		onResult: cfg.OnResult,
	}
}

// Run blocks until ctx is done. The registry's directory is watched rather
// than the file itself so that editors replacing the file are noticed.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(w.source)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching registry", "path", w.source)

	w.regenerate(ctx)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

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
			if filepath.Clean(event.Name) != w.source {
				continue
			}

			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.regenerate(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) regenerate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	res, err := w.runner.Run(ctx)
	if err != nil {
		// OnResult owns user-facing reporting.
		w.logger.Debug("regeneration failed", "error", err)
	}
	if w.onResult != nil {
		w.onResult(res, err)
	}
}
