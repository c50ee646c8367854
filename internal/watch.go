package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

var errAlreadyWatching = errors.New("already watching")

// ReportFunc receives the outcome of every re-check triggered by a write.
type ReportFunc func(*Outcome)

// Watcher re-checks stylesheets when they are written.
type Watcher struct {
	engine   *Engine
	logger   *zap.Logger
	report   ReportFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	watching bool
	pending  map[string]*time.Timer
}

// NewWatcher creates a watcher. A nil logger discards log output and a nil
// report logs a summary of each outcome instead.
func NewWatcher(engine *Engine, logger *zap.Logger, report ReportFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Watcher{
		engine:   engine,
		logger:   logger,
		watcher:  fw,
		debounce: defaultDebounce,
	}
	w.report = report
	if w.report == nil {
		w.report = w.logOutcome
	}
	return w, nil
}

// Add watches dirs and every directory below them.
func (w *Watcher) Add(dirs ...string) error {
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

// Start handles file events until ctx is done or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return errAlreadyWatching
	}
	w.watching = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", zap.Error(err))
		}
	}
}

// Close stops watching and drops re-checks that have not run yet.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for name, timer := range w.pending {
		timer.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !w.engine.Accepts(event.Name) {
		return
	}

	if w.debounce <= 0 {
		w.recheck(event.Name)
		return
	}
	w.schedule(event.Name)
}

// schedule runs a re-check of name once no event for it has arrived for the
// debounce period. Editors often write a file in several steps.
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[name]; ok && timer.Stop() {
		timer.Reset(w.debounce)
		return
	}
	if w.pending == nil {
		w.pending = make(map[string]*time.Timer)
	}

	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		current := w.pending[name] == timer
		if current {
			delete(w.pending, name)
		}
		w.mu.Unlock()
		if current {
			w.recheck(name)
		}
	})
	w.pending[name] = timer
}

func (w *Watcher) recheck(name string) {
	outcome, err := w.engine.Run(name)
	if err != nil {
		w.logger.Error("Error checking file", zap.String("file", name), zap.Error(err))
		return
	}
	w.report(outcome)
}

func (w *Watcher) logOutcome(outcome *Outcome) {
	if len(outcome.Issues) == 0 {
		w.logger.Info("No issues found", zap.String("file", outcome.Filename))
		return
	}

	w.logger.Info("Found issues", zap.String("file", outcome.Filename), zap.Int("count", len(outcome.Issues)))
	for _, issue := range outcome.Issues {
		w.logger.Info("Issue",
			zap.String("rule", issue.Rule),
			zap.Int("line", issue.Start.Line),
			zap.Int("column", issue.Start.Column),
			zap.String("message", issue.Message),
		)
	}
}
