package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Aman-CERP/appdex/internal/scanner"
)

// FsnotifyWatcher watches the search directories through OS change
// notification. Directories that do not exist at start are skipped; the
// scanner treats them the same way.
type FsnotifyWatcher struct {
	fsw       *fsnotify.Watcher
	dirs      []string
	debouncer *Debouncer
	errors    chan error
	stopCh    chan struct{}
	mu        sync.Mutex
	stopped   bool
}

func newFsnotifyWatcher(dirs []string, opts Options) (*FsnotifyWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FsnotifyWatcher{
		fsw:       fsw,
		dirs:      dirs,
		debouncer: NewDebouncer(opts.Debounce),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}, nil
}

// Start begins watching. It blocks until Stop or context cancellation.
func (w *FsnotifyWatcher) Start(ctx context.Context) error {
	watched := 0
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			slog.Warn("failed to watch directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			continue
		}
		watched++
	}
	slog.Debug("fsnotify watcher started", slog.Int("dirs", watched))

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.emitError(err)
		}
	}
}

// handleEvent filters raw events down to bundle-relevant ones and feeds the
// debouncer.
func (w *FsnotifyWatcher) handleEvent(event fsnotify.Event) {
	// Chmod churn carries no index-relevant information.
	if event.Op&fsnotify.Chmod != 0 && event.Op&^fsnotify.Chmod == 0 {
		return
	}

	if !strings.HasSuffix(filepath.Base(event.Name), scanner.BundleSuffix) {
		return
	}

	slog.Debug("bundle change detected",
		slog.String("path", event.Name),
		slog.String("op", event.Op.String()))

	w.debouncer.Notify()
}

// Triggers returns the channel of debounced change triggers.
func (w *FsnotifyWatcher) Triggers() <-chan struct{} {
	return w.debouncer.Output()
}

// Errors returns the channel of errors.
func (w *FsnotifyWatcher) Errors() <-chan error {
	return w.errors
}

func (w *FsnotifyWatcher) emitError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Stop stops the watcher and releases resources.
func (w *FsnotifyWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true

	close(w.stopCh)
	w.debouncer.Stop()
	_ = w.fsw.Close()
	close(w.errors)
	return nil
}
