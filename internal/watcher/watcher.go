// Package watcher detects changes under the application search directories
// and turns bursts of filesystem events into single reconcile triggers.
//
// Watching is shallow: only immediate children of each directory matter,
// matching how bundles are discovered. fsnotify is the primary mechanism
// with polling as a fallback.
package watcher

import (
	"context"
	"time"
)

// Watcher is the filesystem-watcher port. Implementations emit one trigger
// per quiet period however many raw events arrived.
type Watcher interface {
	// Start begins watching. It blocks until Stop is called or the context
	// is cancelled; callers run it in its own goroutine.
	Start(ctx context.Context) error

	// Stop stops the watcher and releases resources.
	// Safe to call multiple times.
	Stop() error

	// Triggers returns the channel of debounced change triggers.
	// The channel is closed when the watcher stops.
	Triggers() <-chan struct{}

	// Errors returns a channel of watcher errors.
	// Non-fatal errors are sent here; the watcher continues running.
	Errors() <-chan error
}

// Options configures watcher behavior.
type Options struct {
	// Debounce is the quiet period before a trigger is emitted.
	// Default: 3s
	Debounce time.Duration

	// PollInterval is the interval for polling mode (fallback).
	// Default: 30s
	PollInterval time.Duration
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		Debounce:     3 * time.Second,
		PollInterval: 30 * time.Second,
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.Debounce == 0 {
		o.Debounce = defaults.Debounce
	}
	if o.PollInterval == 0 {
		o.PollInterval = defaults.PollInterval
	}
	return o
}

// New creates a watcher for the given directories: fsnotify when available,
// polling otherwise.
func New(dirs []string, opts Options) Watcher {
	opts = opts.WithDefaults()
	if w, err := newFsnotifyWatcher(dirs, opts); err == nil {
		return w
	}
	return NewPollingWatcher(dirs, opts)
}
