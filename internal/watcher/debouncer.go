package watcher

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of change notifications into one trigger.
// A trigger is emitted only after the quiet window elapses with no further
// notifications.
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timer   *time.Timer
	output  chan struct{}
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		output: make(chan struct{}, 1),
	}
}

// Notify records a change. Repeated calls within the window reset it, so a
// burst produces exactly one trigger.
func (d *Debouncer) Notify() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire emits the trigger. The buffered channel makes the send non-blocking;
// an undrained trigger already covers this burst.
func (d *Debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	select {
	case d.output <- struct{}{}:
	default:
	}
}

// Output returns the channel of debounced triggers.
func (d *Debouncer) Output() <-chan struct{} {
	return d.output
}

// Stop stops the debouncer and closes the output channel.
// Safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
