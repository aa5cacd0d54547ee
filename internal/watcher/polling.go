package watcher

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Aman-CERP/appdex/internal/scanner"
)

// PollingWatcher detects changes by periodically listing the search
// directories and comparing the set of bundle names. Used as a fallback
// when fsnotify is unavailable.
type PollingWatcher struct {
	dirs      []string
	interval  time.Duration
	debouncer *Debouncer
	errors    chan error
	stopCh    chan struct{}
	seen      map[string]time.Time
	mu        sync.Mutex
	stopped   bool
}

// NewPollingWatcher creates a polling watcher over the given directories.
func NewPollingWatcher(dirs []string, opts Options) *PollingWatcher {
	opts = opts.WithDefaults()
	return &PollingWatcher{
		dirs:      dirs,
		interval:  opts.PollInterval,
		debouncer: NewDebouncer(opts.Debounce),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}
}

// Start begins polling. It blocks until Stop or context cancellation.
func (p *PollingWatcher) Start(ctx context.Context) error {
	// Baseline snapshot; only subsequent differences trigger.
	p.seen = p.listBundles()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = p.Stop()
			return ctx.Err()
		case <-p.stopCh:
			return nil
		case <-ticker.C:
			if p.detectChanges() {
				p.debouncer.Notify()
			}
		}
	}
}

// listBundles records the bundle entries and their mod times across all
// watched directories. Unreadable directories contribute nothing.
func (p *PollingWatcher) listBundles() map[string]time.Time {
	state := make(map[string]time.Time)
	for _, dir := range p.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), scanner.BundleSuffix) {
				continue
			}
			var mod time.Time
			if info, err := entry.Info(); err == nil {
				mod = info.ModTime()
			}
			state[dir+"/"+entry.Name()] = mod
		}
	}
	return state
}

// detectChanges compares the current bundle set against the last snapshot.
func (p *PollingWatcher) detectChanges() bool {
	current := p.listBundles()

	p.mu.Lock()
	defer p.mu.Unlock()

	changed := len(current) != len(p.seen)
	if !changed {
		for path, mod := range current {
			prev, ok := p.seen[path]
			if !ok || !prev.Equal(mod) {
				changed = true
				break
			}
		}
	}

	p.seen = current
	return changed
}

// Triggers returns the channel of debounced change triggers.
func (p *PollingWatcher) Triggers() <-chan struct{} {
	return p.debouncer.Output()
}

// Errors returns the channel of errors.
func (p *PollingWatcher) Errors() <-chan error {
	return p.errors
}

// Stop stops the watcher.
func (p *PollingWatcher) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil
	}
	p.stopped = true

	close(p.stopCh)
	p.debouncer.Stop()
	close(p.errors)
	return nil
}
