package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/appdex/internal/scanner"
)

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	assert.Equal(t, 3*time.Second, opts.Debounce)
	assert.Equal(t, 30*time.Second, opts.PollInterval)

	custom := Options{Debounce: time.Second}.WithDefaults()
	assert.Equal(t, time.Second, custom.Debounce)
	assert.Equal(t, 30*time.Second, custom.PollInterval)
}

func TestFsnotifyWatcher_BundleCreateTriggers(t *testing.T) {
	dir := t.TempDir()

	w, err := newFsnotifyWatcher([]string{dir}, Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()
	defer func() { _ = w.Stop() }()

	// Let the watch registration settle
	time.Sleep(50 * time.Millisecond)

	// When: a bundle appears
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Safari"+scanner.BundleSuffix), 0o755))

	// Then: one debounced trigger arrives
	select {
	case <-w.Triggers():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for trigger")
	}
}

func TestFsnotifyWatcher_IgnoresNonBundleEntries(t *testing.T) {
	dir := t.TempDir()

	w, err := newFsnotifyWatcher([]string{dir}, Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()
	defer func() { _ = w.Stop() }()

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-w.Triggers():
		t.Fatal("non-bundle entries must not trigger reconciliation")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFsnotifyWatcher_MissingDirectorySkipped(t *testing.T) {
	w, err := newFsnotifyWatcher([]string{"/does/not/exist"}, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Start must not fail even when nothing can be watched
	err = w.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollingWatcher_DetectsNewBundle(t *testing.T) {
	dir := t.TempDir()

	p := NewPollingWatcher([]string{dir}, Options{
		Debounce:     30 * time.Millisecond,
		PollInterval: 40 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Start(ctx) }()
	defer func() { _ = p.Stop() }()

	// Baseline settles, then a bundle appears
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Mail"+scanner.BundleSuffix), 0o755))

	select {
	case <-p.Triggers():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for polling trigger")
	}
}

func TestPollingWatcher_NoChangeNoTrigger(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Safari"+scanner.BundleSuffix), 0o755))

	p := NewPollingWatcher([]string{dir}, Options{
		Debounce:     20 * time.Millisecond,
		PollInterval: 30 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Start(ctx) }()
	defer func() { _ = p.Stop() }()

	select {
	case <-p.Triggers():
		t.Fatal("unchanged directories must not trigger")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNew_ReturnsAWatcher(t *testing.T) {
	w := New([]string{t.TempDir()}, Options{})
	require.NotNil(t, w)
	assert.NoError(t, w.Stop())
}
