package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_SingleNotifyTriggers(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	// When: one notification arrives
	d.Notify()

	// Then: a trigger is emitted after the quiet window
	select {
	case _, ok := <-d.Output():
		assert.True(t, ok)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for trigger")
	}
}

func TestDebouncer_BurstCollapsesToOneTrigger(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	// When: a burst of notifications arrives within the window
	for i := 0; i < 10; i++ {
		d.Notify()
		time.Sleep(2 * time.Millisecond)
	}

	// Then: exactly one trigger is emitted
	select {
	case <-d.Output():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for trigger")
	}

	select {
	case <-d.Output():
		t.Fatal("burst must collapse into a single trigger")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncer_QuietPeriodResetsOnNewNotify(t *testing.T) {
	d := NewDebouncer(80 * time.Millisecond)
	defer d.Stop()

	d.Notify()
	time.Sleep(40 * time.Millisecond)
	d.Notify() // resets the window

	// Not yet fired at the original deadline
	select {
	case <-d.Output():
		t.Fatal("trigger fired before the reset window elapsed")
	case <-time.After(60 * time.Millisecond):
	}

	// Fires after the reset window
	select {
	case <-d.Output():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for trigger")
	}
}

func TestDebouncer_StopClosesOutput(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Stop()
	d.Stop() // safe to call twice

	_, ok := <-d.Output()
	assert.False(t, ok)

	// Notify after stop must not panic
	assert.NotPanics(t, func() { d.Notify() })
}
