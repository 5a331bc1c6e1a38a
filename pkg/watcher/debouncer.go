// Package watcher reloads the shell configuration when its file changes.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window. Editors often
// write a file in several steps; one reload covers them all.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into a single call of fn, made once
// no trigger has arrived for the debounce duration.
type Debouncer struct {
	duration time.Duration
	fn       func()

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer calling fn. If duration is 0,
// DefaultDebounceDuration is used.
func NewDebouncer(duration time.Duration, fn func()) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{
		duration: duration,
		fn:       fn,
	}
}

// Trigger (re)starts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn()
	})
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any scheduled call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the debounce duration.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
