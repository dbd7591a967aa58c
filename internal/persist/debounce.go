package persist

import (
	"sync"
	"time"
)

// Debouncer runs fn once after a burst of Trigger calls has been quiet for
// the configured delay.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	pending bool
	stopped bool
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush runs fn immediately if a call is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	run := d.pending && !d.stopped
	d.pending = false
	d.mu.Unlock()

	if run {
		d.fn()
	}
}

// Stop flushes any pending call and disables further triggers.
func (d *Debouncer) Stop() {
	d.Flush()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	run := d.pending && !d.stopped
	d.pending = false
	d.mu.Unlock()

	if run {
		d.fn()
	}
}
