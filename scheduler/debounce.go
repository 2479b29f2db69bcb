package scheduler

import (
	"sync"
	"time"
)

// DefaultDebounce is the resize debounce window.
const DefaultDebounce = 120 * time.Millisecond

// Debouncer collapses bursts of Trigger calls into one callback that runs
// once no call arrived for Delay.
type Debouncer struct {
	mu      sync.Mutex
	timers  Timers
	delay   time.Duration
	pending Stopper
}

// NewDebouncer returns a Debouncer on timers; delay ≤ 0 uses DefaultDebounce.
func NewDebouncer(timers Timers, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{timers: timers, delay: delay}
}

// Trigger re-arms the window with fn, replacing any pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	var self Stopper
	self = d.timers.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.pending == self {
			d.pending = nil
		}
		d.mu.Unlock()
		fn()
	})
	d.pending = self
}

// Pending reports whether a callback is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels the pending callback, reporting whether one was armed.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return false
	}
	stopped := d.pending.Stop()
	d.pending = nil
	return stopped
}
