package viewport

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces a burst of trigger calls into a single trailing
// invocation once the burst goes quiet. Resize events fire per frame;
// wrapping the engine's Resize in a Debouncer keeps recomputation off
// the intermediate frames. The callback receives the reason of the
// newest trigger in the burst.
type Debouncer struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
	last  Trigger
	fn    func(Trigger)
}

// NewDebouncer wraps fn with the given quiet interval. Non-positive
// intervals use DefaultDebounce.
func NewDebouncer(quiet time.Duration, fn func(Trigger)) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultDebounce
	}
	return &Debouncer{quiet: quiet, fn: fn}
}

// Trigger schedules fn after the quiet interval, restarting the clock
// if a call is already pending and recording why as the reason handed
// to fn.
func (d *Debouncer) Trigger(why Trigger) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = why
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	why := d.last
	d.timer = nil
	d.mu.Unlock()

	d.fn(why)
}
