package viewport

import (
	"sync"
	"testing"
	"time"
)

// recorder collects debounced invocations.
type recorder struct {
	mu      sync.Mutex
	reasons []Trigger
}

func (r *recorder) record(why Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, why)
}

func (r *recorder) calls() []Trigger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Trigger(nil), r.reasons...)
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	var rec recorder
	d := NewDebouncer(50*time.Millisecond, rec.record)

	for i := 0; i < 10; i++ {
		d.Trigger(TriggerResize)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := rec.calls(); len(got) != 1 {
		t.Errorf("burst produced %d calls, want 1", len(got))
	}
}

func TestDebouncerKeepsNewestReason(t *testing.T) {
	var rec recorder
	d := NewDebouncer(50*time.Millisecond, rec.record)

	d.Trigger(TriggerContracts)
	d.Trigger(TriggerResize)
	d.Trigger(TriggerPreferences)

	time.Sleep(200 * time.Millisecond)
	got := rec.calls()
	if len(got) != 1 || got[0] != TriggerPreferences {
		t.Errorf("calls = %v, want one invocation with the newest reason", got)
	}
}

func TestDebouncerFiresAgainAfterQuiet(t *testing.T) {
	var rec recorder
	d := NewDebouncer(30*time.Millisecond, rec.record)

	d.Trigger(TriggerResize)
	time.Sleep(120 * time.Millisecond)
	d.Trigger(TriggerResize)
	time.Sleep(120 * time.Millisecond)

	if got := rec.calls(); len(got) != 2 {
		t.Errorf("sequential triggers produced %d calls, want 2", len(got))
	}
}

func TestDebouncerStop(t *testing.T) {
	var rec recorder
	d := NewDebouncer(30*time.Millisecond, rec.record)

	d.Trigger(TriggerResize)
	d.Stop()
	time.Sleep(120 * time.Millisecond)

	if got := rec.calls(); len(got) != 0 {
		t.Errorf("stopped debouncer fired %d times", len(got))
	}
}

func TestDebouncerDefaultInterval(t *testing.T) {
	d := NewDebouncer(0, func(Trigger) {})
	if d.quiet != DefaultDebounce {
		t.Errorf("quiet = %v, want %v", d.quiet, DefaultDebounce)
	}
}
