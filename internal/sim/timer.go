package sim

import (
	"math"
	"time"
)

// Timer is the session countdown. It fires onExpire exactly once and is
// inert afterwards. A stopped timer never fires.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	running   bool
	fired     bool
	onExpire  func()
}

// NewTimer creates a stopped countdown of the given duration.
func NewTimer(d time.Duration, onExpire func()) *Timer {
	return &Timer{duration: d, remaining: d, onExpire: onExpire}
}

// Start begins counting down. Starting an expired timer is a no-op.
func (t *Timer) Start() {
	if t.fired {
		return
	}
	t.running = true
}

// Stop cancels any future expiry.
func (t *Timer) Stop() {
	t.running = false
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	return t.running
}

// Expired reports whether the expiry callback has fired.
func (t *Timer) Expired() bool {
	return t.fired
}

// Update advances the countdown by delta.
func (t *Timer) Update(delta time.Duration) {
	if !t.running || t.fired || delta <= 0 {
		return
	}
	t.remaining -= delta
	if t.remaining > 0 {
		return
	}
	t.remaining = 0
	t.running = false
	t.fired = true
	if t.onExpire != nil {
		t.onExpire()
	}
}

// Remaining returns the time left on the countdown.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Duration returns the configured countdown length.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Seconds returns the remaining whole seconds, rounded up.
func (t *Timer) Seconds() int {
	return int(math.Ceil(t.remaining.Seconds()))
}
