package sim

import "github.com/vovakirdan/houseguard/internal/core"

// Target is a stationary house. Once disabled it stays disabled for the
// rest of the session.
type Target struct {
	ID     int
	Name   string
	Bounds core.Rect

	alive bool
}

// NewTarget creates an alive target.
func NewTarget(id int, name string, bounds core.Rect) *Target {
	return &Target{ID: id, Name: name, Bounds: bounds, alive: true}
}

// Alive reports whether the target is still standing.
func (t *Target) Alive() bool {
	return t.alive
}

// disable marks the target disabled. It reports false if the target was
// already disabled.
func (t *Target) disable() bool {
	if !t.alive {
		return false
	}
	t.alive = false
	return true
}

// AliveTargets returns the alive subset of targets, preserving layout order.
func AliveTargets(targets []*Target) []*Target {
	alive := make([]*Target, 0, len(targets))
	for _, t := range targets {
		if t.alive {
			alive = append(alive, t)
		}
	}
	return alive
}

// CountAlive returns the number of alive targets.
func CountAlive(targets []*Target) int {
	n := 0
	for _, t := range targets {
		if t.alive {
			n++
		}
	}
	return n
}
