package sim

import (
	"time"

	"github.com/vovakirdan/houseguard/internal/core"
)

// Variant distinguishes harmful destructors from cosmetic ones.
type Variant int

const (
	// VariantActive agents disable targets on contact.
	VariantActive Variant = iota
	// VariantPassive agents only turn back on contact.
	VariantPassive
)

func (v Variant) String() string {
	if v == VariantPassive {
		return "passive"
	}
	return "active"
}

// Mode is the movement state of an agent.
type Mode int

const (
	ModeAdvancing Mode = iota
	ModeHolding
	ModeRetreating
)

func (m Mode) String() string {
	switch m {
	case ModeAdvancing:
		return "advancing"
	case ModeHolding:
		return "holding"
	case ModeRetreating:
		return "retreating"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{ModeAdvancing, ModeHolding, ModeRetreating} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// Agent is a destructor. Retreating is terminal: an agent never advances
// again within a session. The stopped flag is orthogonal to the mode.
type Agent struct {
	ID      int
	Name    string
	Variant Variant

	pos   core.Vec
	vel   core.Vec
	spawn core.Vec
	w, h  float64
	speed float64

	mode          Mode
	stopped       bool
	retreatOrigin core.Vec
	target        *Target
	delayed       *Task
}

// NewAgent creates an advancing agent at its spawn point.
func NewAgent(id int, name string, spawn core.Vec, w, h, speed float64, v Variant) *Agent {
	return &Agent{
		ID:      id,
		Name:    name,
		Variant: v,
		pos:     spawn,
		spawn:   spawn,
		w:       w,
		h:       h,
		speed:   speed,
		mode:    ModeAdvancing,
	}
}

// Update steers the agent against the current set of alive targets.
func (a *Agent) Update(alive []*Target) {
	if a.stopped {
		a.vel = core.Vec{}
		return
	}

	if a.mode == ModeRetreating {
		a.target = nil
		if a.pos == a.spawn {
			a.vel = core.Vec{}
			return
		}
		a.vel = a.pos.Toward(a.spawn, a.speed)
		return
	}

	a.target = nearest(a.pos, alive)
	if a.target == nil {
		a.mode = ModeHolding
		a.vel = core.Vec{}
		return
	}
	a.mode = ModeAdvancing
	a.vel = a.pos.Toward(a.target.Bounds.Center(), a.speed)
}

// nearest returns the alive target closest to p. Ties go to the earlier one.
func nearest(p core.Vec, alive []*Target) *Target {
	var best *Target
	bestDist := 0.0
	for _, t := range alive {
		if !t.alive {
			continue
		}
		d := p.Dist(t.Bounds.Center())
		if best == nil || d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// Integrate moves the agent by its velocity over dt. A retreating agent
// lands exactly on its spawn point instead of overshooting it.
func (a *Agent) Integrate(dt time.Duration) {
	if a.vel.IsZero() || dt <= 0 {
		return
	}
	step := a.vel.Scale(dt.Seconds())
	if a.mode == ModeRetreating && step.Len() >= a.pos.Dist(a.spawn) {
		a.pos = a.spawn
		a.vel = core.Vec{}
		return
	}
	a.pos = a.pos.Add(step)
}

// StartMovingBack switches the agent to retreating. Repeated calls are no-ops.
func (a *Agent) StartMovingBack() {
	if a.mode == ModeRetreating {
		return
	}
	a.mode = ModeRetreating
	a.retreatOrigin = a.pos
	a.target = nil
	if a.delayed != nil {
		a.delayed.Cancel()
		a.delayed = nil
	}
	if !a.stopped {
		a.vel = a.pos.Toward(a.spawn, a.speed)
	}
}

// StartMovingBackDelayed schedules StartMovingBack after delay. Only one
// delayed retreat is kept per agent.
func (a *Agent) StartMovingBackDelayed(s *Scheduler, delay time.Duration) *Task {
	if a.mode == ModeRetreating {
		return nil
	}
	if a.delayed != nil {
		return a.delayed
	}
	a.delayed = s.After(delay, a.Name+": move back", func() {
		a.delayed = nil
		a.StartMovingBack()
	})
	return a.delayed
}

// Stop forces the agent's velocity to zero until Unstop. The mode is kept.
func (a *Agent) Stop() {
	a.stopped = true
	a.vel = core.Vec{}
}

// Unstop clears the stopped flag. Movement resumes on the next Update.
func (a *Agent) Unstop() {
	a.stopped = false
}

// IsStopped reports whether the agent is stopped.
func (a *Agent) IsStopped() bool { return a.stopped }

// IsMovingBack reports whether the agent is retreating.
func (a *Agent) IsMovingBack() bool { return a.mode == ModeRetreating }

// Mode returns the movement state.
func (a *Agent) Mode() Mode { return a.mode }

// Pos returns the agent's center.
func (a *Agent) Pos() core.Vec { return a.pos }

// Vel returns the current velocity in world units per second.
func (a *Agent) Vel() core.Vec { return a.vel }

// Spawn returns the spawn point the agent retreats to.
func (a *Agent) Spawn() core.Vec { return a.spawn }

// Speed returns the base speed.
func (a *Agent) Speed() float64 { return a.speed }

// RetreatOrigin returns where the agent was when it started retreating.
func (a *Agent) RetreatOrigin() core.Vec { return a.retreatOrigin }

// Target returns the target the agent is heading to, or nil.
func (a *Agent) Target() *Target { return a.target }

// Bounds returns the agent's bounding box.
func (a *Agent) Bounds() core.Rect {
	return core.RectAround(a.pos, a.w, a.h)
}

// AtSpawn reports whether a retreating agent has arrived home.
func (a *Agent) AtSpawn() bool {
	return a.mode == ModeRetreating && a.pos == a.spawn
}
