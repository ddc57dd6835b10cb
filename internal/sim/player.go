package sim

import (
	"time"

	"github.com/vovakirdan/houseguard/internal/core"
)

// Anim is the person's animation state.
type Anim int

const (
	AnimStay Anim = iota
	AnimWalk
	AnimFrozen
)

func (a Anim) String() string {
	switch a {
	case AnimStay:
		return "stay"
	case AnimWalk:
		return "walk"
	case AnimFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Input is the per-tick movement intent of the person.
// An active pointer takes precedence over the direction keys.
type Input struct {
	Left, Right, Up, Down bool

	Pointer       core.Vec
	PointerActive bool
}

// Player is the person controlled by the user.
type Player struct {
	pos   core.Vec
	vel   core.Vec
	w, h  float64
	speed float64
	anim  Anim
	goal  *core.Vec
}

// NewPlayer creates a player centered on pos.
func NewPlayer(pos core.Vec, w, h, speed float64) *Player {
	return &Player{pos: pos, w: w, h: h, speed: speed}
}

// Steer sets the velocity from input. Left wins over right and up wins
// over down; the axes are independent, so diagonals are faster.
func (p *Player) Steer(in Input) {
	if p.anim == AnimFrozen {
		return
	}
	p.goal = nil

	var v core.Vec
	if in.PointerActive {
		if in.Pointer != p.pos {
			goal := in.Pointer
			p.goal = &goal
			v = p.pos.Toward(goal, p.speed)
		}
	} else {
		switch {
		case in.Left:
			v.X = -p.speed
		case in.Right:
			v.X = p.speed
		}
		switch {
		case in.Up:
			v.Y = -p.speed
		case in.Down:
			v.Y = p.speed
		}
	}

	p.vel = v
	if v.IsZero() {
		p.anim = AnimStay
	} else {
		p.anim = AnimWalk
	}
}

// Integrate moves the player over dt, keeping it inside world and out of
// every alive target.
func (p *Player) Integrate(dt time.Duration, world core.Rect, targets []*Target) {
	if p.anim == AnimFrozen || p.vel.IsZero() || dt <= 0 {
		return
	}
	step := p.vel.Scale(dt.Seconds())
	if p.goal != nil && step.Len() >= p.pos.Dist(*p.goal) {
		p.pos = *p.goal
	} else {
		p.pos = p.pos.Add(step)
	}

	b := p.Bounds()
	for _, t := range targets {
		if !t.Alive() {
			continue
		}
		if mtv, ok := b.Penetration(t.Bounds); ok {
			b.X += mtv.X
			b.Y += mtv.Y
		}
	}
	b = b.ClampInto(world)
	p.pos = b.Center()
}

// Freeze zeroes velocity and stops the animation permanently.
func (p *Player) Freeze() {
	p.vel = core.Vec{}
	p.goal = nil
	p.anim = AnimFrozen
}

// Pos returns the player's center.
func (p *Player) Pos() core.Vec { return p.pos }

// Vel returns the current velocity.
func (p *Player) Vel() core.Vec { return p.vel }

// Anim returns the animation state.
func (p *Player) Anim() Anim { return p.anim }

// Speed returns the configured movement speed.
func (p *Player) Speed() float64 { return p.speed }

// Bounds returns the player's bounding box.
func (p *Player) Bounds() core.Rect {
	return core.RectAround(p.pos, p.w, p.h)
}
