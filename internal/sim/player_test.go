package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/houseguard/internal/core"
)

var testWorld = core.NewRect(0, 0, 800, 600)

func TestPlayerKeyPriority(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want core.Vec
	}{
		{"idle", Input{}, core.V(0, 0)},
		{"left wins over right", Input{Left: true, Right: true}, core.V(-100, 0)},
		{"up wins over down", Input{Up: true, Down: true}, core.V(0, -100)},
		{"diagonal is not normalized", Input{Right: true, Down: true}, core.V(100, 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer(core.V(400, 300), 20, 20, 100)
			p.Steer(tc.in)
			if p.Vel() != tc.want {
				t.Errorf("Vel() = %v, expected %v", p.Vel(), tc.want)
			}
		})
	}
}

func TestPlayerAnimationFollowsVelocity(t *testing.T) {
	p := NewPlayer(core.V(400, 300), 20, 20, 100)

	p.Steer(Input{Right: true})
	if p.Anim() != AnimWalk {
		t.Errorf("Anim() = %v, expected walk", p.Anim())
	}
	p.Steer(Input{})
	if p.Anim() != AnimStay {
		t.Errorf("Anim() = %v, expected stay", p.Anim())
	}
}

func TestPlayerPointerTakesPrecedence(t *testing.T) {
	p := NewPlayer(core.V(400, 300), 20, 20, 100)
	p.Steer(Input{Left: true, Pointer: core.V(400, 500), PointerActive: true})

	v := p.Vel()
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-100) > 1e-9 {
		t.Errorf("Vel() = %v, expected (0, 100) toward the pointer", v)
	}
}

func TestPlayerArrivesAtPointer(t *testing.T) {
	p := NewPlayer(core.V(400, 300), 20, 20, 100)
	goal := core.V(403, 300)

	p.Steer(Input{Pointer: goal, PointerActive: true})
	p.Integrate(tick*10, testWorld, nil)

	if p.Pos() != goal {
		t.Errorf("Pos() = %v, expected to stop on the pointer %v", p.Pos(), goal)
	}
	p.Steer(Input{Pointer: goal, PointerActive: true})
	if !p.Vel().IsZero() {
		t.Errorf("player on the pointer should stand still, vel %v", p.Vel())
	}
}

func TestPlayerStaysInWorld(t *testing.T) {
	p := NewPlayer(core.V(30, 300), 40, 80, 260)
	for i := 0; i < 80; i++ {
		p.Steer(Input{Left: true, Up: true})
		p.Integrate(tick, testWorld, nil)
	}

	b := p.Bounds()
	if b.X != 0 || b.Y != 0 {
		t.Errorf("player bounds = %+v, expected pinned to the top-left corner", b)
	}
}

func TestPlayerBlockedByAliveHouse(t *testing.T) {
	house := NewTarget(0, "h", core.NewRect(100, 100, 100, 100))
	p := NewPlayer(core.V(200, 300), 40, 80, 260)

	for i := 0; i < 60; i++ {
		p.Steer(Input{Up: true})
		p.Integrate(tick, testWorld, []*Target{house})
		if mtv, ok := p.Bounds().Penetration(house.Bounds); ok && mtv.Len() > 1e-6 {
			t.Fatalf("tick %d: player inside the house by %v", i, mtv)
		}
	}
	if p.Bounds().Y < 199 {
		t.Errorf("player top = %v, expected blocked at the house bottom", p.Bounds().Y)
	}

	house.disable()
	for i := 0; i < 10; i++ {
		p.Steer(Input{Up: true})
		p.Integrate(tick, testWorld, []*Target{house})
	}
	if p.Bounds().Y >= 199 {
		t.Error("disabled house should not block the player")
	}
}

func TestPlayerFreeze(t *testing.T) {
	p := NewPlayer(core.V(400, 300), 20, 20, 100)
	p.Steer(Input{Right: true})
	p.Freeze()

	pos := p.Pos()
	p.Steer(Input{Right: true})
	p.Integrate(tick, testWorld, nil)

	if p.Pos() != pos || !p.Vel().IsZero() || p.Anim() != AnimFrozen {
		t.Errorf("frozen player changed: pos %v vel %v anim %v", p.Pos(), p.Vel(), p.Anim())
	}
}
