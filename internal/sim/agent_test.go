package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/houseguard/internal/core"
)

func newTestAgent() *Agent {
	return NewAgent(0, "a", core.V(100, 500), 48, 48, 100, VariantActive)
}

func TestAgentSteersToNearestTarget(t *testing.T) {
	a := newTestAgent()
	far := NewTarget(0, "far", core.NewRect(600, 0, 100, 100))
	near := NewTarget(1, "near", core.NewRect(50, 100, 100, 100))

	a.Update([]*Target{far, near})

	if a.Target() != near {
		t.Fatalf("Target() = %v, expected near", a.Target())
	}
	if a.Mode() != ModeAdvancing {
		t.Errorf("Mode() = %v, expected advancing", a.Mode())
	}
	if math.Abs(a.Vel().Len()-100) > 1e-9 {
		t.Errorf("speed = %v, expected 100", a.Vel().Len())
	}
	if a.Vel().Y >= 0 {
		t.Errorf("velocity %v should point up toward the target", a.Vel())
	}
}

func TestAgentNearestTieGoesToLowestIndex(t *testing.T) {
	a := NewAgent(0, "a", core.V(200, 500), 48, 48, 100, VariantActive)
	left := NewTarget(0, "left", core.NewRect(50, 100, 100, 100))
	right := NewTarget(1, "right", core.NewRect(250, 100, 100, 100))

	a.Update([]*Target{left, right})
	if a.Target() != left {
		t.Errorf("tie should go to the first target, got %s", a.Target().Name)
	}
}

func TestAgentHoldsWithoutAliveTargets(t *testing.T) {
	a := newTestAgent()
	dead := NewTarget(0, "dead", core.NewRect(50, 100, 100, 100))
	dead.disable()

	a.Update([]*Target{dead})

	if a.Mode() != ModeHolding {
		t.Errorf("Mode() = %v, expected holding", a.Mode())
	}
	if !a.Vel().IsZero() {
		t.Errorf("holding agent should not move, vel %v", a.Vel())
	}
}

func TestAgentRetreatIsTerminal(t *testing.T) {
	a := newTestAgent()
	target := NewTarget(0, "t", core.NewRect(50, 100, 100, 100))
	a.Update([]*Target{target})
	a.Integrate(tick * 10)

	a.StartMovingBack()
	origin := a.RetreatOrigin()
	a.StartMovingBack()

	if a.RetreatOrigin() != origin {
		t.Error("second StartMovingBack should not move the retreat origin")
	}
	for i := 0; i < 5; i++ {
		a.Update([]*Target{target})
		if a.Mode() != ModeRetreating {
			t.Fatalf("Mode() = %v after update %d, expected retreating", a.Mode(), i)
		}
		if a.Target() != nil {
			t.Fatal("retreating agent should not hold a target")
		}
	}
}

func TestAgentRetreatLandsOnSpawn(t *testing.T) {
	a := newTestAgent()
	target := NewTarget(0, "t", core.NewRect(50, 100, 100, 100))
	a.Update([]*Target{target})
	for i := 0; i < 10; i++ {
		a.Integrate(tick)
	}

	a.StartMovingBack()
	for i := 0; i < 100; i++ {
		a.Update(nil)
		a.Integrate(tick)
	}

	if a.Pos() != a.Spawn() {
		t.Errorf("Pos() = %v, expected spawn %v", a.Pos(), a.Spawn())
	}
	if !a.AtSpawn() {
		t.Error("AtSpawn() should be true")
	}
	a.Update(nil)
	if !a.Vel().IsZero() {
		t.Errorf("agent at spawn should idle, vel %v", a.Vel())
	}
}

func TestAgentStopIsOrthogonalToMode(t *testing.T) {
	a := newTestAgent()
	target := NewTarget(0, "t", core.NewRect(50, 100, 100, 100))
	a.Update([]*Target{target})
	a.Integrate(5 * tick)

	a.Stop()
	a.Stop()
	if !a.IsStopped() {
		t.Error("Stop twice should leave the agent stopped")
	}
	if a.Mode() != ModeAdvancing {
		t.Errorf("Stop changed mode to %v", a.Mode())
	}

	pos := a.Pos()
	a.Update([]*Target{target})
	a.Integrate(tick)
	if a.Pos() != pos || !a.Vel().IsZero() {
		t.Error("stopped agent should not move")
	}

	a.StartMovingBack()
	if a.Mode() != ModeRetreating {
		t.Error("a stopped agent can still be told to retreat")
	}
	if !a.Vel().IsZero() {
		t.Error("retreat must not override the stopped velocity")
	}

	a.Unstop()
	a.Unstop()
	if a.IsStopped() {
		t.Error("Unstop when not stopped should leave the agent unstopped")
	}
	a.Update(nil)
	if a.Vel().IsZero() {
		t.Error("unstopped retreating agent should resume moving home")
	}
}

func TestAgentDelayedRetreat(t *testing.T) {
	s := NewScheduler(nil)
	a := newTestAgent()

	task := a.StartMovingBackDelayed(s, 300*tick)
	if again := a.StartMovingBackDelayed(s, 10*tick); again != task {
		t.Error("second delayed retreat should reuse the pending task")
	}

	s.Advance(299 * tick)
	if a.IsMovingBack() {
		t.Fatal("agent retreated before the delay elapsed")
	}
	s.Advance(tick)
	if !a.IsMovingBack() {
		t.Fatal("agent should retreat once the delay elapsed")
	}
}

func TestAgentDelayedRetreatCancelledByContact(t *testing.T) {
	s := NewScheduler(nil)
	a := newTestAgent()

	task := a.StartMovingBackDelayed(s, 10*tick)
	a.StartMovingBack()

	if !task.Cancelled() {
		t.Error("an immediate retreat should cancel the delayed one")
	}
	if s.Advance(10*tick) != 0 {
		t.Error("cancelled task should not fire")
	}
}
