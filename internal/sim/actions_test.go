package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/houseguard/internal/core"
)

func newGatewayFixture() (*Gateway, *Scheduler, []*Agent) {
	s := NewScheduler(nil)
	agents := []*Agent{
		NewAgent(0, "a1", core.V(0, 0), 10, 10, 50, VariantActive),
		NewAgent(1, "a2", core.V(100, 0), 10, 10, 50, VariantPassive),
	}
	return NewGateway(agents, s, 300*time.Millisecond, time.Second), s, agents
}

func TestGatewaySendLetterOnce(t *testing.T) {
	g, s, agents := newGatewayFixture()

	if !g.SendLetter() {
		t.Fatal("first SendLetter should succeed")
	}
	if g.SendLetter() {
		t.Error("second SendLetter should be inert")
	}
	if s.Pending() != len(agents) {
		t.Errorf("Pending() = %d, expected one delayed retreat per agent", s.Pending())
	}

	s.Advance(299 * time.Millisecond)
	for _, a := range agents {
		if a.IsMovingBack() {
			t.Fatalf("%s retreated during the grace period", a.Name)
		}
	}
	s.Advance(time.Millisecond)
	for _, a := range agents {
		if !a.IsMovingBack() {
			t.Errorf("%s should retreat after the grace period", a.Name)
		}
	}
}

func TestGatewayVoteStopRevert(t *testing.T) {
	g, s, agents := newGatewayFixture()

	if !g.VoteStop() {
		t.Fatal("first VoteStop should succeed")
	}
	if g.VoteStop() {
		t.Error("second VoteStop should be inert")
	}
	for _, a := range agents {
		if !a.IsStopped() {
			t.Fatalf("%s should be stopped", a.Name)
		}
	}
	if !g.VoteStopActive() {
		t.Error("VoteStopActive() should be true until the revert")
	}

	// Retreating while stopped is kept across the revert.
	agents[0].StartMovingBack()

	s.Advance(time.Second)
	for _, a := range agents {
		if a.IsStopped() {
			t.Errorf("%s should be unstopped after the delay", a.Name)
		}
	}
	if !agents[0].IsMovingBack() {
		t.Error("agent that retreated while stopped should keep retreating")
	}
	if g.VoteStopActive() {
		t.Error("VoteStopActive() should clear after the revert")
	}
	if !g.VoteStopUsed() {
		t.Error("VoteStopUsed() should stay true")
	}
}
