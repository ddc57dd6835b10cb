package sim

import "time"

// Gateway exposes the two session-wide interventions. Each is consumed by
// its first use; later calls are inert.
type Gateway struct {
	agents        []*Agent
	sched         *Scheduler
	letterDelay   time.Duration
	voteStopDelay time.Duration

	letterSent     bool
	voteStopUsed   bool
	voteStopActive bool
}

// NewGateway binds the interventions to a session's agents and scheduler.
func NewGateway(agents []*Agent, sched *Scheduler, letterDelay, voteStopDelay time.Duration) *Gateway {
	return &Gateway{
		agents:        agents,
		sched:         sched,
		letterDelay:   letterDelay,
		voteStopDelay: voteStopDelay,
	}
}

// SendLetter tells every agent to turn back after the letter delay.
// It reports false if the letter was already sent.
func (g *Gateway) SendLetter() bool {
	if g.letterSent {
		return false
	}
	g.letterSent = true
	for _, a := range g.agents {
		a.StartMovingBackDelayed(g.sched, g.letterDelay)
	}
	return true
}

// VoteStop stops every agent now and unstops all of them after the vote
// stop delay, whatever happened in between. It reports false if the vote
// was already used.
func (g *Gateway) VoteStop() bool {
	if g.voteStopUsed {
		return false
	}
	g.voteStopUsed = true
	g.voteStopActive = true
	for _, a := range g.agents {
		a.Stop()
	}
	g.sched.After(g.voteStopDelay, "vote stop revert", func() {
		g.voteStopActive = false
		for _, a := range g.agents {
			a.Unstop()
		}
	})
	return true
}

// LetterSent reports whether Send Letter was used.
func (g *Gateway) LetterSent() bool { return g.letterSent }

// VoteStopUsed reports whether Vote Stop was used.
func (g *Gateway) VoteStopUsed() bool { return g.voteStopUsed }

// VoteStopActive reports whether the vote stop revert is still pending.
func (g *Gateway) VoteStopActive() bool { return g.voteStopActive }
