// Package houses adapts the house guard simulation to the terminal
// platform: it turns input frames into simulation input, steps the session
// at the runtime tick rate and draws the world into a core.Screen.
package houses

import (
	"time"

	"github.com/vovakirdan/houseguard/internal/config"
	"github.com/vovakirdan/houseguard/internal/core"
	"github.com/vovakirdan/houseguard/internal/sim"
)

const (
	hudHeight = 2 // status line + separator

	// holdWindow is how long a single key press keeps a direction held.
	// Terminals only report presses and repeats, never releases.
	holdWindow = 250 * time.Millisecond

	minScreenW = 40
	minScreenH = 12
)

var directions = []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}

// Game is the terminal front of one simulation session.
type Game struct {
	session *sim.Session
	flags   *sim.Flags
	rc      core.RuntimeConfig
	view    viewport

	held      map[core.Action]int // remaining hold ticks per direction
	holdTicks int
	tick      uint64
	status    sim.Status
	tooSmall  bool
}

// New creates the game and its session. The game owns the process-wide
// flags; opts may add audio, results and logging collaborators.
func New(cfg config.Game, opts ...sim.Option) *Game {
	flags := sim.NewFlags()
	g := &Game{
		flags: flags,
		held:  make(map[core.Action]int),
	}
	opts = append([]sim.Option{sim.WithFlags(flags)}, opts...)
	g.session = sim.New(cfg, opts...)
	g.configure(core.DefaultConfig())
	return g
}

// ID returns the game identifier used in logs and the results archive.
func (g *Game) ID() string { return "houses" }

// Title returns the display name.
func (g *Game) Title() string { return "House Guard" }

// Reset restarts the session with the given runtime configuration.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.session.Reset()
	g.configure(rc)
}

func (g *Game) configure(rc core.RuntimeConfig) {
	g.rc = rc
	tick := rc.TickDuration()
	g.holdTicks = max(1, int((holdWindow+tick-1)/tick))
	g.tick = 0
	clear(g.held)
	g.Resize(rc.ScreenW, rc.ScreenH)
	g.status = g.session.Status()
}

// Resize adapts the world-to-screen mapping without touching the session.
func (g *Game) Resize(w, h int) {
	g.rc.ScreenW, g.rc.ScreenH = w, h
	g.tooSmall = w < minScreenW || h < minScreenH
	g.view = newViewport(g.session.World(), w, h-hudHeight, hudHeight)
}

// Step applies one frame of input and advances the session by one tick.
func (g *Game) Step(in core.InputFrame) sim.Status {
	g.tick++

	if in.Has(core.ActionToggleSound) {
		g.flags.ToggleSound()
	}
	if in.Has(core.ActionReset) {
		clear(g.held)
		g.session.Reset()
		g.status = g.session.Status()
		return g.status
	}
	if in.Has(core.ActionSendLetter) {
		g.session.SendLetter()
	}
	if in.Has(core.ActionVoteStop) {
		g.session.VoteStop()
	}

	g.session.SetInput(g.movement(in))
	if !g.tooSmall {
		g.session.Update(g.rc.TickDuration())
	}

	g.status = g.session.Status()
	return g.status
}

// movement converts key presses into held directions and the pointer into
// world coordinates.
func (g *Game) movement(in core.InputFrame) sim.Input {
	for _, a := range directions {
		if n := g.held[a]; n > 0 {
			g.held[a] = n - 1
		}
	}
	for _, a := range directions {
		if !in.Has(a) {
			continue
		}
		g.held[a] = g.holdTicks
		delete(g.held, opposite(a))
	}

	si := sim.Input{
		Left:  g.held[core.ActionLeft] > 0,
		Right: g.held[core.ActionRight] > 0,
		Up:    g.held[core.ActionUp] > 0,
		Down:  g.held[core.ActionDown] > 0,
	}
	if in.Pointer.Active {
		si.Pointer = g.view.toWorld(in.Pointer.X, in.Pointer.Y)
		si.PointerActive = true
	}
	return si
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	default:
		return core.ActionNone
	}
}

// Status returns the session status after the last step.
func (g *Game) Status() sim.Status { return g.status }

// Session returns the underlying simulation.
func (g *Game) Session() *sim.Session { return g.session }

// Flags returns the process-wide flags.
func (g *Game) Flags() *sim.Flags { return g.flags }
