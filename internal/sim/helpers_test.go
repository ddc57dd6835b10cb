package sim

import (
	"time"

	"github.com/vovakirdan/houseguard/internal/config"
)

const tick = 20 * time.Millisecond

// rowGame places four houses in a row with one active agent directly below
// each. The player stands at the right edge, out of every agent's path.
func rowGame() config.Game {
	cfg := config.DefaultGame()
	cfg.Session = config.Session{DurationSec: 60, VoteStopDelayMs: 1000, LetterDelayMs: 500}
	cfg.Player = config.Player{Speed: 260, X: 770, Y: 400, Width: 40, Height: 80}
	cfg.Houses = []config.House{
		{Name: "h1", X: 100, Y: 100, Width: 100, Height: 100},
		{Name: "h2", X: 280, Y: 100, Width: 100, Height: 100},
		{Name: "h3", X: 460, Y: 100, Width: 100, Height: 100},
		{Name: "h4", X: 640, Y: 100, Width: 100, Height: 100},
	}
	cfg.Agents = []config.Agent{
		{Name: "a1", X: 150, Y: 650, Speed: 100},
		{Name: "a2", X: 330, Y: 650, Speed: 150},
		{Name: "a3", X: 510, Y: 650, Speed: 200},
		{Name: "a4", X: 690, Y: 650, Speed: 250},
	}
	return cfg
}

// farGame is rowGame with agents too slow and far away to reach anything.
func farGame(durationSec int) config.Game {
	cfg := rowGame()
	cfg.Session.DurationSec = durationSec
	for i := range cfg.Agents {
		cfg.Agents[i].Y = 5000
		cfg.Agents[i].Speed = 10
	}
	return cfg
}

// run steps s until it ends or maxTicks elapse and returns the ticks taken.
func run(s *Session, maxTicks int) int {
	for i := 1; i <= maxTicks; i++ {
		s.Update(tick)
		if !s.Running() {
			return i
		}
	}
	return maxTicks
}

type recordingAudio struct {
	sounds []Sound
}

func (r *recordingAudio) Play(snd Sound) {
	r.sounds = append(r.sounds, snd)
}

func (r *recordingAudio) count(snd Sound) int {
	n := 0
	for _, s := range r.sounds {
		if s == snd {
			n++
		}
	}
	return n
}

type recordingResults struct {
	summaries []Summary
}

func (r *recordingResults) SessionEnded(s Summary) {
	r.summaries = append(r.summaries, s)
}
