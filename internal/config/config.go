// Package config provides YAML-based configuration loading for the house
// guard simulation, with environment overrides for the tuning constants.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Game contains the full configuration set of one session:
// layout, speeds and timings.
type Game struct {
	World     World   `yaml:"world"`
	Session   Session `yaml:"session"`
	Player    Player  `yaml:"player"`
	AgentSize Size    `yaml:"agent_size"`
	Agents    []Agent `yaml:"agents"`
	Houses    []House `yaml:"houses"`
}

// World defines the playfield the player is confined to.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Session defines the timings of a session.
type Session struct {
	DurationSec     int `yaml:"duration_sec"`
	VoteStopDelayMs int `yaml:"vote_stop_delay_ms"`
	LetterDelayMs   int `yaml:"letter_delay_ms"`
}

// Player defines the player-controlled person.
type Player struct {
	Speed  float64 `yaml:"speed"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Agent defines one destructor: spawn point, base speed and variant.
type Agent struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Speed   float64 `yaml:"speed"`
	Passive bool    `yaml:"passive,omitempty"`
}

// House defines one target's bounds (top-left corner and size).
type House struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Duration returns the session countdown length.
func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationSec) * time.Second
}

// VoteStopDelay returns how long a vote stop holds every destructor.
func (s Session) VoteStopDelay() time.Duration {
	return time.Duration(s.VoteStopDelayMs) * time.Millisecond
}

// LetterDelay returns the grace period between sending the letter and
// destructors turning back.
func (s Session) LetterDelay() time.Duration {
	return time.Duration(s.LetterDelayMs) * time.Millisecond
}

// AgentSpeeds returns the base speed of every agent in spawn order.
func (g Game) AgentSpeeds() []float64 {
	speeds := make([]float64, len(g.Agents))
	for i, a := range g.Agents {
		speeds[i] = a.Speed
	}
	return speeds
}

// Clone returns a deep copy so callers can tweak slices safely.
func (g Game) Clone() Game {
	c := g
	c.Agents = append([]Agent(nil), g.Agents...)
	c.Houses = append([]House(nil), g.Houses...)
	return c
}

// Validate checks the configuration and reports every problem found.
func (g Game) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if g.World.Width <= 0 || g.World.Height <= 0 {
		bad("world size must be positive, got %vx%v", g.World.Width, g.World.Height)
	}
	if g.Session.DurationSec <= 0 {
		bad("session.duration_sec must be positive, got %d", g.Session.DurationSec)
	}
	if g.Session.VoteStopDelayMs < 0 {
		bad("session.vote_stop_delay_ms must not be negative, got %d", g.Session.VoteStopDelayMs)
	}
	if g.Session.LetterDelayMs < 0 {
		bad("session.letter_delay_ms must not be negative, got %d", g.Session.LetterDelayMs)
	}
	if g.Player.Speed <= 0 {
		bad("player.speed must be positive, got %v", g.Player.Speed)
	}
	if g.Player.Width <= 0 || g.Player.Height <= 0 {
		bad("player size must be positive")
	}
	if g.AgentSize.Width <= 0 || g.AgentSize.Height <= 0 {
		bad("agent_size must be positive")
	}
	if len(g.Agents) == 0 {
		bad("at least one agent is required")
	}
	for i, a := range g.Agents {
		if a.Speed <= 0 {
			bad("agents[%d] (%s): speed must be positive, got %v", i, a.Name, a.Speed)
		}
	}
	if len(g.Houses) == 0 {
		bad("at least one house is required")
	}
	for i, h := range g.Houses {
		if h.Width <= 0 || h.Height <= 0 {
			bad("houses[%d] (%s): size must be positive", i, h.Name)
		}
	}

	return errors.Join(errs...)
}
