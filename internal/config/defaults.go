package config

import (
	_ "embed"
)

//go:embed defaults/houseguard.yaml
var defaultGameYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultGameYAML
}

// DefaultGame returns the reference layout and tuning.
// It mirrors defaults/houseguard.yaml and is used if the embed fails to parse.
func DefaultGame() Game {
	return Game{
		World: World{Width: 800, Height: 600},
		Session: Session{
			DurationSec:     10,
			VoteStopDelayMs: 2000,
			LetterDelayMs:   3000,
		},
		Player: Player{
			Speed:  260,
			X:      700,
			Y:      300,
			Width:  40,
			Height: 80,
		},
		AgentSize: Size{Width: 48, Height: 48},
		Agents: []Agent{
			{Name: "destructor1", X: 100, Y: 650, Speed: 60},
			{Name: "destructor2", X: 300, Y: 650, Speed: 70},
			{Name: "destructor3", X: 800, Y: 750, Speed: 110},
			{Name: "destructor4", X: 500, Y: 1000, Speed: 130, Passive: true},
		},
		Houses: []House{
			{Name: "house1", X: 165, Y: 85, Width: 110, Height: 120},
			{Name: "house2", X: 280, Y: 116, Width: 100, Height: 121},
			{Name: "house3", X: 395, Y: 94, Width: 110, Height: 120},
			{Name: "house4", X: 515, Y: 103, Width: 105, Height: 120},
		},
	}
}
