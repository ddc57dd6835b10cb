package core

import "time"

// RuntimeConfig contains platform settings passed to the game at startup.
// The game uses these to size its viewport and pick a fixed tick length.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultTickRate is the tick rate used when none is configured.
const DefaultTickRate = 30

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// TickSeconds returns the length of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1.0 / float64(c.TickRate)
}

// TickDuration returns the length of one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
