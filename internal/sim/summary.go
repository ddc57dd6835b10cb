package sim

import (
	"time"

	"github.com/vovakirdan/houseguard/internal/core"
)

// Cause is why a session ended.
type Cause int

const (
	CauseNone Cause = iota
	CauseTimeUp
	CauseAllTargetsDestroyed
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseTimeUp:
		return "time_up"
	case CauseAllTargetsDestroyed:
		return "all_targets_destroyed"
	default:
		return "unknown"
	}
}

// ParseCause converts a cause name back to a Cause.
func ParseCause(s string) (Cause, bool) {
	for _, c := range []Cause{CauseNone, CauseTimeUp, CauseAllTargetsDestroyed} {
		if c.String() == s {
			return c, true
		}
	}
	return CauseNone, false
}

// PlayerSnapshot is the player's state at session end.
type PlayerSnapshot struct {
	Pos core.Vec
}

// TargetSnapshot is an alive target at session end.
type TargetSnapshot struct {
	ID     int
	Name   string
	Bounds core.Rect
}

// AgentSnapshot is an agent's state at session end.
type AgentSnapshot struct {
	ID      int
	Name    string
	Variant Variant
	Mode    Mode
	Stopped bool
	Pos     core.Vec
}

// Summary is the end-of-session report handed to the results collaborator.
type Summary struct {
	Cause        Cause
	Player       PlayerSnapshot
	AliveTargets []TargetSnapshot
	Agents       []AgentSnapshot
	AliveCount   int
	TotalTargets int
	Elapsed      time.Duration
	Remaining    time.Duration
	LetterSent   bool
	VoteStopUsed bool
}

// Passed reports whether the houses held out until the countdown ended.
func (s Summary) Passed() bool {
	return s.Cause == CauseTimeUp
}
