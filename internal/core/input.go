package core

// Action represents a semantic input, abstracted from physical key presses.
// This allows the game to work with intents rather than raw keys.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // A, Left arrow
	ActionRight              // D, Right arrow
	ActionUp                 // W, Up arrow
	ActionDown               // S, Down arrow
	ActionSendLetter         // 1 - send letter to every destructor
	ActionVoteStop           // 2 - vote stop for every destructor
	ActionReset              // R - restart the session
	ActionToggleSound        // M - sound on/off
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSendLetter:
		return "SendLetter"
	case ActionVoteStop:
		return "VoteStop"
	case ActionReset:
		return "Reset"
	case ActionToggleSound:
		return "ToggleSound"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Pointer is the mouse/touch state in screen cells.
type Pointer struct {
	X, Y   int
	Active bool // Button held
}

// InputFrame represents the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the latest pointer state; it persists across frames
	// until the platform reports a release.
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame. Pointer state is kept.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
