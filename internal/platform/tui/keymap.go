package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/houseguard/internal/core"
)

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Letter key.Binding
	Vote   key.Binding
	Reset  key.Binding
	Sound  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Letter: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "send letter"),
		),
		Vote: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "vote stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Sound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Letter, k.Vote, k.Reset, k.Sound, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Letter, k.Vote},
		{k.Reset, k.Sound, k.Help, k.Quit},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Letter):
		return core.ActionSendLetter, false
	case key.Matches(msg, k.Vote):
		return core.ActionVoteStop, false
	case key.Matches(msg, k.Reset):
		return core.ActionReset, false
	case key.Matches(msg, k.Sound):
		return core.ActionToggleSound, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := k.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse updates the frame pointer from a mouse message. A pressed left
// button, or motion while it is held, activates the pointer; release
// deactivates it.
func MapMouse(msg tea.MouseMsg, frame *core.InputFrame) {
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		frame.Pointer = core.Pointer{X: msg.X, Y: msg.Y, Active: true}
	case tea.MouseActionRelease:
		frame.Pointer.Active = false
	}
}
