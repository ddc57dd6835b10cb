package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/houseguard/internal/config"
	"github.com/vovakirdan/houseguard/internal/games/houses"
)

type recordingMusic struct {
	calls []bool
}

func (r *recordingMusic) SetMusic(on bool) { r.calls = append(r.calls, on) }

func newTestModel(t *testing.T) (Model, *recordingMusic) {
	t.Helper()
	music := &recordingMusic{}
	m := NewModel(houses.New(config.DefaultGame()), Options{TickRate: 30, Music: music})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), music
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model
}

func TestModelReservesHelpLine(t *testing.T) {
	m, _ := newTestModel(t)

	if h := m.screen.Height(); h != 23 {
		t.Errorf("play area height = %d, expected 23", h)
	}

	m = step(t, m, runes("?"))
	if h := m.screen.Height(); h != 20 {
		t.Errorf("play area height with full help = %d, expected 20", h)
	}
}

func TestModelInterventionReachesSession(t *testing.T) {
	m, _ := newTestModel(t)

	m = step(t, m, runes("2"))
	m = step(t, m, TickMsg{})

	if !m.game.Status().VoteStopUsed {
		t.Error("vote stop should be used after key 2 and a tick")
	}
	if len(m.inputFrame.Actions) != 0 {
		t.Error("actions should be cleared after a tick")
	}
}

func TestModelSoundToggleDrivesMusic(t *testing.T) {
	m, music := newTestModel(t)

	m = step(t, m, runes("m"))
	m = step(t, m, TickMsg{})

	if len(music.calls) != 1 || music.calls[0] {
		t.Errorf("music calls = %v, expected [false]", music.calls)
	}
	if m.soundOn {
		t.Error("model should track sound off")
	}
}

func TestModelQuit(t *testing.T) {
	m, music := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
	if len(music.calls) == 0 || music.calls[len(music.calls)-1] {
		t.Error("quitting should stop the music")
	}
}

func TestModelViewShowsHUDAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "Houses 4/4") {
		t.Error("view should contain the HUD")
	}
	if !strings.Contains(view, "vote stop") {
		t.Error("view should contain the help bar")
	}
}
