package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/houseguard/internal/core"
	"github.com/vovakirdan/houseguard/internal/games/houses"
)

// MusicPlayer switches the background music on and off.
type MusicPlayer interface {
	SetMusic(on bool)
}

// Options configures the play screen.
type Options struct {
	TickRate int
	Width    int // initial terminal size; a WindowSizeMsg corrects it
	Height   int
	Music    MusicPlayer // optional
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a house guard session.
type Model struct {
	game       *houses.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	music      MusicPlayer
	inputFrame core.InputFrame
	soundOn    bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *houses.Game, opts Options) Model {
	cfg := core.DefaultConfig()
	if opts.TickRate > 0 {
		cfg.TickRate = opts.TickRate
	}
	if opts.Width > 0 && opts.Height > 0 {
		cfg.ScreenW, cfg.ScreenH = opts.Width, opts.Height
	}

	m := Model{
		game:       game,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		music:      opts.Music,
		inputFrame: core.NewInputFrame(),
		soundOn:    game.Flags().SoundOn,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.playHeight())
	return m
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	rc := m.config
	rc.ScreenH = m.playHeight()
	m.game.Reset(rc)
	if m.music != nil {
		m.music.SetMusic(m.soundOn)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouse(m.mouseInPlayArea(msg), &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		if m.music != nil {
			m.music.SetMusic(false)
		}
		return m, tea.Quit
	}
	return m, nil
}

// mouseInPlayArea clips pointer events that land on the help bar.
func (m Model) mouseInPlayArea(msg tea.MouseMsg) tea.MouseMsg {
	if msg.Y >= m.screen.Height() {
		msg.Y = m.screen.Height() - 1
	}
	return msg
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

// resizeScreen resizes the play area without restarting the session.
func (m *Model) resizeScreen() {
	h := m.playHeight()
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

func (m Model) playHeight() int {
	lines := 1
	if m.help.ShowAll {
		for _, col := range m.keys.FullHelp() {
			lines = max(lines, len(col))
		}
	}
	return max(m.config.ScreenH-lines, 0)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame)

	if on := m.game.Flags().SoundOn; on != m.soundOn {
		m.soundOn = on
		if m.music != nil {
			m.music.SetMusic(on)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the given game.
func Run(game *houses.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
