package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/houseguard/internal/storage"
)

const maxResults = 100

// ResultSource is the part of the results archive the browser reads.
type ResultSource interface {
	RecentResults(limit int) ([]storage.ResultEntry, error)
	ResultByID(id int64) (*storage.ResultEntry, error)
}

// HistoryKeyMap defines the key bindings for the results browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Detail, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "destructors"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing archived sessions.
type HistoryModel struct {
	source   ResultSource
	results  []storage.ResultEntry
	detail   *storage.ResultEntry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a results browser over source.
func NewHistoryModel(source ResultSource, width, height int) HistoryModel {
	m := HistoryModel{
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Result", Width: 10},
		{Title: "Houses", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "Letter", Width: 7},
		{Title: "Vote", Width: 6},
		{Title: "Date", Width: 14},
	}

	// Header, detail panel and help take the rest.
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) load() {
	m.results, m.loadErr = nil, nil
	if m.source != nil {
		m.results, m.loadErr = m.source.RecentResults(maxResults)
	}
	m.updateTableRows()
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			resultLabel(r),
			fmt.Sprintf("%d/%d", r.AliveCount, r.TotalTargets),
			fmt.Sprintf("%.1fs", r.Elapsed.Seconds()),
			yesNo(r.LetterSent),
			yesNo(r.VoteStopUsed),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func resultLabel(r storage.ResultEntry) string {
	if r.Passed() {
		return "passed"
	}
	return "failed"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Init initializes the results browser.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Detail):
			m.loadDetail()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.detail = nil
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *HistoryModel) loadDetail() {
	i := m.table.Cursor()
	if m.source == nil || i < 0 || i >= len(m.results) {
		return
	}
	entry, err := m.source.ResultByID(m.results[i].ID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.detail = entry
}

// Selected returns the entry under the cursor.
func (m HistoryModel) Selected() (storage.ResultEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.results) {
		return storage.ResultEntry{}, false
	}
	return m.results[i], true
}

// Detail returns the expanded entry, if any.
func (m HistoryModel) Detail() *storage.ResultEntry {
	return m.detail
}

// View renders the results browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("SESSION HISTORY", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.detail != nil {
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderTableContent() string {
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return mutedStyle.Render("Cannot read results: " + m.loadErr.Error())
	}
	if len(m.results) == 0 {
		return mutedStyle.Render("No sessions recorded yet.\nPlay a round to fill the archive!")
	}
	return m.table.View()
}

func (m HistoryModel) renderDetail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %d ended by %s\n", m.detail.ID, m.detail.Cause)
	for _, a := range m.detail.Agents {
		state := a.Mode
		if a.Stopped {
			state += ", stopped"
		}
		fmt.Fprintf(&b, "  %-10s %-8s %-22s (%.0f, %.0f)\n", a.Name, a.Variant, state, a.X, a.Y)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render(b.String())
}

// RunHistory runs the results browser.
func RunHistory(source ResultSource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
