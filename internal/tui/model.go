// Package tui implements the interactive history browser.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/tui/themes"
)

// State represents the current screen of the browser.
type State int

// Browser screens.
const (
	StateList State = iota
	StateDetail
	StateConfirmClear
)

const timeLayout = "2006-01-02 15:04"

// Config holds what the browser needs to run.
type Config struct {
	Controller Controller
	Toggler    ThemeToggler
	Location   *time.Location
	Theme      model.Theme
	Width      int
	Height     int
}

// Model holds the browser state.
type Model struct {
	ctx        context.Context
	controller Controller
	toggler    ThemeToggler
	loc        *time.Location
	lastError  error
	restored   *model.HistoryEntry
	theme      themes.Theme
	status     string
	entries    []model.HistoryEntry
	keymap     KeyMap
	help       help.Model
	table      table.Model
	state      State
	width      int
	height     int
	quitting   bool
}

// NewModel creates a browser model over the controller's current history.
func NewModel(ctx context.Context, cfg Config) Model {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Width == 0 {
		cfg.Width = 80
	}
	if cfg.Height == 0 {
		cfg.Height = 24
	}

	m := Model{
		ctx:        ctx,
		controller: cfg.Controller,
		toggler:    cfg.Toggler,
		loc:        cfg.Location,
		theme:      themes.For(cfg.Theme),
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		width:      cfg.Width,
		height:     cfg.Height,
		state:      StateList,
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	m.applyTheme()
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(m.columns())
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case historyClearedMsg:
		m.state = StateList
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.restored = nil
		m.status = "History cleared."
		m.reload()
		return m, nil

	case themeToggledMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.theme = themes.For(msg.theme)
		m.applyTheme()
		m.status = "Theme: " + string(msg.theme)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateConfirmClear:
			return m.updateConfirm(msg)
		case StateDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		if restored, found := m.controller.Restore(entry.ID); found {
			m.restored = &restored
			m.state = StateDetail
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		if len(m.entries) == 0 {
			m.status = "History is already empty."
			return m, nil
		}
		m.state = StateConfirmClear
		return m, nil

	case key.Matches(msg, m.keymap.ToggleTheme):
		return m, m.toggleTheme()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back), key.Matches(msg, m.keymap.Select):
		m.state = StateList
	case key.Matches(msg, m.keymap.ToggleTheme):
		return m, m.toggleTheme()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		return m, m.clearHistory()
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateList
		m.status = "Clear canceled."
	}
	return m, nil
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Restored returns the entry last opened with select, if any.
func (m Model) Restored() (model.HistoryEntry, bool) {
	if m.restored == nil {
		return model.HistoryEntry{}, false
	}
	return *m.restored, true
}

// Entries returns the rows currently shown.
func (m Model) Entries() []model.HistoryEntry {
	return m.entries
}

// Err returns the last error from a clear or theme change.
func (m Model) Err() error {
	return m.lastError
}

func (m Model) selectedEntry() (model.HistoryEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return model.HistoryEntry{}, false
	}
	return m.entries[i], true
}

func (m *Model) reload() {
	m.entries = m.controller.History()
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		rows = append(rows, table.Row{
			e.ClassifiedAt(m.loc).Format(timeLayout),
			themes.GetCategoryIcon(e.Category) + " " + e.Category,
			e.Confidence,
			e.DisposalTip,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m *Model) applyTheme() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Cell = m.theme.Normal
	s.Selected = m.theme.Selected
	m.table.SetStyles(s)
}

func (m Model) columns() []table.Column {
	tipWidth := max(m.width-16-18-12-8, 20)
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Category", Width: 18},
		{Title: "Confidence", Width: 12},
		{Title: "Disposal tip", Width: tipWidth},
	}
}

func (m Model) tableHeight() int {
	return max(m.height-8, 3)
}
