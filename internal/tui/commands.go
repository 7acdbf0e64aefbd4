package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const commandTimeout = 10 * time.Second

func (m Model) clearHistory() tea.Cmd {
	ctx := m.ctx
	controller := m.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		return historyClearedMsg{err: controller.ClearHistory(ctx)}
	}
}

func (m Model) toggleTheme() tea.Cmd {
	if m.toggler == nil {
		next := m.theme.Name.Toggle()
		return func() tea.Msg { return themeToggledMsg{theme: next} }
	}

	ctx := m.ctx
	toggler := m.toggler
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		theme, err := toggler.ToggleTheme(ctx)
		return themeToggledMsg{theme: theme, err: err}
	}
}
