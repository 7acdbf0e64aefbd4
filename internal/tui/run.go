package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/waste-wise/internal/model"
)

// Run starts the history browser and blocks until the user quits. It
// returns the last entry the user restored, if any.
func Run(ctx context.Context, cfg Config) (*model.HistoryEntry, error) {
	if cfg.Controller == nil {
		return nil, fmt.Errorf("history controller is required")
	}

	p := tea.NewProgram(NewModel(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("history browser failed: %w", err)
	}

	if m, ok := final.(Model); ok {
		if entry, found := m.Restored(); found {
			return &entry, m.Err()
		}
		return nil, m.Err()
	}
	return nil, nil
}
