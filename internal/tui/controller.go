package tui

import (
	"context"

	"github.com/Veraticus/waste-wise/internal/model"
)

// Controller supplies and mutates the history shown in the browser.
// *engine.Session satisfies it.
type Controller interface {
	History() []model.HistoryEntry
	Restore(id string) (model.HistoryEntry, bool)
	ClearHistory(ctx context.Context) error
}

// ThemeToggler flips the persisted display preference.
type ThemeToggler interface {
	ToggleTheme(ctx context.Context) (model.Theme, error)
}
