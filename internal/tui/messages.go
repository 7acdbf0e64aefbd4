package tui

import "github.com/Veraticus/waste-wise/internal/model"

// historyClearedMsg reports the outcome of a clear-all.
type historyClearedMsg struct {
	err error
}

// themeToggledMsg carries the new display preference.
type themeToggledMsg struct {
	err   error
	theme model.Theme
}
