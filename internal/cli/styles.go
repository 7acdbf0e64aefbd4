// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/tui/themes"
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	RecycleIcon = "♻️"
	StreakIcon  = "🔥"
	ChartIcon   = "📊"
	FactIcon    = "💡"
	HistoryIcon = "🗂️"
)

// Styles renders text with a theme.
type Styles struct {
	theme themes.Theme
}

// NewStyles returns styles for the given display preference.
func NewStyles(t model.Theme) Styles {
	return Styles{theme: themes.For(t)}
}

// Theme returns the underlying palette.
func (s Styles) Theme() themes.Theme {
	return s.theme
}

// FormatSuccess formats a success message with icon.
func (s Styles) FormatSuccess(message string) string {
	return s.theme.StatusSuccess.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func (s Styles) FormatError(message string) string {
	return s.theme.StatusError.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func (s Styles) FormatWarning(message string) string {
	return s.theme.StatusWarning.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func (s Styles) FormatInfo(message string) string {
	return s.theme.StatusInfo.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the recycle icon.
func (s Styles) FormatTitle(title string) string {
	return s.theme.Title.Render(RecycleIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func (s Styles) FormatPrompt(prompt string) string {
	return s.theme.Bold.Foreground(s.theme.Primary).Render(prompt)
}

// Muted renders secondary text.
func (s Styles) Muted(text string) string {
	return s.theme.Muted.Render(text)
}

// Field renders a "label value" row.
func (s Styles) Field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.theme.Label.Render(label), s.theme.Normal.Render(value))
}

// RenderBox renders content in a styled box.
func (s Styles) RenderBox(title, content string) string {
	boxTitle := s.theme.Title.
		UnsetMargins().
		Render(title)

	return s.theme.RoundedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		"",
		content,
	))
}
