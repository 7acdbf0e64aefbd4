// Package themes holds the light and dark palettes shared by the CLI output
// and the history browser.
package themes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/waste-wise/internal/model"
)

// Theme defines the visual style for rendered output.
type Theme struct {
	Name model.Theme

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Label         lipgloss.Style
	Category      lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	Primary    lipgloss.Color
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
}

type palette struct {
	primary, border, foreground, subtle, selectedFg lipgloss.Color
	success, warning, error, info                  lipgloss.Color
}

var lightPalette = palette{
	primary:    lipgloss.Color("#15803d"),
	border:     lipgloss.Color("#d4d4d4"),
	foreground: lipgloss.Color("#171717"),
	subtle:     lipgloss.Color("#737373"),
	selectedFg: lipgloss.Color("#ffffff"),
	success:    lipgloss.Color("#16a34a"),
	warning:    lipgloss.Color("#b45309"),
	error:      lipgloss.Color("#dc2626"),
	info:       lipgloss.Color("#2563eb"),
}

var darkPalette = palette{
	primary:    lipgloss.Color("#4ade80"),
	border:     lipgloss.Color("#404040"),
	foreground: lipgloss.Color("#fafafa"),
	subtle:     lipgloss.Color("#a3a3a3"),
	selectedFg: lipgloss.Color("#052e16"),
	success:    lipgloss.Color("#86efac"),
	warning:    lipgloss.Color("#fcd34d"),
	error:      lipgloss.Color("#f87171"),
	info:       lipgloss.Color("#93c5fd"),
}

func build(name model.Theme, p palette) Theme {
	return Theme{
		Name: name,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.subtle),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.subtle).
			Width(14),
		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.selectedFg).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),

		StatusSuccess: lipgloss.NewStyle().Foreground(p.success).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(p.warning).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(p.error).Bold(true),
		StatusInfo:    lipgloss.NewStyle().Foreground(p.info),

		Primary:    p.primary,
		Border:     p.border,
		Foreground: p.foreground,
		Subtle:     p.subtle,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.error,
		Info:       p.info,
	}
}

// Light is the default theme.
var Light = build(model.ThemeLight, lightPalette)

// Dark is the dark theme.
var Dark = build(model.ThemeDark, darkPalette)

// For returns the theme for a stored preference.
func For(t model.Theme) Theme {
	if t == model.ThemeDark {
		return Dark
	}
	return Light
}

// CategoryIcons maps waste categories to emoji icons.
var CategoryIcons = map[string]string{
	"plastic": "🧴",
	"paper":   "📄",
	"metal":   "🥫",
	"organic": "🍂",
	"glass":   "🍾",
	"e-waste": "🔌",
	"textile": "👕",
}

// GetCategoryIcon returns an icon for a category. Model replies are free
// text, so the lookup ignores case and matches on the first word.
func GetCategoryIcon(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if icon, ok := CategoryIcons[key]; ok {
		return icon
	}
	if first, _, ok := strings.Cut(key, " "); ok {
		if icon, ok := CategoryIcons[first]; ok {
			return icon
		}
	}
	return "🗑️"
}
