package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/waste-wise/internal/tui/themes"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateDetail:
		body = m.detailView()
	case StateConfirmClear:
		body = m.confirmView()
	default:
		body = m.listView()
	}

	parts := []string{
		m.theme.Title.Render(fmt.Sprintf("♻️  Classification History (%d)", len(m.entries))),
		body,
	}
	if m.lastError != nil {
		parts = append(parts, m.theme.StatusError.Render("✗ "+m.lastError.Error()))
	} else if m.status != "" {
		parts = append(parts, m.theme.StatusInfo.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) listView() string {
	if len(m.entries) == 0 {
		return m.theme.Muted.Render("No classifications yet. Run `wise classify <image>` to get started.")
	}
	return m.table.View()
}

func (m Model) detailView() string {
	if m.restored == nil {
		return ""
	}
	e := m.restored

	field := func(label, value string) string {
		return m.theme.Label.Render(label) + m.theme.Normal.Render(value)
	}

	rows := []string{
		field("Category", themes.GetCategoryIcon(e.Category)+" "+m.theme.Category.Render(e.Category)),
		field("Confidence", e.Confidence),
		field("Disposal tip", e.DisposalTip),
		field("Classified", e.ClassifiedAt(m.loc).Format(timeLayout)),
		field("ID", e.ID),
	}
	if e.ImagePreview != "" {
		rows = append(rows, field("Snapshot", fmt.Sprintf("%d bytes stored", len(e.ImagePreview))))
	}

	return m.theme.RoundedBox.Render(strings.Join(rows, "\n"))
}

func (m Model) confirmView() string {
	prompt := fmt.Sprintf("Clear all %d history entries? Stats are kept. [y/N]", len(m.entries))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.table.View(),
		m.theme.StatusWarning.Render("⚠️  "+prompt),
	)
}
