package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/engine"
	"github.com/Veraticus/waste-wise/internal/guide"
	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/tui/themes"
)

const timeLayout = "2006-01-02 15:04"

// Renderer writes classification results, history and stats to a terminal.
type Renderer struct {
	writer io.Writer
	styles Styles
	loc    *time.Location
}

// NewRenderer creates a renderer. A nil writer means stdout and a nil
// location means the local zone.
func NewRenderer(writer io.Writer, theme model.Theme, loc *time.Location) *Renderer {
	if writer == nil {
		writer = os.Stdout
	}
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{writer: writer, styles: NewStyles(theme), loc: loc}
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// FormatResult renders the three classification fields in a box.
func (r *Renderer) FormatResult(result model.ClassificationResult) string {
	rows := []string{
		r.styles.Field("Category", themes.GetCategoryIcon(result.Category)+" "+r.styles.theme.Category.Render(result.Category)),
		r.styles.Field("Confidence", result.Confidence),
		r.styles.Field("Disposal tip", result.DisposalTip),
	}
	return r.styles.RenderBox("Classification Result", strings.Join(rows, "\n"))
}

// RenderOutcome shows a fresh classification with the updated stats. An
// empty fact is omitted.
func (r *Renderer) RenderOutcome(outcome engine.Outcome, fact string) error {
	var b strings.Builder
	b.WriteString(r.FormatResult(outcome.Result))
	b.WriteString("\n")

	if c, ok := guide.Lookup(outcome.Result.Category); ok {
		b.WriteString(r.styles.FormatInfo(c.Name + ": " + c.Tip))
		b.WriteString("\n")
	}

	b.WriteString(r.formatStatsLine(outcome.Stats))
	b.WriteString("\n")

	if fact != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Muted(FactIcon + " Did you know? " + fact))
		b.WriteString("\n")
	}

	return r.write(b.String())
}

// RenderEntry shows a restored history entry.
func (r *Renderer) RenderEntry(entry model.HistoryEntry) error {
	var b strings.Builder
	b.WriteString(r.FormatResult(entry.Result()))
	b.WriteString("\n")
	b.WriteString(r.styles.Field("Classified", entry.ClassifiedAt(r.loc).Format(timeLayout)))
	b.WriteString("\n")
	b.WriteString(r.styles.Field("ID", entry.ID))
	b.WriteString("\n")
	return r.write(b.String())
}

// FormatHistory renders entries as a table, newest first.
func (r *Renderer) FormatHistory(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return r.styles.Muted("No classifications yet.")
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.ClassifiedAt(r.loc).Format(timeLayout),
			themes.GetCategoryIcon(e.Category) + " " + e.Category,
			e.Confidence,
			e.ID,
		})
	}

	theme := r.styles.theme
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "WHEN", "CATEGORY", "CONFIDENCE", "ID").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Bold.Padding(0, 1)
			}
			return theme.Normal.Padding(0, 1)
		})

	return t.String()
}

// RenderHistory writes the history table.
func (r *Renderer) RenderHistory(entries []model.HistoryEntry) error {
	title := r.styles.FormatTitle(fmt.Sprintf("History (%d)", len(entries)))
	return r.write(title + "\n" + r.FormatHistory(entries) + "\n")
}

// RenderStats writes the running totals.
func (r *Renderer) RenderStats(s model.Stats) error {
	rows := []string{
		r.styles.Field("Total", strconv.Itoa(s.Total)),
		r.styles.Field("Streak", pluralDays(s.Streak)),
	}
	last := "never"
	if s.HasClassified() {
		last = s.LastClassifiedAt(r.loc).Format(timeLayout)
	}
	rows = append(rows, r.styles.Field("Last", last))

	return r.write(r.styles.RenderBox(ChartIcon+" Your Impact", strings.Join(rows, "\n")) + "\n")
}

// RenderGuide writes the category guide followed by a fact.
func (r *Renderer) RenderGuide(fact string) error {
	var b strings.Builder
	b.WriteString(r.styles.FormatTitle("Waste Classification Guide"))
	b.WriteString("\n")
	b.WriteString(guide.WhyItMatters)
	b.WriteString("\n\n")

	for i, step := range guide.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	for _, c := range guide.Categories() {
		rows := []string{
			c.Description,
			"",
			r.styles.Field("Examples", c.Examples),
			r.styles.Field("Tip", c.Tip),
		}
		b.WriteString(r.styles.RenderBox(themes.GetCategoryIcon(c.Name)+" "+c.Name, strings.Join(rows, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(r.styles.Muted("Goal: " + guide.Goal))
	b.WriteString("\n")
	if fact != "" {
		b.WriteString(r.styles.Muted(FactIcon + " Did you know? " + fact))
		b.WriteString("\n")
	}
	return r.write(b.String())
}

// RenderError writes a failure. User-facing errors show only their message.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		msg = userErr.UserMessage
	}
	return r.write(r.styles.FormatError(msg) + "\n")
}

// Success writes a confirmation line.
func (r *Renderer) Success(msg string) error {
	return r.write(r.styles.FormatSuccess(msg) + "\n")
}

// Info writes an informational line.
func (r *Renderer) Info(msg string) error {
	return r.write(r.styles.FormatInfo(msg) + "\n")
}

func (r *Renderer) formatStatsLine(s model.Stats) string {
	return r.styles.theme.StatusSuccess.Render(
		fmt.Sprintf("%s %s streak · %d classified", StreakIcon, pluralDays(s.Streak), s.Total))
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.writer, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
