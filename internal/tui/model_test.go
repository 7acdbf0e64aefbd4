package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/waste-wise/internal/engine"
	"github.com/Veraticus/waste-wise/internal/history"
	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/stats"
	"github.com/Veraticus/waste-wise/internal/testutil"
)

type fakeController struct {
	clearErr error
	entries  []model.HistoryEntry
	cleared  int
}

func (f *fakeController) History() []model.HistoryEntry {
	return append([]model.HistoryEntry(nil), f.entries...)
}

func (f *fakeController) Restore(id string) (model.HistoryEntry, bool) {
	return history.Find(f.entries, id)
}

func (f *fakeController) ClearHistory(context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared++
	f.entries = nil
	return nil
}

type fakeToggler struct {
	theme model.Theme
}

func (f *fakeToggler) ToggleTheme(context.Context) (model.Theme, error) {
	f.theme = f.theme.Toggle()
	return f.theme, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, ctrl Controller) Model {
	t.Helper()
	return NewModel(context.Background(), Config{
		Controller: ctrl,
		Toggler:    &fakeToggler{theme: model.ThemeLight},
		Location:   time.UTC,
	})
}

// send feeds msg through Update and runs any returned command once,
// feeding its message back in.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	if _, quit := out.(tea.QuitMsg); quit {
		return m, out
	}
	if out == nil {
		return m, nil
	}
	next, _ = m.Update(out)
	m, ok = next.(Model)
	require.True(t, ok)
	return m, out
}

func TestModel_ListsEntries(t *testing.T) {
	ctrl := &fakeController{entries: testutil.Entries(3)}
	m := newTestModel(t, ctrl)

	assert.Equal(t, StateList, m.State())
	assert.Len(t, m.Entries(), 3)

	view := m.View()
	assert.Contains(t, view, "Classification History (3)")
	assert.Contains(t, view, "Plastic")
}

func TestModel_EmptyHistory(t *testing.T) {
	m := newTestModel(t, &fakeController{})

	assert.Contains(t, m.View(), "No classifications yet.")

	m, _ = send(t, m, keyRunes("c"))
	assert.Equal(t, StateList, m.State())
	assert.Contains(t, m.View(), "History is already empty.")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateList, m.State())
	_, ok := m.Restored()
	assert.False(t, ok)
}

func TestModel_SelectRestoresEntry(t *testing.T) {
	entries := testutil.Entries(3)
	m := newTestModel(t, &fakeController{entries: entries})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, StateDetail, m.State())
	restored, ok := m.Restored()
	require.True(t, ok)
	assert.Equal(t, entries[1].ID, restored.ID)
	assert.Contains(t, m.View(), entries[1].ID)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.State())
}

func TestModel_ClearRequiresConfirmation(t *testing.T) {
	ctrl := &fakeController{entries: testutil.Entries(2)}
	m := newTestModel(t, ctrl)

	m, _ = send(t, m, keyRunes("c"))
	require.Equal(t, StateConfirmClear, m.State())
	assert.Contains(t, m.View(), "Clear all 2 history entries?")

	m, _ = send(t, m, keyRunes("n"))
	assert.Equal(t, StateList, m.State())
	assert.Equal(t, 0, ctrl.cleared)
	assert.Len(t, m.Entries(), 2)

	m, _ = send(t, m, keyRunes("c"))
	m, msg := send(t, m, keyRunes("y"))
	assert.IsType(t, historyClearedMsg{}, msg)
	assert.Equal(t, StateList, m.State())
	assert.Equal(t, 1, ctrl.cleared)
	assert.Empty(t, m.Entries())
	assert.Contains(t, m.View(), "History cleared.")
}

func TestModel_ClearFailureKeepsEntries(t *testing.T) {
	ctrl := &fakeController{entries: testutil.Entries(2), clearErr: errors.New("disk full")}
	m := newTestModel(t, ctrl)

	m, _ = send(t, m, keyRunes("c"))
	m, _ = send(t, m, keyRunes("y"))

	assert.Equal(t, StateList, m.State())
	assert.Len(t, m.Entries(), 2)
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "disk full")
}

func TestModel_ToggleTheme(t *testing.T) {
	m := newTestModel(t, &fakeController{entries: testutil.Entries(1)})
	require.Equal(t, model.ThemeLight, m.theme.Name)

	m, msg := send(t, m, keyRunes("t"))
	assert.Equal(t, themeToggledMsg{theme: model.ThemeDark}, msg)
	assert.Equal(t, model.ThemeDark, m.theme.Name)

	m, _ = send(t, m, keyRunes("t"))
	assert.Equal(t, model.ThemeLight, m.theme.Name)
}

func TestModel_ToggleThemeWithoutToggler(t *testing.T) {
	m := NewModel(context.Background(), Config{Controller: &fakeController{}, Theme: model.ThemeDark})

	m, _ = send(t, m, keyRunes("t"))
	assert.Equal(t, model.ThemeLight, m.theme.Name)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: keyRunes("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeController{entries: testutil.Entries(1)})
			m, msg := send(t, m, tt.msg)
			assert.IsType(t, tea.QuitMsg{}, msg)
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	assert.False(t, m.help.ShowAll)

	m, _ = send(t, m, keyRunes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "force quit")
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t, &fakeController{entries: testutil.Entries(1)})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	// 40 rows less chrome, less the two-line table header.
	assert.Equal(t, 30, m.table.Height())
}

func TestModel_SessionController(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	entries := testutil.Entries(2)
	db.SeedHistory(entries...)

	store := history.NewStore(db.Storage)
	session := engine.NewSession(ctx, engine.New(nil, store, stats.NewEngine(db.Storage)))

	m := newTestModel(t, session)
	require.Len(t, m.Entries(), 2)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	got, ok := m.Restored()
	require.True(t, ok)
	assert.Equal(t, entries[1].ID, got.ID)

	require.NoError(t, session.ClearHistory(ctx))
	assert.Empty(t, session.History())
	assert.Empty(t, store.Load(ctx))
}
