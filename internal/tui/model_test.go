package tui

import (
	"context"
	"testing"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/portfolio"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/testutil"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func setupModel(t *testing.T, userID string) (Model, *portfolio.Manager) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	manager := portfolio.NewManager(db.Storage, userID, nil, portfolio.WithClock(func() time.Time { return fixedNow }))
	_, err := manager.IngestResults(context.Background(), testutil.SampleResults())
	require.NoError(t, err)

	cfg := defaultConfig()
	for _, opt := range []Option{WithBackend(manager), WithClock(func() time.Time { return fixedNow }), WithSize(120, 40)} {
		opt(&cfg)
	}
	m := newModel(cfg)
	return loaded(t, m), manager
}

// loaded runs the initial load command and feeds its message back.
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(k)
	return updated.(Model), cmd
}

// settle runs an action command and the reload that follows it.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	updated, reload := m.Update(cmd())
	m = updated.(Model)
	if reload != nil {
		updated, _ = m.Update(reload())
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rowIDs(m Model) []string {
	ids := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		ids = append(ids, r.prop.ID)
	}
	return ids
}

func TestModel_LoadsGroupedRows(t *testing.T) {
	m, _ := setupModel(t, "ana")

	assert.True(t, m.ready)
	assert.Equal(t, []string{"car", "lot-b", "lot-a", "house"}, rowIDs(m))
	assert.Len(t, m.result.Groups, 3)
	assert.Equal(t, m.rows[1].group, m.rows[2].group)
	assert.Contains(t, m.View(), "4 lotes en 3 expedientes")
}

func TestModel_SortToggle(t *testing.T) {
	m, _ := setupModel(t, "ana")

	m, _ = press(t, m, runes("s"))
	assert.Equal(t, model.SortDesc, m.filters.SortOrder)
	assert.Equal(t, []string{"house", "lot-a", "lot-b", "car"}, rowIDs(m))
}

func TestModel_Search(t *testing.T) {
	m, _ := setupModel(t, "ana")

	m, _ = press(t, m, runes("/"))
	require.True(t, m.searching)

	for _, r := range "toyota" {
		m, _ = press(t, m, runes(string(r)))
	}
	assert.Equal(t, "toyota", m.filters.SearchQuery)
	assert.Equal(t, []string{"car"}, rowIDs(m))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, []string{"car"}, rowIDs(m))

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.filters.SearchQuery)
	assert.Len(t, m.rows, 4)
}

func TestModel_ToggleFavorite(t *testing.T) {
	m, manager := setupModel(t, "ana")

	m, cmd := press(t, m, runes("f"))
	m = settle(t, m, cmd)

	assert.Equal(t, "Agregado a favoritos", m.status)
	assert.True(t, m.favorites.Has("car"))
	ok, err := manager.IsFavorite(context.Background(), "car")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestModel_FavoriteRequiresUser(t *testing.T) {
	m, _ := setupModel(t, "")

	m, cmd := press(t, m, runes("f"))
	m = settle(t, m, cmd)

	require.Error(t, m.lastError)
	assert.ErrorIs(t, m.lastError, common.ErrLoginRequired)
	assert.Contains(t, m.View(), "usuario")
}

func TestModel_RejectGroupMovesLast(t *testing.T) {
	m, _ := setupModel(t, "ana")

	m, _ = press(t, m, runes("j"))
	require.Equal(t, "lot-b", m.selected().ID)

	m, cmd := press(t, m, runes("r"))
	m = settle(t, m, cmd)

	assert.Equal(t, "Expediente descartado", m.status)
	assert.True(t, m.rejected.Has("19-000123-0164-CJ"))
	assert.Equal(t, []string{"car", "house", "lot-b", "lot-a"}, rowIDs(m))
}

func TestModel_States(t *testing.T) {
	m, _ := setupModel(t, "ana")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateDetail, m.state)
	view := m.View()
	assert.Contains(t, view, "21-000789-0504-CJ")
	assert.Contains(t, view, "Toyota")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.state)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateStats, m.state)
	assert.Contains(t, m.View(), "Heredia")

	m, _ = press(t, m, runes("?"))
	assert.Equal(t, StateHelp, m.state)
	assert.Contains(t, m.View(), "favorito")

	m, cmd := press(t, m, runes("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := setupModel(t, "ana")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = updated.(Model)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 20, m.height)
	assert.Equal(t, 80, m.help.Width)
}

func TestRun_RequiresBackend(t *testing.T) {
	err := Run(context.Background(), WithTheme(themes.Light))
	assert.Error(t, err)
}
