package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploteditor/internal/config"
	"ploteditor/internal/editor"
)

const sample = `[
  {"id": "1", "name": "A", "status": "Свободен",
   "coords": [[44.993, 43.173], [44.995, 43.173], [44.995, 43.175], [44.993, 43.175]]},
  {"id": "2", "name": "B", "status": "Продан",
   "coords": [[44.990, 43.172], [44.991, 43.172], [44.991, 43.173]]}
]`

func newModel(t *testing.T) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	m := New(cfg, nil, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), dir
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, k string) Model {
	switch k {
	case "tab":
		return send(m, tea.KeyMsg{Type: tea.KeyTab})
	case "esc":
		return send(m, tea.KeyMsg{Type: tea.KeyEsc})
	case "enter":
		return send(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestViewRendersPanels(t *testing.T) {
	m, _ := newModel(t)
	out := m.View()
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Plots")
	assert.Contains(t, out, "no plots yet")
}

func TestNewPlotKey(t *testing.T) {
	m, _ := newModel(t)
	m = press(m, "n")
	require.Len(t, m.Controller().Plots(), 1)
	p := m.Controller().Selected()
	require.NotNil(t, p)
	assert.Equal(t, "1", p.ID)
	assert.Len(t, p.Coords, 4)
	assert.Contains(t, m.View(), p.Name)
}

func TestDataLoaded(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, dataLoadedMsg{path: "plotsData.json", data: []byte(sample)})
	assert.Len(t, m.Controller().Plots(), 2)
	assert.Contains(t, m.status, "loaded 2 plots")
	assert.False(t, m.statusErr)
}

func TestDataMissingStartsEmpty(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, dataLoadedMsg{path: "plotsData.json", err: os.ErrNotExist})
	assert.Empty(t, m.Controller().Plots())
	assert.Contains(t, m.status, "not found")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, _ := newModel(t)
	m = press(m, "x")
	assert.False(t, m.confirmDelete)
	assert.True(t, m.statusErr)

	m = press(m, "n")
	m = press(m, "x")
	require.True(t, m.confirmDelete)
	m = press(m, "n")
	assert.False(t, m.confirmDelete)
	assert.Len(t, m.Controller().Plots(), 1)
	assert.Equal(t, "delete cancelled", m.status)

	m = press(m, "x")
	m = press(m, "y")
	assert.Empty(t, m.Controller().Plots())
	assert.Nil(t, m.Controller().Selected())
}

func TestFocusCycle(t *testing.T) {
	m, _ := newModel(t)
	assert.Equal(t, paneMap, m.focus)
	m = press(m, "tab")
	assert.Equal(t, paneForm, m.focus)
	assert.True(t, m.form.Focused())

	// letters go to the form while it has focus
	m = press(m, "n")
	assert.Empty(t, m.Controller().Plots())

	m = press(m, "esc")
	assert.Equal(t, paneMap, m.focus)
	assert.False(t, m.form.Focused())
}

func TestSaveWithoutSelection(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.statusErr)
	assert.Equal(t, "select a plot first", m.status)
}

func TestExportWritesFile(t *testing.T) {
	m, dir := newModel(t)
	m = press(m, "n")
	m = press(m, "e")
	assert.False(t, m.statusErr, m.status)
	_, err := os.Stat(filepath.Join(dir, editor.DataFileName))
	assert.NoError(t, err)
}

func TestCardClickSelects(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, dataLoadedMsg{path: "plotsData.json", data: []byte(sample)})
	require.Nil(t, m.Controller().Selected())

	lay := m.layout()
	m = send(m, tea.MouseMsg{
		X: lay.cards.x + 2, Y: lay.cards.y + panelTop,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	p := m.Controller().Selected()
	require.NotNil(t, p)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, paneCards, m.focus)
}

func TestTableSelects(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, dataLoadedMsg{path: "plotsData.json", data: []byte(sample)})
	m = press(m, "a")
	require.True(t, m.showTable)
	assert.Len(t, m.tblPlots, 2)
	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, "enter")
	assert.False(t, m.showTable)
	require.NotNil(t, m.Controller().Selected())
	assert.Equal(t, "2", m.Controller().Selected().ID)
}

func TestReport(t *testing.T) {
	var m Model
	m.report(editor.ErrTooFewPoints)
	assert.Equal(t, "a plot needs at least 3 points", m.status)
	assert.True(t, m.statusErr)

	m.report(editor.ErrNotConfirmed)
	assert.False(t, m.statusErr)

	m.report(errors.Join(editor.ErrMalformedImport, errors.New("bad json")))
	assert.Contains(t, m.status, "import failed")
}

func TestHoverShowsPlotName(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, dataLoadedMsg{path: "plotsData.json", data: []byte(sample)})
	m.mv.SetCenter(43.174, 44.994)

	lay := m.layout()
	m = send(m, tea.MouseMsg{
		X: lay.canvas.x + lay.canvas.w/2, Y: lay.canvas.y + lay.canvas.h/2,
		Action: tea.MouseActionMotion, Button: tea.MouseButtonNone,
	})
	require.True(t, m.hoverHasGeo)
	assert.Contains(t, m.View(), "A  lat=")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
