package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ploteditor/internal/editor"
	"ploteditor/internal/form"
	"ploteditor/internal/mapview"
)

const (
	zoomStep  = 0.5
	frameRate = 16 * time.Millisecond
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// animate starts the tick loop if the map has a transition running.
func (m *Model) animate() tea.Cmd {
	if !m.mv.Animating() || m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }

// report turns a controller error into a status line message.
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, editor.ErrNoSelection):
		m.setError("select a plot first")
	case errors.Is(err, editor.ErrTooFewPoints):
		m.setError("a plot needs at least 3 points")
	case errors.Is(err, editor.ErrNotConfirmed):
		m.setStatus("delete cancelled")
	case errors.Is(err, editor.ErrMalformedImport):
		m.setError("import failed: " + err.Error())
	case errors.Is(err, mapview.ErrNotEditable):
		m.setError("this plot cannot be edited on the map")
	default:
		m.setError(err.Error())
	}
}

func (m Model) vertexEditor() *mapview.Editor {
	p := m.ctrl.Selected()
	if p == nil {
		return nil
	}
	s := m.ctrl.Maps().Shape(p)
	if s == nil {
		return nil
	}
	return s.Editor()
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	m.focus = pane((int(m.focus) + delta + int(paneCount)) % int(paneCount))
	if m.focus == paneForm {
		return m.form.Focus()
	}
	m.form.Blur()
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lay := m.layout()
		m.mv.SetSize(lay.canvas.w, lay.canvas.h)
		return m, nil
	case dataLoadedMsg:
		base := filepath.Base(msg.path)
		if err := m.ctrl.LoadInitial(msg.path, msg.data, msg.err); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				m.setStatus(base + " not found, starting empty")
			} else {
				m.setError("could not read " + base + ", starting empty")
			}
			return m, nil
		}
		m.setStatus(fmt.Sprintf("loaded %d plots from %s", len(m.ctrl.Plots()), base))
		return m, nil
	case importReadMsg:
		if msg.err != nil {
			m.setError("import: " + msg.err.Error())
			return m, nil
		}
		if err := m.ctrl.Import(msg.path, msg.data); err != nil {
			m.report(err)
			return m, nil
		}
		m.showPicker = false
		m.setStatus(fmt.Sprintf("imported %d plots from %s", len(m.ctrl.Plots()), filepath.Base(msg.path)))
		return m, m.animate()
	case overlayLoadedMsg:
		if msg.err != nil {
			m.log.Warn("plan image unavailable", "path", msg.path, "err", msg.err)
			return m, nil
		}
		if o := m.mv.Overlay(); o != nil {
			o.Image = msg.img
		}
		return m, nil
	case dirChangedMsg:
		m.refreshDir()
		return m, watchDir(m.watcher)
	case watchErrMsg:
		m.log.Warn("import dir watch", "err", msg.err)
		return m, watchDir(m.watcher)
	case tickMsg:
		if m.mv.Step(time.Time(msg)) {
			return m, tick()
		}
		m.ticking = false
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	// cursor blink and other component messages
	var cmd tea.Cmd
	switch {
	case m.pasteMode:
		m.ta, cmd = m.ta.Update(msg)
	case m.showPicker:
		m.l, cmd = m.l.Update(msg)
	case m.focus == paneForm:
		cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			p := m.ctrl.Selected()
			if err := m.ctrl.Delete(true); err != nil {
				m.report(err)
			} else {
				m.setStatus("deleted " + p.Name)
			}
		case "n", "N", "esc":
			m.confirmDelete = false
			m.report(m.ctrl.Delete(false))
		}
		return m, nil
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.setStatus("paste cancelled")
			return m, nil
		case "enter":
			w := strings.TrimSpace(m.ta.Value())
			if w == "" {
				m.setError("paste: empty")
				return m, nil
			}
			if err := m.ctrl.ReplaceGeometry(w); err != nil {
				m.report(err)
				return m, nil
			}
			m.pasteMode = false
			m.ta.Blur()
			m.setStatus("geometry replaced, ctrl+s to save")
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.showPicker {
		if m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Import):
			m.showPicker = false
			return m, nil
		case msg.String() == "enter":
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.setStatus("reading " + it.title)
				return m, readImport(it.path)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Table):
			m.showTable = false
			return m, nil
		case msg.String() == "enter":
			m.showTable = false
			if p := m.tablePlot(); p != nil {
				m.ctrl.Select(p, true)
				m.setStatus("selected " + p.Name)
			}
			return m, m.animate()
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	if m.focus == paneForm {
		switch {
		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil
		case msg.String() == "tab":
			return m, m.cycleFocus(1)
		case key.Matches(msg, m.keys.Back):
			m.focus = paneMap
			m.form.Blur()
			return m, nil
		}
		return m, m.form.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Focus):
		if msg.String() == "shift+tab" {
			return m, m.cycleFocus(-1)
		}
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.New):
		p := m.ctrl.CreateNew()
		m.setStatus("created " + p.Name)
		return m, m.animate()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Delete):
		if m.ctrl.Selected() == nil {
			m.report(editor.ErrNoSelection)
			return m, nil
		}
		m.confirmDelete = true
	case key.Matches(msg, m.keys.Export):
		m.export(m.ctrl.Export)
	case key.Matches(msg, m.keys.ExportGeo):
		m.export(m.ctrl.ExportGeoJSON)
	case key.Matches(msg, m.keys.Import):
		m.showPicker = true
		m.refreshDir()
		if len(m.l.Items()) == 0 {
			m.setStatus("no .json or .geojson files in " + m.importDir)
		}
	case key.Matches(msg, m.keys.Overlay):
		if m.ctrl.Maps().ToggleOverlay() {
			m.setStatus("plan shown")
		} else {
			m.setStatus("plan hidden")
		}
	case key.Matches(msg, m.keys.ZoomIn):
		m.mv.ZoomBy(zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.mv.ZoomBy(-zoomStep)
	case key.Matches(msg, m.keys.Redraw):
		if err := m.ctrl.RedrawSelected(); err != nil {
			m.report(err)
			return m, nil
		}
		m.focus = paneMap
		m.setStatus("drawing: click the map to add points, enter to finish")
	case key.Matches(msg, m.keys.Finish):
		if m.focus == paneCards {
			if p := m.cards.Cursor(); p != nil {
				m.ctrl.Select(p, true)
				m.setStatus("selected " + p.Name)
			}
			return m, m.animate()
		}
		if m.ctrl.EditState() == mapview.Drawing {
			if err := m.ctrl.FinishDrawing(); err != nil {
				m.report(err)
				return m, nil
			}
			m.setStatus("drawing finished, ctrl+s to save")
		}
	case key.Matches(msg, m.keys.PrevVertex):
		if e := m.vertexEditor(); e != nil {
			e.Step(-1)
		}
	case key.Matches(msg, m.keys.NextVertex):
		if e := m.vertexEditor(); e != nil {
			e.Step(1)
		}
	case key.Matches(msg, m.keys.InsertVertex):
		if e := m.vertexEditor(); e == nil || !e.Insert() {
			m.setError("no vertex to insert after")
		}
	case key.Matches(msg, m.keys.DeleteVertex):
		if e := m.vertexEditor(); e == nil || !e.Delete() {
			m.setError("no vertex to delete")
		}
	case key.Matches(msg, m.keys.Copy):
		m.copyWKT()
	case key.Matches(msg, m.keys.Paste):
		if m.ctrl.Selected() == nil {
			m.report(editor.ErrNoSelection)
			return m, nil
		}
		m.pasteMode = true
		m.ta.SetValue("")
		m.setStatus("paste mode")
		return m, m.ta.Focus()
	case key.Matches(msg, m.keys.Table):
		m.showTable = true
		m.refreshTable()
	case key.Matches(msg, m.keys.MoveVertex):
		m.nudge(strings.TrimPrefix(msg.String(), "shift+"))
	case key.Matches(msg, m.keys.Pan):
		if m.focus == paneCards {
			switch msg.String() {
			case "up":
				m.cards.MoveCursor(-1)
			case "down":
				m.cards.MoveCursor(1)
			}
			return m, nil
		}
		switch msg.String() {
		case "up":
			m.mv.Pan(0, -1)
		case "down":
			m.mv.Pan(0, 1)
		case "left":
			m.mv.Pan(-2, 0)
		case "right":
			m.mv.Pan(2, 0)
		}
	}
	return m, nil
}

func (m *Model) save() {
	if err := m.ctrl.Save(); err != nil {
		m.report(err)
		return
	}
	m.setStatus("plot saved, remember to export")
}

func (m *Model) export(fn func() (string, error)) {
	path, err := fn()
	if err != nil {
		m.setError("export failed, see log")
		return
	}
	m.setStatus("exported to " + path)
}

func (m *Model) copyWKT() {
	wkt, err := m.ctrl.SelectedWKT()
	if err != nil {
		m.report(err)
		return
	}
	if err := clipboard.WriteAll(wkt); err != nil {
		m.log.Warn("clipboard", "err", err)
		m.setError("clipboard unavailable: " + err.Error())
		return
	}
	m.setStatus("copied WKT to clipboard")
}

// nudge moves the active vertex by one braille dot.
func (m *Model) nudge(dir string) {
	e := m.vertexEditor()
	if e == nil {
		m.report(editor.ErrNoSelection)
		return
	}
	dLat, dLon := m.mv.DegreesPerCell()
	stepLat, stepLon := dLat/4, dLon/2
	var ok bool
	switch dir {
	case "up":
		ok = e.Nudge(stepLat, 0)
	case "down":
		ok = e.Nudge(-stepLat, 0)
	case "left":
		ok = e.Nudge(0, -stepLon)
	case "right":
		ok = e.Nudge(0, stepLon)
	}
	if !ok {
		m.setError("no active vertex")
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	e := m.vertexEditor()
	if msg.Action == tea.MouseActionRelease && e != nil {
		e.Release()
	}
	if m.confirmDelete || m.pasteMode || m.showPicker || m.showTable {
		return m, nil
	}
	lay := m.layout()
	x, y := msg.X, msg.Y
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	switch {
	case lay.canvas.contains(x, y):
		lat, lon := m.mv.CellToLatLon(x-lay.canvas.x, y-lay.canvas.y)
		m.hoverHasGeo, m.hoverLat, m.hoverLon = true, lat, lon
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.mv.ZoomBy(zoomStep)
		case msg.Button == tea.MouseButtonWheelDown:
			m.mv.ZoomBy(-zoomStep)
		case press:
			if m.focus == paneForm {
				m.form.Blur()
			}
			m.focus = paneMap
			dLat, dLon := m.mv.DegreesPerCell()
			if e != nil && e.Grab(lat, lon, math.Max(dLat, dLon)) {
				m.setStatus(fmt.Sprintf("dragging vertex %d", e.Active()+1))
				break
			}
			before := m.ctrl.Selected()
			if m.ctrl.Click(lat, lon) {
				if p := m.ctrl.Selected(); p != before && p != nil {
					m.setStatus("selected " + p.Name)
				}
			}
		case msg.Action == tea.MouseActionMotion && e != nil && e.Dragging():
			e.Drag(lat, lon)
		}
		return m, m.animate()
	case lay.cards.contains(x, y):
		m.hoverHasGeo = false
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.cards.MoveCursor(-1)
		case msg.Button == tea.MouseButtonWheelDown:
			m.cards.MoveCursor(1)
		case press:
			if p := m.cards.At(y - lay.cards.y - panelTop); p != nil {
				m.ctrl.Select(p, true)
				m.setStatus("selected " + p.Name)
			}
			if m.focus == paneForm {
				m.form.Blur()
			}
			m.focus = paneCards
		}
		return m, m.animate()
	case lay.form.contains(x, y):
		m.hoverHasGeo = false
		if press {
			m.focus = paneForm
			return m, m.form.Goto(form.Field(y - lay.form.y - panelTop))
		}
	default:
		m.hoverHasGeo = false
	}
	return m, nil
}
