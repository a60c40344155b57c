package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"ploteditor/internal/cards"
	"ploteditor/internal/config"
	"ploteditor/internal/editor"
	"ploteditor/internal/form"
	"ploteditor/internal/geom"
	"ploteditor/internal/mapview"
	"ploteditor/internal/plot"
)

type pane int

const (
	paneCards pane = iota
	paneMap
	paneForm
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneMap:
		return "map"
	case paneForm:
		return "form"
	}
	return "cards"
}

type Model struct {
	width  int
	height int

	cfg *config.Config
	log *slog.Logger

	ctrl  *editor.Controller
	mv    *mapview.Map
	form  *form.Form
	cards *cards.List

	keys  keyMap
	help  help.Model
	focus pane

	status    string
	statusErr bool

	// delete confirmation modal
	confirmDelete bool

	// import picker
	showPicker bool
	importDir  string
	l          list.Model
	watcher    *fsnotify.Watcher

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// plots table
	showTable bool
	tbl       table.Model
	tblPlots  []*plot.Plot

	// animation tick loop running
	ticking bool

	// hover state
	hoverHasGeo bool
	hoverLat    float64
	hoverLon    float64
}

// New builds the editor UI from cfg. watcher may be nil; the import picker then refreshes
// only when opened.
func New(cfg *config.Config, log *slog.Logger, watcher *fsnotify.Watcher) Model {
	if log == nil {
		log = slog.Default()
	}
	mv := mapview.New(cfg.Map.CenterLat, cfg.Map.CenterLon, cfg.Map.Zoom)
	o := mapview.NewGroundOverlay(geom.BBox{
		MinX: cfg.Overlay.LatMin, MinY: cfg.Overlay.LonMin,
		MaxX: cfg.Overlay.LatMax, MaxY: cfg.Overlay.LonMax,
	}, nil, cfg.Overlay.Opacity)
	o.SetVisible(cfg.Overlay.Visible)
	mv.SetOverlay(o)

	f := form.New(cfg.Editor.DefaultStatus)
	cl := cards.New()
	ctrl := editor.New(mv, f, cl, editor.Settings{
		ExportDir:     cfg.Data.ExportDir,
		FocusDuration: cfg.Editor.FocusDuration,
		NewPlotSize:   cfg.Editor.NewPlotSize,
		DefaultStatus: cfg.Editor.DefaultStatus,
	}, log)

	m := Model{
		cfg:       cfg,
		log:       log,
		ctrl:      ctrl,
		mv:        mv,
		form:      f,
		cards:     cl,
		keys:      newKeyMap(),
		help:      help.New(),
		focus:     paneMap,
		status:    "ploteditor ready",
		importDir: cfg.Data.ImportDir,
		watcher:   watcher,
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Import"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a WKT POLYGON in lon/lat order. Enter applies it to the selected plot; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// plots table setup
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(tableColumns()))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadData(m.cfg.Data.File)}
	if m.cfg.Overlay.Image != "" {
		cmds = append(cmds, loadOverlay(m.cfg.Overlay.Image))
	}
	if m.watcher != nil {
		cmds = append(cmds, watchDir(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Controller exposes the editor state, mainly for tests.
func (m Model) Controller() *editor.Controller { return m.ctrl }
