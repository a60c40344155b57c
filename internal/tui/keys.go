package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New          key.Binding
	Save         key.Binding
	Delete       key.Binding
	Export       key.Binding
	ExportGeo    key.Binding
	Import       key.Binding
	Overlay      key.Binding
	Focus        key.Binding
	Pan          key.Binding
	MoveVertex   key.Binding
	ZoomIn       key.Binding
	ZoomOut      key.Binding
	PrevVertex   key.Binding
	NextVertex   key.Binding
	InsertVertex key.Binding
	DeleteVertex key.Binding
	Redraw       key.Binding
	Finish       key.Binding
	Copy         key.Binding
	Paste        key.Binding
	Table        key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new plot")),
		Save:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Export:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export json")),
		ExportGeo:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export geojson")),
		Import:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "import")),
		Overlay:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle plan")),
		Focus:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Pan:          key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "pan / move")),
		MoveVertex:   key.NewBinding(key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"), key.WithHelp("shift+↑↓←→", "move vertex")),
		ZoomIn:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:      key.NewBinding(key.WithKeys("-", "_")),
		PrevVertex:   key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "prev/next vertex")),
		NextVertex:   key.NewBinding(key.WithKeys("]")),
		InsertVertex: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert vertex")),
		DeleteVertex: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete vertex")),
		Redraw:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redraw")),
		Finish:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select / finish")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy wkt")),
		Paste:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste wkt")),
		Table:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "plots table")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Save, k.Delete, k.Export, k.Import, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Save, k.Delete, k.Redraw, k.Finish, k.Copy, k.Paste},
		{k.PrevVertex, k.InsertVertex, k.DeleteVertex, k.MoveVertex},
		{k.Export, k.ExportGeo, k.Import, k.Table, k.Overlay},
		{k.Pan, k.ZoomIn, k.Focus, k.Back, k.Help, k.Quit},
	}
}
