package tui

import (
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"ploteditor/internal/mapview"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// importable reports whether the picker offers files with this name.
func importable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".geojson":
		return true
	}
	return false
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.importDir)
	if err != nil {
		m.setError("read dir error: " + err.Error())
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !importable(name) {
			continue
		}
		desc := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if info, err := e.Info(); err == nil {
			desc += "  " + info.ModTime().Format("2006-01-02 15:04")
		}
		items = append(items, fileItem{title: name, desc: desc, path: filepath.Join(m.importDir, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
}

// dataLoadedMsg carries the startup data file.
type dataLoadedMsg struct {
	path string
	data []byte
	err  error
}

// importReadMsg carries a file picked for import.
type importReadMsg struct {
	path string
	data []byte
	err  error
}

type overlayLoadedMsg struct {
	path string
	img  image.Image
	err  error
}

// dirChangedMsg is sent when something in the import directory changes.
type dirChangedMsg struct{ name string }

type watchErrMsg struct{ err error }

func loadData(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return dataLoadedMsg{path: path, data: data, err: err}
	}
}

func readImport(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return importReadMsg{path: path, data: data, err: err}
	}
}

func loadOverlay(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := mapview.LoadImage(path)
		return overlayLoadedMsg{path: path, img: img, err: err}
	}
}

// NewWatcher watches dir for the import picker.
func NewWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// watchDir waits for the next relevant event. Update re-arms it after every message.
func watchDir(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !importable(ev.Name) || ev.Op == fsnotify.Chmod {
					continue
				}
				return dirChangedMsg{name: ev.Name}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}
