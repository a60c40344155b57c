package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ploteditor/internal/plot"
)

const (
	DataFileName    = "plotsData.json"
	GeoJSONFileName = "plotsData.geojson"
)

// pullAll copies live geometry back into every plot whose shape has at least three vertices,
// so drawn but unsaved edits reach the export.
func (c *Controller) pullAll() []*plot.Plot {
	plots := c.store.All()
	for _, p := range plots {
		if err := c.maps.PullGeometry(p); err != nil && !errors.Is(err, ErrTooFewPoints) {
			c.log.Warn("pull geometry", "plot", p.ID, "err", err)
		}
	}
	return plots
}

// Export writes the whole store as plotsData.json into the export directory. Selection and
// the map are left alone.
func (c *Controller) Export() (string, error) {
	data, err := plot.Encode(c.pullAll())
	if err != nil {
		c.log.Error("export failed", "err", err)
		return "", err
	}
	return c.write(DataFileName, data)
}

// ExportGeoJSON writes the store as a FeatureCollection next to the JSON export.
func (c *Controller) ExportGeoJSON() (string, error) {
	data, err := plot.EncodeGeoJSON(c.pullAll())
	if err != nil {
		c.log.Error("geojson export failed", "err", err)
		return "", err
	}
	return c.write(GeoJSONFileName, data)
}

func (c *Controller) write(name string, data []byte) (string, error) {
	path := filepath.Join(c.cfg.ExportDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		c.log.Error("export failed", "path", path, "err", err)
		return "", err
	}
	c.log.Info("exported", "path", path, "plots", c.store.Len())
	return path, nil
}

// writeFileAtomic writes through a temp file in the target directory and renames it over
// path, so a failed write never truncates an earlier export.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// decodeFile picks the decoder from the file extension.
func decodeFile(name string, data []byte) ([]*plot.Plot, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson":
		return plot.DecodeGeoJSON(data)
	default:
		return plot.Decode(data)
	}
}

// Import replaces the store with the contents of a .json or .geojson file. The file is
// parsed first; a malformed file leaves everything as it was.
func (c *Controller) Import(name string, data []byte) error {
	plots, err := decodeFile(name, data)
	if err != nil {
		c.log.Warn("import rejected", "file", name, "err", err)
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	c.replace(plots)
	c.maps.FitAll(c.cfg.FocusDuration)
	c.log.Info("imported", "file", name, "plots", len(plots))
	return nil
}

// LoadInitial installs the startup data file. A missing or broken file is only a warning:
// the editor starts with an empty store.
func (c *Controller) LoadInitial(name string, data []byte, readErr error) error {
	if readErr != nil {
		c.log.Warn("initial data unavailable, starting empty", "file", name, "err", readErr)
		return readErr
	}
	plots, err := decodeFile(name, data)
	if err != nil {
		c.log.Warn("initial data unreadable, starting empty", "file", name, "err", err)
		return err
	}
	c.replace(plots)
	c.log.Info("loaded", "file", name, "plots", len(plots))
	return nil
}

func (c *Controller) replace(plots []*plot.Plot) {
	if c.selected != nil {
		c.maps.StopEditing(c.selected)
	}
	c.maps.RemoveAll()
	c.selected = nil
	c.form.Reset()
	c.store.Load(plots)
	c.maps.RenderAll(c.store.All())
	c.cards.Render(c.store.All(), nil)
}
