// Package editor ties the plot store, the map and the side panels together. Every mutating
// operation runs on the UI goroutine; nothing here is safe for concurrent use.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ploteditor/internal/geom"
	"ploteditor/internal/mapview"
	"ploteditor/internal/plot"
	"ploteditor/internal/style"
)

var (
	ErrNoSelection     = errors.New("no plot selected")
	ErrTooFewPoints    = errors.New("a plot needs at least 3 points")
	ErrNotConfirmed    = errors.New("not confirmed")
	ErrMalformedImport = errors.New("malformed import file")
)

// FormBinder mirrors the selected plot into editable fields and back.
type FormBinder interface {
	Fill(p *plot.Plot)
	Read(p *plot.Plot)
	Reset()
}

// CardRenderer shows one summary card per plot.
type CardRenderer interface {
	Render(plots []*plot.Plot, selected *plot.Plot)
	Highlight(p *plot.Plot)
}

type Settings struct {
	ExportDir     string
	FocusDuration time.Duration
	NewPlotSize   float64 // half side of a new plot's square, in degrees
	DefaultStatus string
}

func DefaultSettings() Settings {
	return Settings{
		ExportDir:     ".",
		FocusDuration: 200 * time.Millisecond,
		NewPlotSize:   0.0002,
		DefaultStatus: style.DefaultStatus,
	}
}

// Controller owns the selection and coordinates store, map, form and cards.
type Controller struct {
	store    *plot.Store
	maps     *MapAdapter
	form     FormBinder
	cards    CardRenderer
	cfg      Settings
	log      *slog.Logger
	selected *plot.Plot
}

func New(m *mapview.Map, form FormBinder, cards CardRenderer, cfg Settings, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{form: form, cards: cards, cfg: cfg, log: log}
	c.maps = NewMapAdapter(m, log)
	c.maps.OnClick(func(p *plot.Plot) { c.Select(p, true) })
	c.store = plot.NewStore(plot.WithDiscard(c.maps.Remove))
	return c
}

func (c *Controller) Maps() *MapAdapter { return c.maps }

func (c *Controller) Selected() *plot.Plot { return c.selected }

// Plots returns the store snapshot in insertion order.
func (c *Controller) Plots() []*plot.Plot { return c.store.All() }

// EditState reports the edit mode of the selected plot.
func (c *Controller) EditState() mapview.EditState {
	if c.selected == nil {
		return mapview.Idle
	}
	return c.maps.EditState(c.selected)
}

// Select makes p the edited plot: the previous one is repainted and leaves edit mode, the
// form and cards follow, and the map optionally flies to p.
func (c *Controller) Select(p *plot.Plot, recenter bool) {
	if p == nil {
		return
	}
	// a card or table row can outlive its plot across an import
	if !c.store.Contains(p) {
		c.log.Warn("select ignored, plot not in store", "plot", p.ID)
		return
	}
	if prev := c.selected; prev != nil && prev != p {
		c.maps.ApplyStyle(prev, style.Colors(prev.Status))
		c.maps.StopEditing(prev)
	}
	c.selected = p
	c.cards.Highlight(p)
	c.maps.ApplyStyle(p, style.SelectedColors(p.Status))
	if c.maps.EditState(p) != mapview.Drawing {
		c.maps.StartEditing(p)
	}
	c.form.Fill(p)
	if recenter {
		c.maps.Focus(p, c.cfg.FocusDuration)
	}
}

// Deselect clears the selection and blanks the form.
func (c *Controller) Deselect() {
	if p := c.selected; p != nil {
		c.maps.StopEditing(p)
		c.maps.ApplyStyle(p, style.Colors(p.Status))
	}
	c.selected = nil
	c.form.Reset()
	c.cards.Highlight(nil)
}

// Save commits the live geometry and the form into the selected plot.
func (c *Controller) Save() error {
	p := c.selected
	if p == nil {
		c.log.Warn("save without selection")
		return ErrNoSelection
	}
	if err := c.maps.PullGeometry(p); err != nil {
		return err
	}
	c.form.Read(p)
	// still selected, so keep the highlight variant of the new status
	c.maps.ApplyStyle(p, style.SelectedColors(p.Status))
	c.cards.Render(c.store.All(), p)
	c.log.Info("plot saved", "plot", p.ID, "points", len(p.Coords))
	return nil
}

// Delete removes the selected plot once the user has confirmed.
func (c *Controller) Delete(confirmed bool) error {
	p := c.selected
	if p == nil {
		return ErrNoSelection
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	c.maps.Remove(p)
	c.store.Remove(p)
	c.selected = nil
	c.form.Reset()
	c.cards.Render(c.store.All(), nil)
	c.log.Info("plot deleted", "plot", p.ID)
	return nil
}

// CreateNew adds a blank plot with a small square around the map centre and selects it.
func (c *Controller) CreateNew() *plot.Plot {
	if c.selected != nil {
		c.maps.StopEditing(c.selected)
	}
	lat, lon := c.maps.Map().Center()
	coords := toStore(geom.Square(lat, lon, c.cfg.NewPlotSize))

	p := plot.Blank(c.store.NextID(), coords)
	if c.cfg.DefaultStatus != "" {
		p.Status = c.cfg.DefaultStatus
	}
	c.store.Add(p)
	c.maps.Add(p)
	c.cards.Render(c.store.All(), p)
	c.Select(p, true)
	c.log.Info("plot created", "plot", p.ID)
	return p
}

// RedrawSelected wipes the selected plot's vertices; map clicks then append new ones.
func (c *Controller) RedrawSelected() error {
	if c.selected == nil {
		return ErrNoSelection
	}
	if !c.maps.StartDrawing(c.selected) {
		return mapview.ErrNotEditable
	}
	return nil
}

// FinishDrawing switches a drawing session to vertex editing.
func (c *Controller) FinishDrawing() error {
	p := c.selected
	if p == nil {
		return ErrNoSelection
	}
	if c.maps.EditState(p) != mapview.Drawing {
		return nil
	}
	s := c.maps.Shape(p)
	if len(s.Coordinates()) < minRingPoint {
		return ErrTooFewPoints
	}
	c.maps.StartEditing(p)
	return nil
}

// Click handles a map click at lat/lon: it appends a vertex while drawing and otherwise
// selects the topmost plot there.
func (c *Controller) Click(lat, lon float64) bool {
	if p := c.selected; p != nil && c.maps.EditState(p) == mapview.Drawing {
		return c.maps.Shape(p).Editor().Append(lat, lon)
	}
	return c.maps.Map().Click(lat, lon)
}

// ReplaceGeometry loads a WKT polygon (x lon, y lat) into the selected plot's shape. The
// record itself changes on the next save.
func (c *Controller) ReplaceGeometry(wkt string) error {
	p := c.selected
	if p == nil {
		return ErrNoSelection
	}
	ring, err := geom.ParsePolygon(wkt)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	c.maps.SetGeometry(p, []plot.Coord(ring))
	c.maps.ApplyStyle(p, style.SelectedColors(p.Status))
	c.maps.StartEditing(p)
	return nil
}

// SelectedWKT formats the live geometry of the selected plot as a WKT polygon.
func (c *Controller) SelectedWKT() (string, error) {
	p := c.selected
	if p == nil {
		return "", ErrNoSelection
	}
	coords := p.Coords
	if s := c.maps.Shape(p); s != nil {
		coords = toStore(s.Coordinates())
	}
	if len(coords) < minRingPoint {
		return "", ErrTooFewPoints
	}
	return geom.FormatPolygon(geom.Ring(coords)), nil
}
