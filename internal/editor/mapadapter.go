package editor

import (
	"log/slog"
	"time"

	"ploteditor/internal/geom"
	"ploteditor/internal/mapview"
	"ploteditor/internal/plot"
	"ploteditor/internal/style"
)

const (
	shapeZIndex  = 10
	strokeWidth  = 2
	minRingPoint = 3
)

// MapAdapter keeps one map shape per drawable plot. The plot records never see the shapes;
// the side table here is the only link between the two.
type MapAdapter struct {
	m       *mapview.Map
	shapes  map[*plot.Plot]*mapview.Shape
	onClick func(*plot.Plot)
	log     *slog.Logger
}

func NewMapAdapter(m *mapview.Map, log *slog.Logger) *MapAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &MapAdapter{m: m, shapes: make(map[*plot.Plot]*mapview.Shape), log: log}
}

// OnClick sets the handler fired when a plot's shape is clicked on the map.
func (a *MapAdapter) OnClick(fn func(*plot.Plot)) { a.onClick = fn }

func (a *MapAdapter) Map() *mapview.Map { return a.m }

// toWidget converts storage (lon, lat) to widget (lat, lon).
func toWidget(coords []plot.Coord) geom.Ring { return geom.Swap(geom.Ring(coords)) }

// toStore converts widget (lat, lon) back to storage (lon, lat).
func toStore(r geom.Ring) []plot.Coord { return []plot.Coord(geom.Swap(r)) }

func shapeOptions(s style.Style) mapview.Options {
	return mapview.Options{FillColor: s.FillColor, StrokeColor: s.StrokeColor, StrokeWidth: strokeWidth, ZIndex: shapeZIndex}
}

// RenderAll drops every tracked shape and rebuilds one for each drawable plot.
func (a *MapAdapter) RenderAll(plots []*plot.Plot) {
	a.RemoveAll()
	for _, p := range plots {
		a.Add(p)
	}
}

// Add builds and attaches the shape for p, replacing any previous one. Plots with fewer than
// three points get no shape.
func (a *MapAdapter) Add(p *plot.Plot) *mapview.Shape {
	a.Remove(p)
	if !p.Drawable() {
		return nil
	}
	return a.attach(p, toWidget(p.Coords))
}

// attach puts a shape on the map without checking the point count; new plots and redraws
// need a shape before they have three vertices.
func (a *MapAdapter) attach(p *plot.Plot, ring geom.Ring) *mapview.Shape {
	s := mapview.NewPolygon(ring, p.Name, shapeOptions(style.Colors(p.Status)))
	s.OnClick(func() {
		if a.onClick != nil {
			a.onClick(p)
		}
	})
	a.shapes[p] = s
	a.m.Add(s)
	return s
}

// Remove detaches the shape of p, if any.
func (a *MapAdapter) Remove(p *plot.Plot) {
	s, ok := a.shapes[p]
	if !ok {
		return
	}
	a.m.Remove(s)
	delete(a.shapes, p)
}

func (a *MapAdapter) RemoveAll() {
	for p := range a.shapes {
		a.Remove(p)
	}
}

// Shape returns the shape of p, or nil.
func (a *MapAdapter) Shape(p *plot.Plot) *mapview.Shape { return a.shapes[p] }

func (a *MapAdapter) Len() int { return len(a.shapes) }

// ApplyStyle repaints the shape of p in place.
func (a *MapAdapter) ApplyStyle(p *plot.Plot, st style.Style) {
	s := a.shapes[p]
	if s == nil {
		return
	}
	o := s.Options()
	o.FillColor, o.StrokeColor = st.FillColor, st.StrokeColor
	s.SetOptions(o)
	s.Hint = p.Name
}

// StartEditing turns on vertex editing for p and reports whether it is active. Missing
// shapes and shapes off the map are logged, never returned.
func (a *MapAdapter) StartEditing(p *plot.Plot) bool {
	s := a.shapes[p]
	if s == nil || !s.CanEdit() {
		a.log.Warn("edit mode unavailable", "plot", p.ID)
		return false
	}
	if err := s.Editor().StartEditing(); err != nil {
		a.log.Warn("start editing", "plot", p.ID, "err", err)
		return false
	}
	return true
}

// StartDrawing clears the vertices of p's shape so clicks lay down a new ring. A plot with
// no shape yet gets an empty one.
func (a *MapAdapter) StartDrawing(p *plot.Plot) bool {
	s := a.shapes[p]
	if s == nil {
		s = a.attach(p, nil)
	}
	if err := s.Editor().StartDrawing(); err != nil {
		a.log.Warn("start drawing", "plot", p.ID, "err", err)
		return false
	}
	return true
}

// StopEditing ends any edit session on p; safe without one. A drawing left with fewer than
// three vertices falls back to the stored coords, or drops the shape if there are none.
func (a *MapAdapter) StopEditing(p *plot.Plot) {
	s := a.shapes[p]
	if s == nil {
		return
	}
	drawing := s.Editor().State() == mapview.Drawing
	s.Editor().StopEditing()
	if !drawing || len(s.Coordinates()) >= minRingPoint {
		return
	}
	if p.Drawable() {
		s.SetCoordinates(toWidget(p.Coords))
		return
	}
	a.Remove(p)
}

// EditState reports the edit mode of p's shape.
func (a *MapAdapter) EditState(p *plot.Plot) mapview.EditState {
	if s := a.shapes[p]; s != nil {
		return s.Editor().State()
	}
	return mapview.Idle
}

// PullGeometry copies the live vertices of p's shape into p.Coords. Fewer than three
// vertices leave p untouched.
func (a *MapAdapter) PullGeometry(p *plot.Plot) error {
	s := a.shapes[p]
	if s == nil {
		if p.Drawable() {
			return nil
		}
		return ErrTooFewPoints
	}
	ring := s.Coordinates()
	if len(ring) < minRingPoint {
		return ErrTooFewPoints
	}
	p.Coords = toStore(ring)
	return nil
}

// SetGeometry replaces the vertices of p's shape, creating the shape if needed.
func (a *MapAdapter) SetGeometry(p *plot.Plot, coords []plot.Coord) {
	if s := a.shapes[p]; s != nil {
		s.SetCoordinates(toWidget(coords))
		return
	}
	a.attach(p, toWidget(coords))
}

func (a *MapAdapter) SetOverlayVisible(v bool) {
	if o := a.m.Overlay(); o != nil {
		o.SetVisible(v)
	}
}

// ToggleOverlay flips the plan overlay and returns the new visibility.
func (a *MapAdapter) ToggleOverlay() bool {
	o := a.m.Overlay()
	if o == nil {
		return false
	}
	o.SetVisible(!o.Visible())
	return o.Visible()
}

// Focus fits the map to the bounds of p's shape over d.
func (a *MapAdapter) Focus(p *plot.Plot, d time.Duration) bool {
	s := a.shapes[p]
	if s == nil {
		return false
	}
	b, ok := s.Bounds()
	if !ok {
		return false
	}
	a.m.SetBounds(b, d)
	return true
}

// FitAll fits the map to every tracked shape.
func (a *MapAdapter) FitAll(d time.Duration) bool {
	var all geom.BBox
	found := false
	for _, s := range a.shapes {
		b, ok := s.Bounds()
		if !ok {
			continue
		}
		if !found {
			all, found = b, true
			continue
		}
		all = all.Union(b)
	}
	if found {
		a.m.SetBounds(all, d)
	}
	return found
}

// PlotAt returns the plot whose shape is topmost at lat/lon.
func (a *MapAdapter) PlotAt(lat, lon float64) *plot.Plot {
	s := a.m.ShapeAt(lat, lon)
	if s == nil {
		return nil
	}
	for p, q := range a.shapes {
		if q == s {
			return p
		}
	}
	return nil
}
