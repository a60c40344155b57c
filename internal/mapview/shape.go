package mapview

import "ploteditor/internal/geom"

// Options are the paint settings of a shape.
type Options struct {
	FillColor   string
	StrokeColor string
	StrokeWidth int
	ZIndex      int
}

// Shape is a polygon in widget axis order (lat, lon).
type Shape struct {
	ring    geom.Ring
	opts    Options
	Hint    string
	onClick func()

	m      *Map
	editor *Editor
}

func NewPolygon(ring geom.Ring, hint string, opts Options) *Shape {
	s := &Shape{ring: append(geom.Ring(nil), ring...), Hint: hint, opts: opts}
	s.editor = &Editor{s: s, active: -1}
	return s
}

// Coordinates returns a copy of the vertex list in (lat, lon) order.
func (s *Shape) Coordinates() geom.Ring {
	return append(geom.Ring(nil), s.ring...)
}

func (s *Shape) SetCoordinates(r geom.Ring) {
	s.ring = append(geom.Ring(nil), r...)
	s.editor.clampActive()
}

func (s *Shape) Options() Options     { return s.opts }
func (s *Shape) SetOptions(o Options) { s.opts = o }

// OnClick replaces the click handler.
func (s *Shape) OnClick(fn func()) { s.onClick = fn }

// Bounds are in widget order: X is latitude, Y is longitude.
func (s *Shape) Bounds() (geom.BBox, bool) { return geom.Bounds(s.ring) }

// Contains hit-tests a point given in widget order.
func (s *Shape) Contains(lat, lon float64) bool { return geom.PointInRing(s.ring, lat, lon) }

// CanEdit reports whether vertex editing is available right now: only shapes on a map can
// be edited.
func (s *Shape) CanEdit() bool { return s.m != nil }

func (s *Shape) Editor() *Editor { return s.editor }
