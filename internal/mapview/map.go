// Package mapview is a terminal map canvas: a lat/lon viewport with polygon shapes, a vertex
// editor, and a ground overlay, rendered with braille micro-pixels.
package mapview

import (
	"math"
	"sort"
	"time"

	"ploteditor/internal/geom"
)

const (
	MinZoom = 2.0
	MaxZoom = 21.0

	// degrees of longitude covered by one micro-pixel at zoom 0
	lonPerMicroZ0 = 360.0 / 256.0 * 4
	// share of the viewport a fitted bbox may occupy
	fitMargin = 0.85
)

type view struct {
	lat, lon, zoom float64
}

type animation struct {
	from, to view
	start    time.Time
	dur      time.Duration
}

// Map is the viewport plus everything drawn on it. Cell sizes are terminal cells; micro
// coordinates are 2x4 braille dots per cell.
type Map struct {
	v       view
	w, h    int
	shapes  []*Shape
	overlay *GroundOverlay
	anim    *animation
	now     func() time.Time
}

// New centres the map on lat/lon at the given zoom.
func New(lat, lon, zoom float64) *Map {
	return &Map{v: view{lat: lat, lon: lon, zoom: clampZoom(zoom)}, w: 80, h: 24, now: time.Now}
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// SetSize records the viewport size in cells.
func (m *Map) SetSize(w, h int) {
	m.w, m.h = max(1, w), max(1, h)
}

func (m *Map) Size() (int, int) { return m.w, m.h }

func (m *Map) Center() (lat, lon float64) { return m.v.lat, m.v.lon }

func (m *Map) SetCenter(lat, lon float64) {
	m.anim = nil
	m.v.lat, m.v.lon = lat, lon
}

func (m *Map) Zoom() float64 { return m.v.zoom }

func (m *Map) SetZoom(z float64) {
	m.anim = nil
	m.v.zoom = clampZoom(z)
}

func (m *Map) ZoomBy(delta float64) { m.SetZoom(m.v.zoom + delta) }

// Pan shifts the view by whole cells.
func (m *Map) Pan(dx, dy int) {
	m.anim = nil
	lonPer, latPer := m.v.degPerMicro()
	m.v.lon += float64(dx*2) * lonPer
	m.v.lat -= float64(dy*4) * latPer
}

func (v view) degPerMicro() (lonPer, latPer float64) {
	lonPer = lonPerMicroZ0 / math.Exp2(v.zoom)
	latPer = lonPer * math.Cos(v.lat*math.Pi/180)
	if latPer < 1e-12 {
		latPer = 1e-12
	}
	return lonPer, latPer
}

// DegreesPerCell is the lat/lon span of one terminal cell at the current view.
func (m *Map) DegreesPerCell() (dLat, dLon float64) {
	lonPer, latPer := m.v.degPerMicro()
	return latPer * 4, lonPer * 2
}

// Project maps lat/lon to micro coordinates.
func (m *Map) Project(lat, lon float64) (int, int) {
	lonPer, latPer := m.v.degPerMicro()
	mx := (lon-m.v.lon)/lonPer + float64(m.w*2)/2
	my := (m.v.lat-lat)/latPer + float64(m.h*4)/2
	return int(math.Floor(mx)), int(math.Floor(my))
}

// Unproject maps micro coordinates to lat/lon.
func (m *Map) Unproject(mx, my int) (lat, lon float64) {
	lonPer, latPer := m.v.degPerMicro()
	lon = m.v.lon + (float64(mx)+0.5-float64(m.w*2)/2)*lonPer
	lat = m.v.lat - (float64(my)+0.5-float64(m.h*4)/2)*latPer
	return lat, lon
}

// CellToLatLon returns the geographic centre of a terminal cell.
func (m *Map) CellToLatLon(cx, cy int) (lat, lon float64) {
	lonPer, latPer := m.v.degPerMicro()
	lon = m.v.lon + (float64(cx*2)+1-float64(m.w*2)/2)*lonPer
	lat = m.v.lat - (float64(cy*4)+2-float64(m.h*4)/2)*latPer
	return lat, lon
}

// SetBounds fits the view to b (widget order: X latitude, Y longitude), animating over d.
func (m *Map) SetBounds(b geom.BBox, d time.Duration) {
	target := m.fit(b)
	if d <= 0 {
		m.anim = nil
		m.v = target
		return
	}
	m.anim = &animation{from: m.v, to: target, start: m.now(), dur: d}
}

func (m *Map) fit(b geom.BBox) view {
	lat, lon := b.Center()
	z := MaxZoom
	cos := math.Max(math.Cos(lat*math.Pi/180), 1e-6)
	if span := b.Height(); span > 0 {
		z = math.Min(z, math.Log2(lonPerMicroZ0*float64(m.w*2)*fitMargin/span))
	}
	if span := b.Width(); span > 0 {
		z = math.Min(z, math.Log2(lonPerMicroZ0*cos*float64(m.h*4)*fitMargin/span))
	}
	return view{lat: lat, lon: lon, zoom: clampZoom(z)}
}

func (m *Map) Animating() bool { return m.anim != nil }

// Step advances a running animation to now and reports whether it is still running.
func (m *Map) Step(now time.Time) bool {
	a := m.anim
	if a == nil {
		return false
	}
	t := float64(now.Sub(a.start)) / float64(a.dur)
	if t >= 1 {
		m.v = a.to
		m.anim = nil
		return false
	}
	if t < 0 {
		t = 0
	}
	// ease-out
	t = 1 - (1-t)*(1-t)
	m.v = view{
		lat:  a.from.lat + (a.to.lat-a.from.lat)*t,
		lon:  a.from.lon + (a.to.lon-a.from.lon)*t,
		zoom: a.from.zoom + (a.to.zoom-a.from.zoom)*t,
	}
	return true
}

// Add attaches s to the map. Adding an attached shape is a no-op.
func (m *Map) Add(s *Shape) {
	if s.m == m {
		return
	}
	if s.m != nil {
		s.m.Remove(s)
	}
	s.m = m
	m.shapes = append(m.shapes, s)
}

// Remove detaches s, ending any edit session on it.
func (m *Map) Remove(s *Shape) bool {
	for i, q := range m.shapes {
		if q == s {
			m.shapes = append(m.shapes[:i:i], m.shapes[i+1:]...)
			s.editor.StopEditing()
			s.m = nil
			return true
		}
	}
	return false
}

// Shapes returns attached shapes in paint order (ZIndex, then insertion).
func (m *Map) Shapes() []*Shape {
	out := append([]*Shape(nil), m.shapes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].opts.ZIndex < out[j].opts.ZIndex })
	return out
}

// ShapeAt returns the topmost shape containing lat/lon.
func (m *Map) ShapeAt(lat, lon float64) *Shape {
	shapes := m.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Contains(lat, lon) {
			return shapes[i]
		}
	}
	return nil
}

// Click dispatches to the click handler of the topmost shape under lat/lon.
func (m *Map) Click(lat, lon float64) bool {
	s := m.ShapeAt(lat, lon)
	if s == nil || s.onClick == nil {
		return false
	}
	s.onClick()
	return true
}

func (m *Map) SetOverlay(o *GroundOverlay) { m.overlay = o }
func (m *Map) Overlay() *GroundOverlay     { return m.overlay }
