package mapview

import (
	"errors"

	"ploteditor/internal/geom"
)

// EditState is the vertex-editing mode of a shape.
type EditState int

const (
	Idle EditState = iota
	Drawing
	Editing
)

func (s EditState) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case Editing:
		return "editing"
	}
	return "idle"
}

var ErrNotEditable = errors.New("shape is not on a map")

// Editor drives direct vertex manipulation of one shape.
//
//	Idle --StartEditing--> Editing --StopEditing--> Idle
//	Idle/Editing --StartDrawing--> Drawing --StartEditing--> Editing
//	Drawing --StopEditing--> Idle
type Editor struct {
	s        *Shape
	state    EditState
	active   int
	dragging bool
}

func (e *Editor) State() EditState { return e.state }

// StartEditing enters Editing. It is a no-op when already editing.
func (e *Editor) StartEditing() error {
	if !e.s.CanEdit() {
		return ErrNotEditable
	}
	if e.state == Editing {
		return nil
	}
	e.state = Editing
	if e.active < 0 && len(e.s.ring) > 0 {
		e.active = 0
	}
	e.clampActive()
	return nil
}

// StartDrawing clears the vertices; subsequent Append calls lay down a new ring.
func (e *Editor) StartDrawing() error {
	if !e.s.CanEdit() {
		return ErrNotEditable
	}
	e.s.ring = nil
	e.state = Drawing
	e.active = -1
	e.dragging = false
	return nil
}

// StopEditing returns to Idle; safe to call in any state.
func (e *Editor) StopEditing() {
	e.state = Idle
	e.dragging = false
}

// Active is the index of the vertex under keyboard control, or -1.
func (e *Editor) Active() int { return e.active }

func (e *Editor) clampActive() {
	n := len(e.s.ring)
	switch {
	case n == 0:
		e.active = -1
	case e.active >= n:
		e.active = n - 1
	}
}

// Step moves the active vertex cursor by delta, wrapping around the ring.
func (e *Editor) Step(delta int) {
	n := len(e.s.ring)
	if e.state != Editing || n == 0 {
		return
	}
	e.active = ((e.active+delta)%n + n) % n
}

// Nudge moves the active vertex by dLat/dLon degrees.
func (e *Editor) Nudge(dLat, dLon float64) bool {
	if e.state != Editing || e.active < 0 {
		return false
	}
	e.s.ring[e.active][0] += dLat
	e.s.ring[e.active][1] += dLon
	return true
}

// Insert adds a vertex at the midpoint between the active vertex and its successor and
// makes it active.
func (e *Editor) Insert() bool {
	n := len(e.s.ring)
	if e.state != Editing || e.active < 0 || n == 0 {
		return false
	}
	a := e.s.ring[e.active]
	b := e.s.ring[(e.active+1)%n]
	mid := [2]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
	r := make(geom.Ring, 0, n+1)
	r = append(r, e.s.ring[:e.active+1]...)
	r = append(r, mid)
	r = append(r, e.s.ring[e.active+1:]...)
	e.s.ring = r
	e.active++
	return true
}

// Delete removes the active vertex. The ring may drop below three points; saving rejects it.
func (e *Editor) Delete() bool {
	if e.state != Editing || e.active < 0 {
		return false
	}
	e.s.ring = append(e.s.ring[:e.active:e.active], e.s.ring[e.active+1:]...)
	e.clampActive()
	return true
}

// Append adds a vertex while drawing.
func (e *Editor) Append(lat, lon float64) bool {
	if e.state != Drawing {
		return false
	}
	e.s.ring = append(e.s.ring, [2]float64{lat, lon})
	e.active = len(e.s.ring) - 1
	return true
}

// Grab starts dragging the vertex nearest to lat/lon if it lies within tol degrees.
func (e *Editor) Grab(lat, lon, tol float64) bool {
	if e.state != Editing {
		return false
	}
	i, d := geom.NearestVertex(e.s.ring, lat, lon)
	if i < 0 || d > tol*tol {
		return false
	}
	e.active = i
	e.dragging = true
	return true
}

func (e *Editor) Dragging() bool { return e.dragging }

// Drag moves the grabbed vertex to lat/lon.
func (e *Editor) Drag(lat, lon float64) bool {
	if !e.dragging || e.active < 0 {
		return false
	}
	e.s.ring[e.active] = [2]float64{lat, lon}
	return true
}

func (e *Editor) Release() { e.dragging = false }
