// Package plot holds the land-plot record and its in-memory store.
package plot

import (
	"strconv"
	"strings"

	"ploteditor/internal/geom"
	"ploteditor/internal/style"
)

// Coord is a (lon, lat) pair, the storage axis order.
type Coord = [2]float64

type Plot struct {
	ID                 string
	Name               string
	Status             string
	Area               string
	AreaValue          *float64
	Price              string
	PriceValue         *float64
	VRI                string
	Purpose            string
	ProjectDescription string
	Comment            string
	Zone               string
	Coords             []Coord
}

// Blank returns a new record with default name and status.
func Blank(id string, coords []Coord) *Plot {
	return &Plot{
		ID:     id,
		Name:   "Участок №" + id,
		Status: style.DefaultStatus,
		Coords: coords,
	}
}

// Drawable reports whether the record has enough points for a polygon.
func (p *Plot) Drawable() bool { return len(p.Coords) >= 3 }

// Ring returns the coords as a geometry ring in lon/lat order.
func (p *Plot) Ring() geom.Ring { return geom.Ring(p.Coords) }

// NumericID parses the leading integer of an id the way a browser parseInt does:
// leading spaces and an optional sign are accepted, trailing garbage is ignored.
func NumericID(id string) (int, bool) {
	s := strings.TrimSpace(id)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
