package geom

// BBox is an axis-aligned box in X/Y order. Callers decide whether X is lon or lat.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Ring is an open polygon ring; the last point need not repeat the first.
type Ring [][2]float64

// Bounds returns the bbox of a ring and false when the ring is empty.
func Bounds(r Ring) (BBox, bool) {
	if len(r) == 0 {
		return BBox{}, false
	}
	bb := BBox{MinX: r[0][0], MinY: r[0][1], MaxX: r[0][0], MaxY: r[0][1]}
	for _, p := range r[1:] {
		bb = bb.Extend(p[0], p[1])
	}
	return bb, true
}

// Extend grows the box to include x/y.
func (b BBox) Extend(x, y float64) BBox {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

// Union returns the smallest box containing both.
func (b BBox) Union(o BBox) BBox {
	return b.Extend(o.MinX, o.MinY).Extend(o.MaxX, o.MaxY)
}

func (b BBox) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether x/y lies inside or on the box.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}
