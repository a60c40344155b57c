package geom

import "math"

// PointInRing tests x/y against the ring with the even-odd rule.
func PointInRing(r Ring, x, y float64) bool {
	if len(r) < 3 {
		return false
	}
	in := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if (yi > y) != (yj > y) {
			cx := xi + (y-yi)*(xj-xi)/(yj-yi)
			if x < cx {
				in = !in
			}
		}
		j = i
	}
	return in
}

// NearestVertex returns the index of the vertex closest to x/y and its squared distance.
// It returns -1 for an empty ring.
func NearestVertex(r Ring, x, y float64) (int, float64) {
	best := -1
	bestD := math.Inf(1)
	for i, p := range r {
		dx := p[0] - x
		dy := p[1] - y
		d := dx*dx + dy*dy
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best, bestD
}

// Swap flips the two axes of every point, e.g. (lon, lat) to (lat, lon).
func Swap(r Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = [2]float64{p[1], p[0]}
	}
	return out
}

// Square builds a 4-point ring of half-size d around cx/cy, counter-clockwise from the lower-left.
func Square(cx, cy, d float64) Ring {
	return Ring{
		{cx - d, cy - d},
		{cx + d, cy - d},
		{cx + d, cy + d},
		{cx - d, cy + d},
	}
}
