package mapview

// dot bit for micro position (rx, ry) inside a braille cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel and returns the cell it landed in, or ok=false when clipped.
func (b *brailleBuf) setPixel(mx, my int) (cx, cy int, ok bool) {
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	cx, cy = mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return 0, 0, false
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
	return cx, cy, true
}

// line walks Bresenham from (x0,y0) to (x1,y1) calling plot on every micro-pixel.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) glyph(cx, cy int) rune {
	if b.m[cy][cx] == 0 {
		return ' '
	}
	return rune(0x2800 + int(b.m[cy][cx]))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
