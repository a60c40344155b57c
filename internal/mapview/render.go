package mapview

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ploteditor/internal/style"
)

const (
	overlayColor      = "#4B5563"
	activeVertexColor = "#FFA500"
)

type cell struct {
	r     rune
	color string
}

type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int) *grid {
	c := make([][]cell, h)
	for y := range c {
		c[y] = make([]cell, w)
		for x := range c[y] {
			c[y][x].r = ' '
		}
	}
	return &grid{w: w, h: h, cells: c}
}

func (g *grid) set(x, y int, r rune, color string) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y][x] = cell{r: r, color: color}
}

// Render draws the overlay, then every shape in paint order, then vertex markers of shapes
// being edited. The output is exactly h lines of w cells.
func (m *Map) Render() string { return m.paint().String() }

// Plain is Render without colors, one string per row.
func (m *Map) Plain() []string { return m.paint().plain() }

func (m *Map) paint() *grid {
	g := newGrid(m.w, m.h)
	if m.overlay != nil {
		m.overlay.paint(m, g)
	}
	shapes := m.Shapes()
	for _, s := range shapes {
		m.paintShape(s, g)
	}
	for _, s := range shapes {
		if s.editor.state != Idle {
			m.paintVertices(s, g)
		}
	}
	return g
}

func (m *Map) paintShape(s *Shape, g *grid) {
	if len(s.ring) == 0 {
		return
	}
	pts := make([][2]int, len(s.ring))
	for i, p := range s.ring {
		x, y := m.Project(p[0], p[1])
		pts[i] = [2]int{x, y}
	}
	wMic, hMic := g.w*2, g.h*4
	fill := style.RGB(s.opts.FillColor)
	stroke := style.RGB(s.opts.StrokeColor)

	// fill: even-odd scanlines on a checkerboard so the overlay shows through
	if len(pts) >= 3 {
		bb := newBrailleBuf(g.w, g.h)
		for y := 0; y < hMic; y++ {
			var xs []int
			for i := range pts {
				a, b := pts[i], pts[(i+1)%len(pts)]
				if a[1] == b[1] {
					continue
				}
				if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
					t := float64(y-a[1]) / float64(b[1]-a[1])
					xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
				}
			}
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				for x := max(0, xs[i]); x <= min(xs[i+1], wMic-1); x++ {
					if (x+y)%2 == 0 {
						bb.setPixel(x, y)
					}
				}
			}
		}
		m.blit(bb, g, fill)
	}

	// edges; a shape still being drawn is an open polyline
	eb := newBrailleBuf(g.w, g.h)
	n := len(pts)
	segs := n
	if s.editor.state == Drawing || n < 3 {
		segs = n - 1
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		if offscreen(a, b, wMic, hMic) {
			continue
		}
		line(a[0], a[1], b[0], b[1], func(x, y int) { eb.setPixel(x, y) })
	}
	if n == 1 {
		eb.setPixel(pts[0][0], pts[0][1])
	}
	m.blit(eb, g, stroke)
}

// offscreen reports whether a segment lies entirely on one outer side of the viewport.
func offscreen(a, b [2]int, w, h int) bool {
	return (a[0] < 0 && b[0] < 0) || (a[1] < 0 && b[1] < 0) ||
		(a[0] >= w && b[0] >= w) || (a[1] >= h && b[1] >= h)
}

func (m *Map) blit(b *brailleBuf, g *grid, color string) {
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.m[y][x] != 0 {
				g.set(x, y, b.glyph(x, y), color)
			}
		}
	}
}

func (m *Map) paintVertices(s *Shape, g *grid) {
	stroke := style.RGB(s.opts.StrokeColor)
	for i, p := range s.ring {
		mx, my := m.Project(p[0], p[1])
		if mx < 0 || my < 0 {
			continue
		}
		if i == s.editor.active {
			g.set(mx/2, my/4, '◉', activeVertexColor)
		} else {
			g.set(mx/2, my/4, '●', stroke)
		}
	}
}

// String renders the grid, grouping runs of equal color into one styled span.
func (g *grid) String() string {
	lines := make([]string, g.h)
	var b strings.Builder
	for y, row := range g.cells {
		b.Reset()
		for x := 0; x < len(row); {
			color := row[x].color
			var run []rune
			for x < len(row) && row[x].color == color {
				run = append(run, row[x].r)
				x++
			}
			if color == "" {
				b.WriteString(string(run))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(run)))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (g *grid) plain() []string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.r
		}
		lines[y] = string(rs)
	}
	return lines
}
