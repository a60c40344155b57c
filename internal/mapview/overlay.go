package mapview

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"ploteditor/internal/geom"
)

// GroundOverlay is a raster anchored to a geographic box (widget order: X latitude,
// Y longitude). A nil Image renders as an outline only.
type GroundOverlay struct {
	Bounds  geom.BBox
	Image   image.Image
	Opacity float64
	visible bool
}

func NewGroundOverlay(bounds geom.BBox, img image.Image, opacity float64) *GroundOverlay {
	return &GroundOverlay{Bounds: bounds, Image: img, Opacity: opacity, visible: true}
}

// LoadImage decodes a PNG or JPEG plan image.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func (o *GroundOverlay) Visible() bool     { return o.visible }
func (o *GroundOverlay) SetVisible(v bool) { o.visible = v }

var shades = []rune{' ', '░', '▒', '▓'}

// paint draws the overlay into cells. Each covered cell gets a shade proportional to how
// dark the scaled image is there, weighted by opacity.
func (o *GroundOverlay) paint(m *Map, g *grid) {
	if !o.visible {
		return
	}
	x0m, y0m := m.Project(o.Bounds.MaxX, o.Bounds.MinY)
	x1m, y1m := m.Project(o.Bounds.MinX, o.Bounds.MaxY)
	x0, y0 := floorDiv(x0m, 2), floorDiv(y0m, 4)
	x1, y1 := floorDiv(x1m, 2), floorDiv(y1m, 4)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	full := image.Rect(x0, y0, x1+1, y1+1)
	vis := full.Intersect(image.Rect(0, 0, g.w, g.h))
	if vis.Empty() {
		return
	}
	if o.Image == nil {
		o.outline(full, vis, g)
		return
	}
	src := o.Image.Bounds()
	fx := float64(src.Dx()) / float64(full.Dx())
	fy := float64(src.Dy()) / float64(full.Dy())
	sr := image.Rect(
		src.Min.X+int(float64(vis.Min.X-full.Min.X)*fx),
		src.Min.Y+int(float64(vis.Min.Y-full.Min.Y)*fy),
		src.Min.X+int(float64(vis.Max.X-full.Min.X)*fx),
		src.Min.Y+int(float64(vis.Max.Y-full.Min.Y)*fy),
	)
	if sr.Empty() {
		return
	}
	dst := image.NewGray(image.Rect(0, 0, vis.Dx(), vis.Dy()))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), o.Image, sr, draw.Src, nil)
	for y := 0; y < vis.Dy(); y++ {
		for x := 0; x < vis.Dx(); x++ {
			dark := (255 - float64(dst.GrayAt(x, y).Y)) / 255 * o.Opacity
			idx := int(dark * float64(len(shades)))
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			if idx == 0 {
				continue
			}
			g.set(vis.Min.X+x, vis.Min.Y+y, shades[idx], overlayColor)
		}
	}
}

func (o *GroundOverlay) outline(full, vis image.Rectangle, g *grid) {
	for x := vis.Min.X; x < vis.Max.X; x++ {
		if full.Min.Y >= vis.Min.Y {
			g.set(x, full.Min.Y, '·', overlayColor)
		}
		if full.Max.Y-1 < vis.Max.Y {
			g.set(x, full.Max.Y-1, '·', overlayColor)
		}
	}
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		if full.Min.X >= vis.Min.X {
			g.set(full.Min.X, y, '·', overlayColor)
		}
		if full.Max.X-1 < vis.Max.X {
			g.set(full.Max.X-1, y, '·', overlayColor)
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
