package render

import (
	"image/color"
	"math"

	"github.com/example/tryon/internal/geom"
)

const circleSegments = 24

// circlePath approximates a circle with a regular polygon.
func circlePath(c geom.Point, r float64) []geom.Point {
	pts := make([]geom.Point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		sin, cos := math.Sincos(a)
		pts[i] = geom.Pt(c.X+r*cos, c.Y+r*sin)
	}
	return pts
}

// DrawHandles draws a filled disc on every corner of q.
func DrawHandles(s Surface, q geom.Quad, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	s.Save()
	defer s.Restore()
	s.SetTransform(geom.Identity())
	for _, p := range q.Points() {
		s.FillPath(circlePath(p, radius), c, 0)
	}
}

// DrawDivider draws a vertical bar of the given width centred on x.
func DrawDivider(s Surface, x, width float64, c color.Color) {
	b := s.Bounds()
	s.Save()
	defer s.Restore()
	s.SetTransform(geom.Identity())
	half := width / 2
	top := float64(b.Min.Y)
	bottom := float64(b.Max.Y)
	s.FillPath([]geom.Point{
		geom.Pt(x-half, top),
		geom.Pt(x+half, top),
		geom.Pt(x+half, bottom),
		geom.Pt(x-half, bottom),
	}, c, 0)
}

// QuadOutline strokes the quad's edges with lines of the given width.
func QuadOutline(s Surface, q geom.Quad, width float64, c color.Color) {
	s.Save()
	defer s.Restore()
	s.SetTransform(geom.Identity())
	pts := q.Points()
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if seg := segmentPath(a, b, width); seg != nil {
			s.FillPath(seg, c, 0)
		}
	}
}

func segmentPath(a, b geom.Point, width float64) []geom.Point {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return nil
	}
	nx := -d.Y / l * width / 2
	ny := d.X / l * width / 2
	return []geom.Point{
		geom.Pt(a.X+nx, a.Y+ny),
		geom.Pt(b.X+nx, b.Y+ny),
		geom.Pt(b.X-nx, b.Y-ny),
		geom.Pt(a.X-nx, a.Y-ny),
	}
}
