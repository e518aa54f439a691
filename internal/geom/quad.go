// Package geom holds the pure quad math behind the try-on editor: bilinear
// interpolation, rigid transforms about a centre, and hit-testing.
package geom

import "math"

// Point is a position in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Corner names one of the four quad corners. The order is fixed and
// clockwise on screen.
type Corner int

const (
	CornerTL Corner = iota
	CornerTR
	CornerBR
	CornerBL
)

// Corners lists every corner in storage order.
var Corners = [4]Corner{CornerTL, CornerTR, CornerBR, CornerBL}

func (c Corner) String() string {
	switch c {
	case CornerTL:
		return "TL"
	case CornerTR:
		return "TR"
	case CornerBR:
		return "BR"
	case CornerBL:
		return "BL"
	}
	return "?"
}

// Quad is an arbitrary quadrilateral. The corners need not form a
// rectangle, parallelogram or even a convex shape.
type Quad struct {
	TL Point `json:"tl"`
	TR Point `json:"tr"`
	BR Point `json:"br"`
	BL Point `json:"bl"`
}

// Rect returns an axis-aligned quad with its top-left corner at (x, y).
func Rect(x, y, w, h float64) Quad {
	return Quad{
		TL: Pt(x, y),
		TR: Pt(x+w, y),
		BR: Pt(x+w, y+h),
		BL: Pt(x, y+h),
	}
}

// Corner returns the position of corner c.
func (q Quad) Corner(c Corner) Point {
	switch c {
	case CornerTR:
		return q.TR
	case CornerBR:
		return q.BR
	case CornerBL:
		return q.BL
	}
	return q.TL
}

// WithCorner returns a copy of q with corner c moved to p.
func (q Quad) WithCorner(c Corner, p Point) Quad {
	switch c {
	case CornerTL:
		q.TL = p
	case CornerTR:
		q.TR = p
	case CornerBR:
		q.BR = p
	case CornerBL:
		q.BL = p
	}
	return q
}

// Points returns the corners in TL, TR, BR, BL order, ready to be used as a
// closed path.
func (q Quad) Points() []Point {
	return []Point{q.TL, q.TR, q.BR, q.BL}
}

// Bounds returns the axis-aligned bounding box as min and max points.
func (q Quad) Bounds() (Point, Point) {
	lo := q.TL
	hi := q.TL
	for _, p := range []Point{q.TR, q.BR, q.BL} {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Area returns the absolute shoelace area of the TL-TR-BR-BL polygon.
func (q Quad) Area() float64 {
	pts := q.Points()
	sum := 0.0
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Interpolate maps (u, v) in the unit square onto q by bilinear blending:
// top = lerp(TL, TR, u), bottom = lerp(BL, BR, u), result = lerp(top, bottom, v).
func Interpolate(q Quad, u, v float64) Point {
	top := lerp(q.TL, q.TR, u)
	bottom := lerp(q.BL, q.BR, u)
	return lerp(top, bottom, v)
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Centroid returns the mean of the four corners.
func Centroid(q Quad) Point {
	return Point{
		X: (q.TL.X + q.TR.X + q.BR.X + q.BL.X) / 4,
		Y: (q.TL.Y + q.TR.Y + q.BR.Y + q.BL.Y) / 4,
	}
}

// Translate moves every corner by (dx, dy).
func Translate(q Quad, dx, dy float64) Quad {
	d := Pt(dx, dy)
	return Quad{TL: q.TL.Add(d), TR: q.TR.Add(d), BR: q.BR.Add(d), BL: q.BL.Add(d)}
}

// ScaleAbout scales every corner's offset from c by factor.
func ScaleAbout(q Quad, c Point, factor float64) Quad {
	return q.mapCorners(func(p Point) Point {
		return Point{X: c.X + (p.X-c.X)*factor, Y: c.Y + (p.Y-c.Y)*factor}
	})
}

// RotateAbout rotates every corner about c. Positive degrees turn clockwise
// on screen because the y axis points down.
func RotateAbout(q Quad, c Point, degrees float64) Quad {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return q.mapCorners(func(p Point) Point {
		dx := p.X - c.X
		dy := p.Y - c.Y
		return Point{X: c.X + dx*cos - dy*sin, Y: c.Y + dx*sin + dy*cos}
	})
}

func (q Quad) mapCorners(f func(Point) Point) Quad {
	return Quad{TL: f(q.TL), TR: f(q.TR), BR: f(q.BR), BL: f(q.BL)}
}

// HitTestCorner returns the corner nearest to p when p lies within radius of
// it. Ties go to the earlier corner in storage order.
func HitTestCorner(q Quad, p Point, radius float64) (Corner, bool) {
	best := CornerTL
	bestDist := math.Inf(1)
	for _, c := range Corners {
		d := q.Corner(c).Distance(p)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	if bestDist <= radius {
		return best, true
	}
	return CornerTL, false
}

// PointInQuad reports whether p lies in triangle TL-TR-BR or TL-BR-BL.
// Points on an edge count as inside.
func PointInQuad(p Point, q Quad) bool {
	return inTriangle(p, q.TL, q.TR, q.BR) || inTriangle(p, q.TL, q.BR, q.BL)
}

func inTriangle(p, a, b, c Point) bool {
	const eps = 1e-9
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	if math.Abs(cross(a, b, c)) < eps {
		return false
	}
	hasNeg := d1 < -eps || d2 < -eps || d3 < -eps
	hasPos := d1 > eps || d2 > eps || d3 > eps
	return !(hasNeg && hasPos)
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// IsSimple reports whether the quad's edges only meet at shared corners.
// Dragging a corner across the opposite edge produces a bow-tie, which the
// renderer still draws but looks folded.
func IsSimple(q Quad) bool {
	pts := q.Points()
	// Only opposite edges can cross in a four sided polygon.
	return !segmentsCross(pts[0], pts[1], pts[2], pts[3]) &&
		!segmentsCross(pts[1], pts[2], pts[3], pts[0])
}

func segmentsCross(a, b, c, d Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
