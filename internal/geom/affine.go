package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform stored as [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
//
// so x' = a*x + c*y + e and y' = b*x + d*y + f.
type Affine [6]float64

// degenerateDet is the smallest triangle determinant AffineFromTriangles
// will solve for.
const degenerateDet = 1e-6

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Translation returns a pure translation.
func Translation(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// Apply maps p through m.
func (m Affine) Apply(p Point) Point {
	return Point{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}

// Multiply returns m * other, which applies other first and m second.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Determinant returns the determinant of the linear part.
func (m Affine) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse transform. ok is false for singular matrices,
// in which case the identity is returned.
func (m Affine) Invert() (Affine, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1 / det
	return Affine{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}, true
}

// Aff3 converts m into the row-major layout used by golang.org/x/image.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// IsIdentity reports whether m is the identity within a small epsilon.
func (m Affine) IsIdentity() bool {
	const eps = 1e-10
	id := Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > eps {
			return false
		}
	}
	return true
}

// AffineFromTriangles solves the unique affine transform taking s0, s1, s2 to
// d0, d1, d2. When the source triangle is degenerate it returns the identity
// and ok=false; callers skip the triangle.
func AffineFromTriangles(s0, s1, s2, d0, d1, d2 Point) (Affine, bool) {
	u1 := s1.Sub(s0)
	u2 := s2.Sub(s0)
	det := u1.X*u2.Y - u2.X*u1.Y
	if math.Abs(det) < degenerateDet {
		return Identity(), false
	}
	v1 := d1.Sub(d0)
	v2 := d2.Sub(d0)

	a := (v1.X*u2.Y - v2.X*u1.Y) / det
	c := (v2.X*u1.X - v1.X*u2.X) / det
	b := (v1.Y*u2.Y - v2.Y*u1.Y) / det
	d := (v2.Y*u1.X - v1.Y*u2.X) / det
	e := d0.X - a*s0.X - c*s0.Y
	f := d0.Y - b*s0.X - d*s0.Y
	return Affine{a, b, c, d, e, f}, true
}
