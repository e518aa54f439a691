package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func samePoint(a, b Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}

func sameQuad(a, b Quad) bool {
	for _, c := range Corners {
		if !samePoint(a.Corner(c), b.Corner(c)) {
			return false
		}
	}
	return true
}

func skewed() Quad {
	return Quad{TL: Pt(110, 95), TR: Pt(305, 120), BR: Pt(290, 330), BL: Pt(80, 300)}
}

func TestInterpolateCorners(t *testing.T) {
	q := skewed()
	cases := []struct {
		u, v float64
		want Point
	}{
		{0, 0, q.TL},
		{1, 0, q.TR},
		{1, 1, q.BR},
		{0, 1, q.BL},
	}
	for _, tc := range cases {
		if got := Interpolate(q, tc.u, tc.v); !samePoint(got, tc.want) {
			t.Fatalf("Interpolate(%v,%v)=%v want %v", tc.u, tc.v, got, tc.want)
		}
	}
	mid := Interpolate(q, 0.5, 0.5)
	if !samePoint(mid, Centroid(q)) {
		t.Fatalf("centre of unit square should map to centroid: %v vs %v", mid, Centroid(q))
	}
}

func TestTranslateMovesCentroid(t *testing.T) {
	q := skewed()
	moved := Translate(q, 30, -12.5)
	want := Centroid(q).Add(Pt(30, -12.5))
	if got := Centroid(moved); !samePoint(got, want) {
		t.Fatalf("centroid after translate %v, want %v", got, want)
	}
	if q != skewed() {
		t.Fatal("Translate mutated its input")
	}
}

func TestRotateAboutIsInvertible(t *testing.T) {
	q := skewed()
	c := Centroid(q)
	for _, deg := range []float64{0, 7.5, -33, 45, 90, 179} {
		back := RotateAbout(RotateAbout(q, c, deg), c, -deg)
		if !sameQuad(back, q) {
			t.Fatalf("rotate %v and back: got %+v want %+v", deg, back, q)
		}
	}
}

func TestRotateAboutQuarterTurn(t *testing.T) {
	q := Rect(0, 0, 10, 10)
	r := RotateAbout(q, Pt(0, 0), 90)
	if !samePoint(r.TR, Pt(0, 10)) {
		t.Fatalf("TR after 90deg = %v", r.TR)
	}
}

func TestScaleAboutKeepsCentreAndScalesArea(t *testing.T) {
	q := skewed()
	c := Centroid(q)
	s := ScaleAbout(q, c, 2)
	if !samePoint(Centroid(s), c) {
		t.Fatalf("centroid moved: %v vs %v", Centroid(s), c)
	}
	if got, want := s.Area(), q.Area()*4; math.Abs(got-want) > 1e-6 {
		t.Fatalf("area %v want %v", got, want)
	}
}

func TestPointInQuad(t *testing.T) {
	quads := []Quad{skewed(), Rect(0, 0, 100, 50), RotateAbout(Rect(0, 0, 100, 50), Pt(50, 25), 30)}
	for _, q := range quads {
		if !PointInQuad(Centroid(q), q) {
			t.Fatalf("centroid should be inside %+v", q)
		}
		_, hi := q.Bounds()
		if PointInQuad(hi.Add(Pt(500, 500)), q) {
			t.Fatalf("far point reported inside %+v", q)
		}
	}
	if !PointInQuad(Pt(100, 25), Rect(0, 0, 100, 50)) {
		t.Fatal("edge point should count as inside")
	}
}

func TestHitTestCornerPicksNearest(t *testing.T) {
	q := Rect(0, 0, 20, 20)
	c, ok := HitTestCorner(q, Pt(18, 3), 12)
	if !ok || c != CornerTR {
		t.Fatalf("got %v,%v want TR", c, ok)
	}
	if _, ok := HitTestCorner(q, Pt(200, 200), 12); ok {
		t.Fatal("expected miss far from corners")
	}
	if c, ok := HitTestCorner(q, Pt(20, 32), 12); !ok || c != CornerBR {
		t.Fatalf("boundary distance should hit: %v %v", c, ok)
	}
}

func TestIsSimple(t *testing.T) {
	if !IsSimple(skewed()) {
		t.Fatal("skewed quad should be simple")
	}
	bow := Rect(0, 0, 10, 10)
	bow.TR, bow.BR = bow.BR, bow.TR
	if IsSimple(bow) {
		t.Fatal("bow tie should not be simple")
	}
}
