package layer

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/example/tryon/internal/catalog"
	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/sizing"
)

const eps = 1e-6

func rug() *catalog.Product {
	return &catalog.Product{
		Code:        "12345",
		Images:      []string{"a.png", "b.png"},
		Sizes:       []string{"80x150", "160x230", "160x300"},
		DefaultSize: "80x150",
		Variants: []sizing.Variant{
			{SizeLabel: "80 x 150 cm", SKU: "KC-80"},
			{SizeLabel: "160 x 300 cm", SKU: "KC-160"},
		},
	}
}

func square(n int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, n, n))
}

func loaded(t *testing.T) State {
	t.Helper()
	s := Load(Empty(A), rug(), square(100), 800, 600, DefaultSeed())
	if s.Quad == nil {
		t.Fatal("expected seeded quad")
	}
	return s
}

func bboxArea(q geom.Quad) float64 {
	lo, hi := q.Bounds()
	return (hi.X - lo.X) * (hi.Y - lo.Y)
}

func closePoint(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestLoadProductDefaults(t *testing.T) {
	prev := Empty(A)
	prev.UserScalePct = 150
	prev.RotationDeg = 20
	prev.ShadowEnabled = false
	prev.Code = "12345"
	s := LoadProduct(prev, rug())
	if s.UserScalePct != 100 || s.RotationDeg != 0 || !s.ShadowEnabled || s.ShadowStrengthPct != 30 {
		t.Fatalf("settings not reset: %+v", s)
	}
	if s.BaseSize != "80x150" || s.SelectedSize != "80x150" || s.SizeScale != 1 {
		t.Fatalf("sizes: base=%q selected=%q scale=%v", s.BaseSize, s.SelectedSize, s.SizeScale)
	}
	if s.SKU != "KC-80" {
		t.Fatalf("sku %q", s.SKU)
	}
	if s.Quad != nil || s.Texture != nil {
		t.Fatal("quad and texture should wait for the image")
	}
	if s.Code != "12345" {
		t.Fatalf("code %q", s.Code)
	}
}

func TestLoadProductFallsBackToFirstSize(t *testing.T) {
	p := rug()
	p.DefaultSize = ""
	if s := LoadProduct(Empty(B), p); s.BaseSize != "80x150" {
		t.Fatalf("base size %q", s.BaseSize)
	}
}

func TestSeedQuadCentredAndCapped(t *testing.T) {
	s := loaded(t)
	q := *s.Quad
	if c := geom.Centroid(q); !closePoint(c, geom.Pt(400, 300)) {
		t.Fatalf("centroid %v", c)
	}
	// 0.42*800 = 336 wide would be 336 tall; the 0.55*600 = 330 cap wins.
	lo, hi := q.Bounds()
	if math.Abs(hi.Y-lo.Y-330) > eps || math.Abs(hi.X-lo.X-330) > eps {
		t.Fatalf("seeded size %vx%v", hi.X-lo.X, hi.Y-lo.Y)
	}
	again := SetTexture(s, square(10), 800, 600, DefaultSeed())
	if *again.Quad != q {
		t.Fatal("an existing quad must not be reseeded")
	}
}

func TestSetDeclaredSizeQuadruplesArea(t *testing.T) {
	s := loaded(t)
	before := *s.Quad
	next := SetDeclaredSize(s, "160x300")
	if next.SizeScale != 2 {
		t.Fatalf("size scale %v", next.SizeScale)
	}
	if got, want := bboxArea(*next.Quad), 4*bboxArea(before); math.Abs(got-want) > 1e-3 {
		t.Fatalf("area %v want %v", got, want)
	}
	if !closePoint(geom.Centroid(*next.Quad), geom.Centroid(before)) {
		t.Fatal("centroid moved")
	}
	if next.SKU != "KC-160" || next.SelectedSize != "160x300" {
		t.Fatalf("sku %q selected %q", next.SKU, next.SelectedSize)
	}
	if *s.Quad != before {
		t.Fatal("input state was modified")
	}

	back := SetDeclaredSize(next, "80x150")
	for _, c := range geom.Corners {
		if !closePoint(back.Quad.Corner(c), before.Corner(c)) {
			t.Fatalf("returning to the base size should restore corner %v", c)
		}
	}
}

func TestSetDeclaredSizeUnparsableIsNeutral(t *testing.T) {
	s := loaded(t)
	next := SetDeclaredSize(s, "round")
	if next.SizeScale != 1 || *next.Quad != *s.Quad {
		t.Fatalf("unparsable size should not resize: scale=%v", next.SizeScale)
	}
}

func TestSetUserScaleIncremental(t *testing.T) {
	s := loaded(t)
	s = MoveCorner(s, geom.CornerTR, 15, -10)
	edited := *s.Quad
	c := geom.Centroid(edited)
	next := SetUserScale(s, 150, DefaultLimits())
	want := geom.ScaleAbout(edited, c, 1.5)
	for _, corner := range geom.Corners {
		if !closePoint(next.Quad.Corner(corner), want.Corner(corner)) {
			t.Fatalf("corner %v = %v want %v", corner, next.Quad.Corner(corner), want.Corner(corner))
		}
	}
}

func TestSetUserScaleClamps(t *testing.T) {
	s := loaded(t)
	if got := SetUserScale(s, 500, DefaultLimits()).UserScalePct; got != 180 {
		t.Fatalf("upper clamp %v", got)
	}
	if got := SetUserScale(s, 5, DefaultLimits()).UserScalePct; got != 30 {
		t.Fatalf("lower clamp %v", got)
	}
}

func TestSetRotationIncremental(t *testing.T) {
	s := loaded(t)
	orig := *s.Quad
	s = SetRotation(s, 30, DefaultLimits())
	s = SetRotation(s, 10, DefaultLimits())
	want := geom.RotateAbout(orig, geom.Centroid(orig), 10)
	for _, c := range geom.Corners {
		if !closePoint(s.Quad.Corner(c), want.Corner(c)) {
			t.Fatalf("corner %v = %v want %v", c, s.Quad.Corner(c), want.Corner(c))
		}
	}
	if got := SetRotation(s, 90, DefaultLimits()).RotationDeg; got != 45 {
		t.Fatalf("rotation clamp %v", got)
	}
}

func TestSettingsWithoutQuadAreStored(t *testing.T) {
	s := LoadProduct(Empty(A), rug())
	s = SetUserScale(s, 50, DefaultLimits())
	s = SetRotation(s, 12, DefaultLimits())
	s = SetDeclaredSize(s, "160x300")
	if s.Quad != nil {
		t.Fatal("no quad should appear without a texture")
	}
	if s.UserScalePct != 50 || s.RotationDeg != 12 || s.SizeScale != 2 {
		t.Fatalf("settings lost: %+v", s)
	}
	s = SetTexture(s, square(100), 800, 600, DefaultSeed())
	// Seeded at 330 * 0.5 * 2.
	if w := s.Quad.TL.Distance(s.Quad.TR); math.Abs(w-330) > eps {
		t.Fatalf("seed should apply the stored actual scale, width %v", w)
	}
	if got := topEdgeAngle(*s.Quad); math.Abs(got-12) > eps {
		t.Fatalf("seed should apply the stored rotation, top edge at %v", got)
	}
	if c := geom.Centroid(*s.Quad); !closePoint(c, geom.Pt(400, 300)) {
		t.Fatalf("rotated seed should stay centred, centroid %v", c)
	}
	s = SetRotation(s, 0, DefaultLimits())
	if got := topEdgeAngle(*s.Quad); math.Abs(got) > eps {
		t.Fatalf("rotating back should level the quad, top edge at %v", got)
	}
}

func topEdgeAngle(q geom.Quad) float64 {
	d := q.TR.Sub(q.TL)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

func TestSetShadowClamps(t *testing.T) {
	s := SetShadow(Empty(A), false, 140)
	if s.ShadowEnabled || s.ShadowStrengthPct != 100 {
		t.Fatalf("%+v", s)
	}
	if s = SetShadow(s, true, -3); s.ShadowStrengthPct != 0 {
		t.Fatalf("%v", s.ShadowStrengthPct)
	}
}

func TestFailKeepsPreviousState(t *testing.T) {
	s := loaded(t)
	boom := errors.New("boom")
	f := Fail(StartLoading(s), boom)
	if f.Quad != s.Quad || f.Texture != s.Texture || f.Product != s.Product {
		t.Fatal("failure should keep loaded content")
	}
	if !errors.Is(f.Err, boom) || f.Loading {
		t.Fatalf("err=%v loading=%v", f.Err, f.Loading)
	}
}

func TestSelectImageDropsQuad(t *testing.T) {
	s := SelectImage(loaded(t), 1)
	if s.Quad != nil || s.Texture != nil || s.ImageURL() != "b.png" {
		t.Fatalf("unexpected %+v", s)
	}
	if same := SelectImage(s, 7); same.ImageIndex != 1 {
		t.Fatal("out of range index should be ignored")
	}
}

func TestResetQuadReseedsUnrotated(t *testing.T) {
	s := loaded(t)
	seeded := *s.Quad
	s = Move(SetRotation(s, 20, DefaultLimits()), 40, 10)
	s = ResetQuad(s, 800, 600, DefaultSeed())
	if s.RotationDeg != 0 || *s.Quad != seeded {
		t.Fatalf("reset gave %+v rotation %v", *s.Quad, s.RotationDeg)
	}
}

func TestClear(t *testing.T) {
	s := Clear(loaded(t))
	if s.Populated() || s.Product != nil || s.ID != A {
		t.Fatalf("%+v", s)
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("b"); err != nil || id != B {
		t.Fatalf("%v %v", id, err)
	}
	if _, err := ParseID("c"); err == nil {
		t.Fatal("expected error")
	}
}
