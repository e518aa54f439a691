package layer

import (
	"image"
	"math"

	"github.com/example/tryon/internal/catalog"
	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/sizing"
)

// Limits bounds the values the controls may set.
type Limits struct {
	ScaleMin    float64
	ScaleMax    float64
	RotationMin float64
	RotationMax float64
}

// DefaultLimits allows 30-180 % scale and ±45° rotation.
func DefaultLimits() Limits {
	return Limits{ScaleMin: 30, ScaleMax: 180, RotationMin: -45, RotationMax: 45}
}

// Seed controls where a fresh quad is placed.
type Seed struct {
	// WidthFrac is the initial quad width as a fraction of the canvas.
	WidthFrac float64
	// MaxHeightFrac caps the initial height; the width shrinks to keep
	// the texture aspect.
	MaxHeightFrac float64
	// AnchorY is the vertical centre as a fraction of the canvas height.
	AnchorY float64
}

// DefaultSeed centres a quad 42% of the canvas wide.
func DefaultSeed() Seed {
	return Seed{WidthFrac: 0.42, MaxHeightFrac: 0.55, AnchorY: 0.5}
}

// LoadProduct installs p and resets every setting to its default. The
// texture and quad are cleared; SetTexture seeds a new quad once the
// product image has been decoded.
func LoadProduct(s State, p *catalog.Product) State {
	next := Empty(s.ID)
	next.Code = s.Code
	if p != nil && next.Code == "" {
		next.Code = p.Code
	}
	next.Product = p
	if p != nil {
		next.Sizes = append([]string(nil), p.Sizes...)
		next.BaseSize = p.InitialSize()
		next.SelectedSize = next.BaseSize
		next.SizeScale = sizing.ScaleFactor(next.BaseSize, next.SelectedSize)
		next.SKU = p.SKU(next.SelectedSize)
	}
	return next
}

// Load is LoadProduct followed by SetTexture: the product's settings are
// reset and a fresh quad is seeded for img.
func Load(s State, p *catalog.Product, img image.Image, canvasW, canvasH int, seed Seed) State {
	return SetTexture(LoadProduct(s, p), img, canvasW, canvasH, seed)
}

// SelectImage switches to another product image. The quad is dropped so
// the next texture is seeded fresh.
func SelectImage(s State, index int) State {
	if s.Product == nil || index < 0 || index >= len(s.Product.Images) {
		return s
	}
	s.ImageIndex = index
	s.Texture = nil
	s.Quad = nil
	return s
}

// SetTexture stores a decoded texture and seeds the quad if none exists.
func SetTexture(s State, img image.Image, canvasW, canvasH int, seed Seed) State {
	s.Texture = img
	s.Loading = false
	s.Err = nil
	return SeedQuad(s, canvasW, canvasH, seed)
}

// SeedQuad places a centred quad sized from the canvas, the texture aspect
// ratio and the current actual scale, turned by any stored rotation.
// Existing quads are left alone.
func SeedQuad(s State, canvasW, canvasH int, seed Seed) State {
	if s.Quad != nil || s.Texture == nil || canvasW <= 0 || canvasH <= 0 {
		return s
	}
	b := s.Texture.Bounds()
	aspect := 1.0
	if b.Dx() > 0 && b.Dy() > 0 {
		aspect = float64(b.Dx()) / float64(b.Dy())
	}
	W := float64(canvasW)
	H := float64(canvasH)
	w := W * seed.WidthFrac
	h := w / aspect
	if maxH := H * seed.MaxHeightFrac; h > maxH {
		h = maxH
		w = h * aspect
	}
	k := s.ActualScale()
	w *= k
	h *= k
	cx := W / 2
	cy := H * seed.AnchorY
	q := geom.Rect(cx-w/2, cy-h/2, w, h)
	if s.RotationDeg != 0 {
		q = geom.RotateAbout(q, geom.Pt(cx, cy), s.RotationDeg)
	}
	return s.withQuad(q)
}

// ResetQuad drops the quad and any rotation and seeds a fresh one at the
// current actual scale.
func ResetQuad(s State, canvasW, canvasH int, seed Seed) State {
	s.Quad = nil
	s.RotationDeg = 0
	return SeedQuad(s, canvasW, canvasH, seed)
}

// SetUserScale clamps pct to the limits and scales the quad about its
// centroid by the change in actual scale.
func SetUserScale(s State, pct float64, lim Limits) State {
	next := s
	next.UserScalePct = clamp(pct, lim.ScaleMin, lim.ScaleMax)
	return rescale(s, next)
}

// SetDeclaredSize selects a size label. The quad grows or shrinks by the
// change in size scale relative to the product's base size.
func SetDeclaredSize(s State, label string) State {
	next := s
	next.SelectedSize = label
	next.SizeScale = sizing.ScaleFactor(s.BaseSize, label)
	next.SKU = ""
	if s.Product != nil {
		next.SKU = s.Product.SKU(label)
	}
	return rescale(s, next)
}

// rescale applies next.ActualScale()/prev.ActualScale() to next's quad.
func rescale(prev, next State) State {
	if next.Quad == nil {
		return next
	}
	old := prev.ActualScale()
	if old == 0 || math.IsNaN(old) {
		old = 1
	}
	factor := next.ActualScale() / old
	if factor == 1 {
		return next
	}
	q := *next.Quad
	return next.withQuad(geom.ScaleAbout(q, geom.Centroid(q), factor))
}

// SetRotation clamps deg and rotates the quad about its centroid by the
// difference from the previous rotation.
func SetRotation(s State, deg float64, lim Limits) State {
	deg = clamp(deg, lim.RotationMin, lim.RotationMax)
	delta := deg - s.RotationDeg
	s.RotationDeg = deg
	if s.Quad == nil || delta == 0 {
		return s
	}
	q := *s.Quad
	return s.withQuad(geom.RotateAbout(q, geom.Centroid(q), delta))
}

// SetShadow stores the shadow toggle and strength, clamped to [0, 100].
func SetShadow(s State, enabled bool, strengthPct float64) State {
	s.ShadowEnabled = enabled
	s.ShadowStrengthPct = clamp(strengthPct, 0, 100)
	return s
}

// Move translates the whole quad.
func Move(s State, dx, dy float64) State {
	if s.Quad == nil {
		return s
	}
	return s.withQuad(geom.Translate(*s.Quad, dx, dy))
}

// MoveCorner shifts a single corner.
func MoveCorner(s State, c geom.Corner, dx, dy float64) State {
	if s.Quad == nil {
		return s
	}
	q := *s.Quad
	return s.withQuad(q.WithCorner(c, q.Corner(c).Add(geom.Pt(dx, dy))))
}

// SetQuad replaces the quad outright.
func SetQuad(s State, q geom.Quad) State {
	return s.withQuad(q)
}

// SetCode records the article code typed for this layer.
func SetCode(s State, code string) State {
	s.Code = code
	return s
}

// StartLoading marks a lookup in flight and clears the previous error.
func StartLoading(s State) State {
	s.Loading = true
	s.Err = nil
	return s
}

// Fail records a failed lookup or decode. Everything already loaded stays
// as it was.
func Fail(s State, err error) State {
	s.Loading = false
	s.Err = err
	return s
}

// Clear empties the layer, keeping only its identity.
func Clear(s State) State {
	return Empty(s.ID)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
