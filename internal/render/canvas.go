package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/example/tryon/internal/geom"
)

type canvasState struct {
	m    geom.Affine
	clip *image.Alpha
}

// Canvas is the software Surface over an *image.RGBA.
type Canvas struct {
	dst   *image.RGBA
	state canvasState
	stack []canvasState

	// Interp samples images under non-identity transforms.
	Interp draw.Interpolator
}

// NewCanvas wraps dst. The default interpolator is ApproxBiLinear, which
// is fast enough for interactive frames.
func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{
		dst:    dst,
		state:  canvasState{m: geom.Identity()},
		Interp: draw.ApproxBiLinear,
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.dst.Bounds()
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) SetTransform(m geom.Affine) {
	c.state.m = m
}

// Transform returns the current user-to-device transform.
func (c *Canvas) Transform() geom.Affine {
	return c.state.m
}

func (c *Canvas) ClipPath(path []geom.Point) {
	mask := sampleMask(c.device(path), c.dst.Bounds())
	c.state.clip = intersectMasks(c.state.clip, mask)
}

// region is the device rectangle drawing may touch under the current clip.
func (c *Canvas) region() image.Rectangle {
	if c.state.clip == nil {
		return c.dst.Bounds()
	}
	return c.state.clip.Rect.Intersect(c.dst.Bounds())
}

func (c *Canvas) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	sr := img.Bounds()
	if sr.Empty() {
		return
	}
	m := c.state.m
	if math.Abs(m.Determinant()) < 1e-9 {
		return
	}
	corners := []geom.Point{
		geom.Pt(float64(sr.Min.X), float64(sr.Min.Y)),
		geom.Pt(float64(sr.Max.X), float64(sr.Min.Y)),
		geom.Pt(float64(sr.Max.X), float64(sr.Max.Y)),
		geom.Pt(float64(sr.Min.X), float64(sr.Max.Y)),
	}
	dr := pathBounds(c.device(corners)).Intersect(c.region())
	if dr.Empty() {
		return
	}
	dst := c.dst.SubImage(dr).(*image.RGBA)
	var opts *draw.Options
	if c.state.clip != nil {
		opts = &draw.Options{DstMask: c.state.clip}
	}
	if isTranslation(m) && opts == nil {
		off := image.Pt(int(m[4]), int(m[5]))
		draw.Draw(dst, dr, img, dr.Min.Sub(off), draw.Over)
		return
	}
	c.Interp.Transform(dst, m.Aff3(), img, sr, draw.Over, opts)
}

func (c *Canvas) FillPath(path []geom.Point, col color.Color, blur float64) {
	if len(path) < 3 {
		return
	}
	radius := blurRadius(blur)
	mask := rasterize(c.device(path), c.dst.Bounds(), 3*radius+1)
	if mask.Rect.Empty() {
		return
	}
	if radius > 0 {
		mask = gaussianAlpha(mask, radius)
	}
	mask = intersectMasks(mask, c.state.clip)
	if mask.Rect.Empty() {
		return
	}
	draw.DrawMask(c.dst, mask.Rect, image.NewUniform(col), image.Point{}, mask, mask.Rect.Min, draw.Over)
}

func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) device(path []geom.Point) []geom.Point {
	m := c.state.m
	if m.IsIdentity() {
		return path
	}
	out := make([]geom.Point, len(path))
	for i, p := range path {
		out[i] = m.Apply(p)
	}
	return out
}

// isTranslation reports whether m only shifts by whole pixels.
func isTranslation(m geom.Affine) bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 &&
		m[4] == math.Trunc(m[4]) && m[5] == math.Trunc(m[5])
}

var _ Surface = (*Canvas)(nil)
