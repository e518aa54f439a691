package compose

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/layer"
	"github.com/example/tryon/internal/render"
)

// Options holds the drawing parameters that are not part of the scene.
type Options struct {
	Grid         int
	Shadow       render.ShadowStyle
	Background   color.Color
	Handles      bool
	HandleRadius float64
	HandleColor  color.Color
	DividerWidth float64
	DividerColor color.Color
	// Interp overrides the canvas interpolator for RenderImage.
	Interp draw.Interpolator
}

// DefaultOptions returns the editor look.
func DefaultOptions() Options {
	return Options{
		Grid:         render.DefaultGrid,
		Shadow:       render.DefaultShadowStyle(),
		Background:   color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
		Handles:      true,
		HandleRadius: 6,
		HandleColor:  color.RGBA{0x11, 0x18, 0x27, 0xff},
		DividerWidth: 2,
		DividerColor: color.NRGBA{0xff, 0xff, 0xff, 0xcc},
	}
}

// Render draws sc onto s from scratch. The result depends only on sc and
// o, so calling it twice with the same input yields identical pixels.
func Render(s render.Surface, sc *Scene, o Options) {
	b := s.Bounds()
	s.Clear(o.Background)
	if sc.Photo != nil {
		drawCover(s, sc.Photo, b)
	}

	if sc.CompareActive() {
		split := float64(b.Min.X) + float64(b.Dx())*sc.Compare.SplitPct/100
		top, bottom := float64(b.Min.Y), float64(b.Max.Y)

		s.Save()
		s.SetTransform(geom.Identity())
		s.ClipPath(rectPath(float64(b.Min.X), top, split, bottom))
		drawLayer(s, sc.Layers[layer.A], o)
		s.Restore()

		s.Save()
		s.SetTransform(geom.Identity())
		s.ClipPath(rectPath(split, top, float64(b.Max.X), bottom))
		drawLayer(s, sc.Layers[layer.B], o)
		s.Restore()

		render.DrawDivider(s, split, o.DividerWidth, o.DividerColor)
	} else {
		drawLayer(s, sc.Layers[layer.A], o)
		drawLayer(s, sc.Layers[layer.B], o)
	}

	if o.Handles {
		if q, ok := sc.ActiveLayer().QuadValue(); ok {
			render.DrawHandles(s, q, o.HandleRadius, o.HandleColor)
		}
	}
}

func drawLayer(s render.Surface, st layer.State, o Options) {
	if !st.Populated() {
		return
	}
	if st.ShadowEnabled {
		render.DrawShadow(s, *st.Quad, st.ShadowStrengthPct, o.Shadow)
	}
	render.DrawImageToQuad(s, st.Texture, *st.Quad, o.Grid)
}

// CoverTransform scales an image of size src to cover dst completely,
// centred, cropping the overflow.
func CoverTransform(src, dst image.Rectangle) geom.Affine {
	if src.Empty() || dst.Empty() {
		return geom.Identity()
	}
	sx := float64(dst.Dx()) / float64(src.Dx())
	sy := float64(dst.Dy()) / float64(src.Dy())
	k := max(sx, sy)
	dw := float64(src.Dx()) * k
	dh := float64(src.Dy()) * k
	ox := float64(dst.Min.X) + (float64(dst.Dx())-dw)/2
	oy := float64(dst.Min.Y) + (float64(dst.Dy())-dh)/2
	return geom.Affine{k, 0, 0, k, ox - k*float64(src.Min.X), oy - k*float64(src.Min.Y)}
}

func drawCover(s render.Surface, photo image.Image, b image.Rectangle) {
	s.Save()
	defer s.Restore()
	s.SetTransform(CoverTransform(photo.Bounds(), b))
	s.DrawImage(photo)
}

func rectPath(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)}
}

// RenderImage renders sc into a new RGBA image of the scene's size.
func RenderImage(sc *Scene, o Options) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(1, sc.Width), max(1, sc.Height)))
	c := render.NewCanvas(dst)
	if o.Interp != nil {
		c.Interp = o.Interp
	}
	Render(c, sc, o)
	return dst
}

// EncodePNG renders sc and writes it as PNG.
func EncodePNG(w io.Writer, sc *Scene, o Options) error {
	return png.Encode(w, RenderImage(sc, o))
}
