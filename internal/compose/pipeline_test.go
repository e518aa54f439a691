package compose

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/layer"
)

var (
	red    = color.RGBA{255, 0, 0, 255}
	blue   = color.RGBA{0, 0, 255, 255}
	yellow = color.RGBA{250, 220, 0, 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func withLayer(sc *Scene, id layer.ID, tex image.Image, q geom.Quad) {
	sc.Update(id, func(s layer.State) layer.State {
		s = layer.SetTexture(s, tex, sc.Width, sc.Height, layer.DefaultSeed())
		return layer.SetQuad(s, q)
	})
}

func TestRenderFallbackBackground(t *testing.T) {
	sc := NewScene(40, 30)
	img := RenderImage(&sc, DefaultOptions())
	if got := img.RGBAAt(5, 5); got != (color.RGBA{0xf3, 0xf4, 0xf6, 0xff}) {
		t.Fatalf("fallback fill %+v", got)
	}
}

func TestRenderPhotoCoverFit(t *testing.T) {
	photo := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				photo.SetRGBA(x, y, red)
			} else {
				photo.SetRGBA(x, y, blue)
			}
		}
	}
	sc := NewScene(100, 100)
	sc.SetPhoto(photo)
	img := RenderImage(&sc, DefaultOptions())
	// Scale 2 crops 50px off each side: the split falls at x=50.
	if got := img.RGBAAt(10, 50); got.R < 250 || got.B > 5 {
		t.Fatalf("left of centre %+v", got)
	}
	if got := img.RGBAAt(90, 50); got.B < 250 || got.R > 5 {
		t.Fatalf("right of centre %+v", got)
	}
	if got := img.RGBAAt(50, 0); got == (color.RGBA{0xf3, 0xf4, 0xf6, 0xff}) {
		t.Fatal("photo should cover the whole canvas")
	}
}

func TestCoverTransform(t *testing.T) {
	m := CoverTransform(image.Rect(0, 0, 200, 100), image.Rect(0, 0, 100, 100))
	if got := m.Apply(geom.Pt(100, 50)); got != geom.Pt(50, 50) {
		t.Fatalf("photo centre maps to %v", got)
	}
	if m[0] != 1 {
		t.Fatalf("scale %v", m[0])
	}
}

func TestRenderCompareSplitsLayers(t *testing.T) {
	sc := NewScene(400, 300)
	cover := geom.Rect(-20, -20, 440, 340)
	withLayer(&sc, layer.A, solid(32, 32, red), cover)
	withLayer(&sc, layer.B, solid(32, 32, blue), cover)
	sc.ToggleSecond()
	sc.SetCompare(true)
	sc.SetSplit(50)
	if !sc.CompareActive() {
		t.Fatal("compare should be active with both layers populated")
	}

	img := RenderImage(&sc, DefaultOptions())
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			if x == 199 || x == 200 {
				continue
			}
			p := img.RGBAAt(x, y)
			if x < 200 && (p.B > 128 || p.R < 128) {
				t.Fatalf("pixel (%d,%d) left of the split is %+v", x, y, p)
			}
			if x > 200 && (p.R > 128 || p.B < 128) {
				t.Fatalf("pixel (%d,%d) right of the split is %+v", x, y, p)
			}
		}
	}
	if p := img.RGBAAt(199, 150); p.R < 128 || p.G < 128 || p.B < 128 {
		t.Fatalf("divider should be light, got %+v", p)
	}
}

func TestCompareNeedsBothLayers(t *testing.T) {
	sc := NewScene(100, 100)
	withLayer(&sc, layer.A, solid(8, 8, red), geom.Rect(-10, -10, 120, 120))
	sc.SetCompare(true)
	if sc.CompareActive() {
		t.Fatal("compare cannot be active with one layer")
	}
	img := RenderImage(&sc, DefaultOptions())
	if got := img.RGBAAt(90, 50); got != red {
		t.Fatalf("single layer should draw across the split, got %+v", got)
	}
}

func TestLayerBDrawnAboveA(t *testing.T) {
	sc := NewScene(100, 100)
	q := geom.Rect(10, 10, 80, 80)
	withLayer(&sc, layer.A, solid(8, 8, red), q)
	withLayer(&sc, layer.B, solid(8, 8, blue), q)
	img := RenderImage(&sc, DefaultOptions())
	if got := img.RGBAAt(50, 50); got != blue {
		t.Fatalf("B should cover A, got %+v", got)
	}
}

func TestHandlesOnlyForActiveLayer(t *testing.T) {
	sc := NewScene(400, 300)
	withLayer(&sc, layer.A, solid(8, 8, yellow), geom.Rect(20, 20, 100, 100))
	withLayer(&sc, layer.B, solid(8, 8, yellow), geom.Rect(200, 150, 100, 100))
	for i := range sc.Layers {
		sc.Layers[i] = layer.SetShadow(sc.Layers[i], false, 0)
	}
	sc.SetActive(layer.B)
	o := DefaultOptions()
	img := RenderImage(&sc, o)
	handle := color.RGBA{0x11, 0x18, 0x27, 0xff}
	if got := img.RGBAAt(200, 150); got != handle {
		t.Fatalf("active handle missing: %+v", got)
	}
	if got := img.RGBAAt(20, 20); got == handle {
		t.Fatal("inactive layer should have no handles")
	}

	o.Handles = false
	if got := RenderImage(&sc, o).RGBAAt(200, 150); got == handle {
		t.Fatal("handles should be omitted when disabled")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	sc := NewScene(160, 120)
	sc.SetPhoto(solid(90, 60, color.RGBA{90, 120, 150, 255}))
	withLayer(&sc, layer.A, solid(20, 30, yellow), geom.Quad{
		TL: geom.Pt(30, 40), TR: geom.Pt(120, 35), BR: geom.Pt(140, 110), BL: geom.Pt(15, 100),
	})
	first := RenderImage(&sc, DefaultOptions())
	second := RenderImage(&sc, DefaultOptions())
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatal("rendering the same scene twice produced different pixels")
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, &sc, DefaultOptions()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty png")
	}
}

func TestToggleSecond(t *testing.T) {
	sc := NewScene(100, 100)
	sc.ToggleSecond()
	if !sc.Second || sc.Active != layer.B {
		t.Fatalf("adding the second rug should focus it: %+v", sc)
	}
	withLayer(&sc, layer.B, solid(4, 4, blue), geom.Rect(0, 0, 10, 10))
	sc.SetCompare(true)
	sc.ToggleSecond()
	if sc.Second || sc.Compare.Enabled || sc.Active != layer.A || sc.Layers[layer.B].Populated() {
		t.Fatalf("removing the second rug should reset B: %+v", sc)
	}
}

func TestResizeSeedsOnlyMissingQuads(t *testing.T) {
	sc := NewScene(100, 100)
	fixed := geom.Rect(5, 5, 20, 20)
	withLayer(&sc, layer.A, solid(4, 4, red), fixed)
	sc.Layers[layer.B] = layer.SetTexture(sc.Layers[layer.B], solid(4, 4, blue), 0, 0, layer.DefaultSeed())
	if sc.Layers[layer.B].Quad != nil {
		t.Fatal("zero sized canvas should not seed")
	}
	sc.Resize(200, 200, layer.DefaultSeed())
	if *sc.Layers[layer.A].Quad != fixed {
		t.Fatal("existing quad moved on resize")
	}
	if sc.Layers[layer.B].Quad == nil {
		t.Fatal("pending quad should be seeded after resize")
	}
}

func TestSetSplitClamps(t *testing.T) {
	sc := NewScene(10, 10)
	sc.SetSplit(150)
	if sc.Compare.SplitPct != 100 {
		t.Fatalf("split %v", sc.Compare.SplitPct)
	}
	sc.SetSplit(-5)
	if sc.Compare.SplitPct != 0 {
		t.Fatalf("split %v", sc.Compare.SplitPct)
	}
}
