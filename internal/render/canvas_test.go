package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/tryon/internal/geom"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	NewCanvas(img).Clear(c)
	return img
}

func TestCanvasClipPathLimitsDrawImage(t *testing.T) {
	dst := solid(100, 100, white)
	c := NewCanvas(dst)
	c.Save()
	c.ClipPath(geom.Rect(0, 0, 50, 100).Points())
	c.DrawImage(solid(100, 100, red))
	c.Restore()

	if got := dst.RGBAAt(49, 10); got != red {
		t.Fatalf("inside clip got %+v", got)
	}
	if got := dst.RGBAAt(50, 10); got != white {
		t.Fatalf("outside clip got %+v", got)
	}
}

func TestCanvasRestoreDropsClipAndTransform(t *testing.T) {
	c := NewCanvas(solid(20, 20, white))
	c.Save()
	c.SetTransform(geom.Translation(5, 5))
	c.ClipPath(geom.Rect(0, 0, 2, 2).Points())
	c.Restore()
	if !c.Transform().IsIdentity() {
		t.Fatalf("transform not restored: %v", c.Transform())
	}
	c.DrawImage(solid(20, 20, blue))
	if got := c.Image().RGBAAt(15, 15); got != blue {
		t.Fatalf("clip leaked past Restore: %+v", got)
	}
}

func TestCanvasClipUsesTransform(t *testing.T) {
	dst := solid(40, 40, white)
	c := NewCanvas(dst)
	c.SetTransform(geom.Translation(20, 0))
	c.ClipPath(geom.Rect(0, 0, 10, 10).Points())
	c.SetTransform(geom.Identity())
	c.DrawImage(solid(40, 40, red))
	if got := dst.RGBAAt(25, 5); got != red {
		t.Fatalf("expected red inside translated clip, got %+v", got)
	}
	if got := dst.RGBAAt(5, 5); got != white {
		t.Fatalf("expected untouched pixel left of clip, got %+v", got)
	}
}

func TestCanvasDrawImageScaled(t *testing.T) {
	dst := solid(40, 40, white)
	c := NewCanvas(dst)
	c.SetTransform(geom.Affine{2, 0, 0, 2, 0, 0})
	c.DrawImage(solid(10, 10, blue))
	if got := dst.RGBAAt(15, 15); got.B < 250 || got.R > 5 {
		t.Fatalf("expected blue in scaled area, got %+v", got)
	}
	if got := dst.RGBAAt(30, 30); got != white {
		t.Fatalf("expected white outside scaled area, got %+v", got)
	}
}

func TestCanvasFillPathBlurSpreads(t *testing.T) {
	sharp := NewCanvas(solid(60, 60, white))
	soft := NewCanvas(solid(60, 60, white))
	path := geom.Rect(20, 20, 20, 20).Points()
	sharp.FillPath(path, color.Black, 0)
	soft.FillPath(path, color.Black, 4)

	if got := sharp.Image().RGBAAt(17, 30); got != white {
		t.Fatalf("sharp fill leaked outside path: %+v", got)
	}
	if got := soft.Image().RGBAAt(17, 30); got.R == 255 {
		t.Fatal("blurred fill should darken pixels beyond the edge")
	}
	if got := sharp.Image().RGBAAt(30, 30); got.R != 0 {
		t.Fatalf("sharp interior should be black, got %+v", got)
	}
}

func TestCanvasSingularTransformIsSkipped(t *testing.T) {
	dst := solid(10, 10, white)
	c := NewCanvas(dst)
	c.SetTransform(geom.Affine{1, 1, 1, 1, 0, 0})
	c.DrawImage(solid(10, 10, red))
	if got := dst.RGBAAt(3, 3); got != white {
		t.Fatalf("singular draw changed pixels: %+v", got)
	}
}

func TestSampleMaskSharedEdgeHasNoGap(t *testing.T) {
	bounds := image.Rect(0, 0, 32, 32)
	a := sampleMask([]geom.Point{geom.Pt(0, 0), geom.Pt(32, 0), geom.Pt(32, 32)}, bounds)
	b := sampleMask([]geom.Point{geom.Pt(0, 0), geom.Pt(32, 32), geom.Pt(0, 32)}, bounds)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if a.AlphaAt(x, y).A == 0 && b.AlphaAt(x, y).A == 0 {
				t.Fatalf("pixel (%d,%d) covered by neither triangle", x, y)
			}
		}
	}
}
