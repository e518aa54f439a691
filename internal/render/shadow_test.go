package render

import (
	"math"
	"testing"

	"github.com/example/tryon/internal/geom"
)

func TestShadowParams(t *testing.T) {
	off, blur, opacity := DefaultShadowStyle().Params(30)
	if math.Abs(off-3.6) > 1e-9 || blur != 3.75 || opacity != 0.3 {
		t.Fatalf("Params(30) = %v, %v, %v", off, blur, opacity)
	}
	_, blur, opacity = DefaultShadowStyle().Params(8)
	if blur != 2 {
		t.Fatalf("blur should not go below the minimum, got %v", blur)
	}
	if opacity != 0.08 {
		t.Fatalf("opacity %v", opacity)
	}
	if _, _, opacity = DefaultShadowStyle().Params(100); opacity != 0.65 {
		t.Fatalf("opacity should be capped, got %v", opacity)
	}
}

func TestDrawShadowNoopWhenStrengthZero(t *testing.T) {
	dst := solid(40, 40, white)
	DrawShadow(NewCanvas(dst), geom.Rect(10, 10, 20, 20), 0, DefaultShadowStyle())
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if dst.RGBAAt(x, y) != white {
				t.Fatalf("pixel (%d,%d) changed", x, y)
			}
		}
	}
}

func TestDrawShadowSitsBelowQuad(t *testing.T) {
	dst := solid(100, 100, white)
	DrawShadow(NewCanvas(dst), geom.Rect(20, 20, 40, 20), 50, DefaultShadowStyle())
	// 50% moves the silhouette 6px down: it now spans y=26..46.
	below := dst.RGBAAt(40, 48).R
	above := dst.RGBAAt(40, 18).R
	if below >= above {
		t.Fatalf("shadow should be heavier below the quad: below=%d above=%d", below, above)
	}
	if got := dst.RGBAAt(40, 36).R; got == 255 {
		t.Fatal("expected shadow under the quad centre")
	}
	if got := dst.RGBAAt(95, 95); got != white {
		t.Fatalf("far pixel changed: %+v", got)
	}
}

func TestDrawShadowOpacityCapped(t *testing.T) {
	dst := solid(200, 200, white)
	DrawShadow(NewCanvas(dst), geom.Rect(40, 40, 120, 120), 100, DefaultShadowStyle())
	got := dst.RGBAAt(100, 112).R
	if got < 80 {
		t.Fatalf("shadow centre too dark: %d", got)
	}
	if got > 200 {
		t.Fatalf("shadow centre too light: %d", got)
	}
}
