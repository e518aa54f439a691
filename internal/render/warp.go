package render

import (
	"image"
	"math"

	"github.com/example/tryon/internal/geom"
)

const (
	DefaultGrid = 16
	MinGrid     = 8
	MaxGrid     = 32
)

// ClampGrid returns DefaultGrid for n <= 0 and otherwise clamps n to
// [MinGrid, MaxGrid].
func ClampGrid(n int) int {
	if n <= 0 {
		return DefaultGrid
	}
	return min(MaxGrid, max(MinGrid, n))
}

// DrawImageToQuad warps img into q. The image's unit square is cut into a
// grid x grid lattice; every cell is split along its TL-BR diagonal and each
// triangle is drawn through the exact affine map from its source triangle
// to the bilinear image of that triangle in q. It returns the number of
// triangles drawn; degenerate ones are skipped.
func DrawImageToQuad(s Surface, img image.Image, q geom.Quad, grid int) int {
	if img == nil {
		return 0
	}
	sb := img.Bounds()
	if sb.Empty() {
		return 0
	}
	grid = ClampGrid(grid)
	sw := float64(sb.Dx())
	sh := float64(sb.Dy())
	ox := float64(sb.Min.X)
	oy := float64(sb.Min.Y)

	drawn := 0
	for j := 0; j < grid; j++ {
		v0 := float64(j) / float64(grid)
		v1 := float64(j+1) / float64(grid)
		for i := 0; i < grid; i++ {
			u0 := float64(i) / float64(grid)
			u1 := float64(i+1) / float64(grid)

			d00 := geom.Interpolate(q, u0, v0)
			d10 := geom.Interpolate(q, u1, v0)
			d11 := geom.Interpolate(q, u1, v1)
			d01 := geom.Interpolate(q, u0, v1)

			s00 := geom.Pt(ox+u0*sw, oy+v0*sh)
			s10 := geom.Pt(ox+u1*sw, oy+v0*sh)
			s11 := geom.Pt(ox+u1*sw, oy+v1*sh)
			s01 := geom.Pt(ox+u0*sw, oy+v1*sh)

			if drawTriangle(s, img, [3]geom.Point{s00, s10, s11}, [3]geom.Point{d00, d10, d11}) {
				drawn++
			}
			if drawTriangle(s, img, [3]geom.Point{s00, s11, s01}, [3]geom.Point{d00, d11, d01}) {
				drawn++
			}
		}
	}
	return drawn
}

func drawTriangle(s Surface, img image.Image, src, dst [3]geom.Point) bool {
	m, ok := geom.AffineFromTriangles(src[0], src[1], src[2], dst[0], dst[1], dst[2])
	if !ok || math.Abs(m.Determinant()) < 1e-9 {
		return false
	}
	s.Save()
	defer s.Restore()
	s.SetTransform(m)
	s.ClipPath(src[:])
	s.DrawImage(img)
	return true
}
