package render

import (
	"image"
	"math"
	"slices"

	"golang.org/x/image/vector"

	"github.com/example/tryon/internal/geom"
)

// pathBounds returns the integer rectangle covering pts.
func pathBounds(pts []geom.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsInf(maxX, 0) || math.IsInf(maxY, 0) {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// rasterize returns the anti-aliased coverage of the polygon pts inside
// limit, with pad extra pixels around the path for blurring.
func rasterize(pts []geom.Point, limit image.Rectangle, pad int) *image.Alpha {
	r := pathBounds(pts).Inset(-pad).Intersect(limit)
	if r.Empty() || len(pts) < 3 {
		return image.NewAlpha(image.Rectangle{})
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	mask := image.NewAlpha(r)
	z.Draw(mask, r, image.Opaque, image.Point{})
	return mask
}

// sampleMask marks every pixel whose centre lies inside the polygon pts
// (even-odd rule). Rows use a half-open rule and spans are inclusive, so
// polygons that share an edge leave no unpainted pixel between them.
func sampleMask(pts []geom.Point, limit image.Rectangle) *image.Alpha {
	r := pathBounds(pts).Intersect(limit)
	if r.Empty() || len(pts) < 3 {
		return image.NewAlpha(image.Rectangle{})
	}
	mask := image.NewAlpha(r)
	var xs []float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if a.Y > b.Y {
				a, b = b, a
			}
			if cy < a.Y || cy >= b.Y {
				continue
			}
			xs = append(xs, a.X+(cy-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
		slices.Sort(xs)
		row := mask.Pix[(y-r.Min.Y)*mask.Stride:]
		for k := 0; k+1 < len(xs); k += 2 {
			x0 := max(r.Min.X, int(math.Ceil(xs[k]-0.5)))
			x1 := min(r.Max.X-1, int(math.Floor(xs[k+1]-0.5)))
			for x := x0; x <= x1; x++ {
				row[x-r.Min.X] = 0xff
			}
		}
	}
	return mask
}

// intersectMasks returns the pixelwise minimum of a and b over their common
// rectangle. A nil argument means "no clip".
func intersectMasks(a, b *image.Alpha) *image.Alpha {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	r := a.Rect.Intersect(b.Rect)
	out := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			va := a.Pix[a.PixOffset(x, y)]
			vb := b.Pix[b.PixOffset(x, y)]
			out.Pix[out.PixOffset(x, y)] = min(va, vb)
		}
	}
	return out
}
