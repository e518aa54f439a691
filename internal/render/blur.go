package render

import (
	"image"
	"math"
)

// blurRadius picks the box radius whose three-pass repetition has the
// variance of a Gaussian with standard deviation sigma: r(r+1) = sigma^2.
func blurRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	r := (math.Sqrt(1+4*sigma*sigma) - 1) / 2
	return max(1, int(math.Round(r)))
}

// gaussianAlpha approximates a Gaussian blur with three box passes.
func gaussianAlpha(src *image.Alpha, radius int) *image.Alpha {
	out := src
	for i := 0; i < 3; i++ {
		out = boxBlurAlpha(out, radius)
	}
	return out
}

// boxBlurAlpha averages each pixel over a (2r+1) window horizontally and
// then vertically, using running prefix sums per row and column.
func boxBlurAlpha(src *image.Alpha, radius int) *image.Alpha {
	bounds := src.Bounds()
	if radius <= 0 {
		out := image.NewAlpha(bounds)
		copy(out.Pix, src.Pix)
		return out
	}
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	dst := image.NewAlpha(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[row+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(0, x-radius)
			x1 := min(w-1, x+radius)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (2*radius + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(0, y-radius)
			y1 := min(h-1, y+radius)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (2*radius + 1))
		}
	}
	return dst
}
