// Package render draws textures into quads on a 2D surface: the
// piecewise-affine warp, contact shadows, and editor markers.
package render

import (
	"image"
	"image/color"

	"github.com/example/tryon/internal/geom"
)

// Surface is the drawing backend the warp and shadow code target. Paths
// and images are given in user space and mapped to the surface through the
// current transform, like an HTML canvas context.
type Surface interface {
	// Bounds reports the device pixel rectangle.
	Bounds() image.Rectangle
	// Save pushes the current transform and clip.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	// SetTransform replaces the current user-to-device transform.
	SetTransform(m geom.Affine)
	// ClipPath intersects the clip with the closed polygon path.
	ClipPath(path []geom.Point)
	// DrawImage draws img with its bounds origin at user-space (0, 0).
	DrawImage(img image.Image)
	// FillPath fills a closed polygon, optionally blurred by a Gaussian with
	// the given standard deviation in device pixels.
	FillPath(path []geom.Point, c color.Color, blur float64)
	// Clear fills the whole surface with c, ignoring transform and clip.
	Clear(c color.Color)
}
