package render

import (
	"image/color"
	"math"

	"github.com/example/tryon/internal/geom"
)

// ShadowStyle maps a layer's shadow strength percentage onto the silhouette
// drawn beneath it.
type ShadowStyle struct {
	// OffsetPerPct is the downward shift in pixels per strength percent.
	OffsetPerPct float64
	// BlurPerPct is the Gaussian deviation in pixels per strength percent.
	BlurPerPct float64
	// MinBlur is the smallest deviation used for any visible shadow.
	MinBlur float64
	// MaxOpacity caps the silhouette alpha so stacked layers never turn
	// the floor black.
	MaxOpacity float64
}

// DefaultShadowStyle returns the contact shadow used by the editor: a
// 30% strength shadow sits 3.6px low with a 3.75px blur at 0.3 opacity.
func DefaultShadowStyle() ShadowStyle {
	return ShadowStyle{
		OffsetPerPct: 0.12,
		BlurPerPct:   1.0 / 8,
		MinBlur:      2,
		MaxOpacity:   0.65,
	}
}

// Params resolves the offset, blur and opacity for strengthPct.
func (s ShadowStyle) Params(strengthPct float64) (offset, blur, opacity float64) {
	if strengthPct <= 0 {
		return 0, 0, 0
	}
	offset = strengthPct * s.OffsetPerPct
	blur = math.Max(s.MinBlur, strengthPct*s.BlurPerPct)
	opacity = math.Min(s.MaxOpacity, strengthPct/100)
	return offset, blur, opacity
}

// DrawShadow fills the quad's silhouette, shifted down and blurred, in
// canvas space. Nothing is drawn for strengthPct <= 0. Callers draw the
// layer texture afterwards so the shadow stays beneath it.
func DrawShadow(s Surface, q geom.Quad, strengthPct float64, style ShadowStyle) {
	offset, blur, opacity := style.Params(strengthPct)
	if opacity <= 0 {
		return
	}
	s.Save()
	defer s.Restore()
	s.SetTransform(geom.Identity())
	path := geom.Translate(q, 0, offset).Points()
	s.FillPath(path, color.NRGBA{A: uint8(opacity*255 + 0.5)}, blur)
}
