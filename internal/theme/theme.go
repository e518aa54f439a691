package theme

import (
	"image/color"
)

// Theme is the editor palette.
type Theme struct {
	Name string

	// Canvas
	Background color.RGBA // Fill behind the photo, shown until one loads
	Handle     color.RGBA // Corner handles of the active rug
	Divider    color.RGBA // Compare split line
	Outline    color.RGBA // Outline of the active quad while dragging

	// Panel
	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelMuted      color.RGBA // Secondary text: sizes, SKU
	PanelActive     color.RGBA // Label of the focused rug
	Error           color.RGBA
	InputBackground color.RGBA
	InputText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:            "Default",
		Background:      color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
		Handle:          color.RGBA{0x11, 0x18, 0x27, 0xff},
		Divider:         color.RGBA{0xff, 0xff, 0xff, 0xcc},
		Outline:         color.RGBA{0x25, 0x63, 0xeb, 0xff},
		PanelBackground: color.RGBA{0xff, 0xff, 0xff, 0xff},
		PanelText:       color.RGBA{0x11, 0x18, 0x27, 0xff},
		PanelMuted:      color.RGBA{0x6b, 0x72, 0x80, 0xff},
		PanelActive:     color.RGBA{0x25, 0x63, 0xeb, 0xff},
		Error:           color.RGBA{0xdc, 0x26, 0x26, 0xff},
		InputBackground: color.RGBA{0xf9, 0xfa, 0xfb, 0xff},
		InputText:       color.RGBA{0x11, 0x18, 0x27, 0xff},
	}
}
