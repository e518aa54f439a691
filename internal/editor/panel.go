package editor

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/tryon/internal/compose"
	"github.com/example/tryon/internal/theme"
)

const (
	// PanelWidth is the width of the control panel right of the canvas.
	PanelWidth  = 260
	panelPad    = 12
	lineSpacing = 6
)

var (
	faceOnce  sync.Once
	panelFace font.Face
	smallFace font.Face
)

// faces returns the panel faces, falling back to the fixed bitmap face if
// the embedded TTF cannot be parsed.
func faces() (font.Face, font.Face) {
	faceOnce.Do(func() {
		panelFace, smallFace = basicfont.Face7x13, basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Error().Err(err).Msg("parse font")
			return
		}
		if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 15, DPI: 72, Hinting: font.HintingFull}); err == nil {
			panelFace = face
		}
		if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull}); err == nil {
			smallFace = face
		}
	})
	return panelFace, smallFace
}

// ThemeRender applies the theme's canvas colours to o.
func ThemeRender(o compose.Options, t *theme.Theme) compose.Options {
	if t == nil {
		return o
	}
	o.Background = t.Background
	o.HandleColor = t.Handle
	o.DividerColor = t.Divider
	return o
}

func lineColor(t *theme.Theme, k LineKind) color.Color {
	switch k {
	case LineActive:
		return t.PanelActive
	case LineMuted:
		return t.PanelMuted
	case LineError:
		return t.Error
	}
	return t.PanelText
}

// panelState is what drawPanel needs from the event loop.
type panelState struct {
	lines   []Line
	inputOn bool
	input   string
	message string
	hints   []Binding
}

func drawText(dst draw.Image, face font.Face, col color.Color, x, y int, s string) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

// drawPanel fills r with the control panel.
func drawPanel(dst *image.RGBA, r image.Rectangle, t *theme.Theme, st panelState) {
	big, small := faces()
	draw.Draw(dst, r, image.NewUniform(t.PanelBackground), image.Point{}, draw.Src)
	clip := dst.SubImage(r).(*image.RGBA)

	x := r.Min.X + panelPad
	y := r.Min.Y + panelPad
	step := big.Metrics().Height.Ceil() + lineSpacing

	// Code input box.
	box := image.Rect(x-4, y, r.Max.X-panelPad+4, y+step+4)
	draw.Draw(clip, box, image.NewUniform(t.InputBackground), image.Point{}, draw.Src)
	label := st.input
	if st.inputOn {
		label += "|"
	} else if label == "" {
		label = "/"
	}
	drawText(clip, big, t.InputText, x, y+big.Metrics().Ascent.Ceil()+2, label)
	y = box.Max.Y + step

	for _, l := range st.lines {
		if l.Text != "" {
			face := big
			if l.Kind == LineMuted {
				face = small
			}
			drawText(clip, face, lineColor(t, l.Kind), x, y, l.Text)
		}
		y += step
	}

	if st.message != "" {
		drawText(clip, big, t.PanelActive, x, y, st.message)
		y += step
	}

	hintStep := small.Metrics().Height.Ceil() + 2
	hy := r.Max.Y - panelPad - hintStep*len(st.hints)
	if hy < y {
		return
	}
	for _, b := range st.hints {
		hy += hintStep
		drawText(clip, small, t.PanelMuted, x, hy, b.String()+"  "+b.Help)
	}
}
