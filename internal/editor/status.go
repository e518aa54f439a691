package editor

import (
	"strings"

	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/i18n"
	"github.com/example/tryon/internal/imageio"
	"github.com/example/tryon/internal/layer"
)

// Line is one row of the side panel.
type Line struct {
	Text string
	Kind LineKind
}

// LineKind selects the panel colour of a Line.
type LineKind int

const (
	LineNormal LineKind = iota
	LineTitle
	LineActive
	LineMuted
	LineError
)

// Status describes the layers for the side panel, in locale.
func (s *Session) Status(locale string) []Line {
	var out []Line
	ids := []layer.ID{layer.A}
	if s.Scene.Second {
		ids = append(ids, layer.B)
	}
	for _, id := range ids {
		out = append(out, s.layerStatus(locale, s.Scene.Layer(id), id == s.Scene.Active)...)
		out = append(out, Line{})
	}
	if s.Scene.Second {
		text := i18n.Sprintf(locale, i18n.MsgCompare, round(s.Scene.Compare.SplitPct))
		kind := LineMuted
		if s.Scene.CompareActive() {
			kind = LineNormal
		}
		out = append(out, Line{Text: text, Kind: kind})
	}
	return out
}

func (s *Session) layerStatus(locale string, st layer.State, active bool) []Line {
	title := i18n.Sprintf(locale, i18n.MsgLayer, st.ID.String())
	if st.Code != "" {
		title += "  " + st.Code
	}
	kind := LineTitle
	if active {
		kind = LineActive
	}
	lines := []Line{{Text: title, Kind: kind}}
	if st.Product != nil {
		if name := st.Product.DisplayName(locale); name != "" && name != st.Code {
			lines = append(lines, Line{Text: name, Kind: LineMuted})
		}
	}
	if st.Loading {
		lines = append(lines, Line{Text: i18n.Sprintf(locale, i18n.MsgLoading) + "…", Kind: LineMuted})
	}
	if msg := i18n.ErrorMessage(locale, st.Err); msg != "" {
		lines = append(lines, Line{Text: msg, Kind: LineError})
	}
	if st.Product == nil {
		return lines
	}
	lines = append(lines,
		Line{Text: i18n.Sprintf(locale, i18n.MsgScale, round(st.UserScalePct))},
		Line{Text: i18n.Sprintf(locale, i18n.MsgRotation, round(st.RotationDeg))},
	)
	if st.ShadowEnabled {
		lines = append(lines, Line{Text: i18n.Sprintf(locale, i18n.MsgShadow, round(st.ShadowStrengthPct))})
	} else {
		lines = append(lines, Line{Text: i18n.Sprintf(locale, i18n.MsgShadowOff), Kind: LineMuted})
	}
	if st.SelectedSize != "" {
		lines = append(lines, Line{Text: i18n.Sprintf(locale, i18n.MsgSize, st.SelectedSize)})
		var labels []string
		for _, l := range st.Sizes {
			if l == st.SelectedSize {
				l = "[" + l + "]"
			}
			labels = append(labels, l)
		}
		if len(labels) > 1 {
			lines = append(lines, Line{Text: strings.Join(labels, " "), Kind: LineMuted})
		}
	}
	if st.SKU != "" {
		lines = append(lines, Line{Text: i18n.Sprintf(locale, i18n.MsgSKU, st.SKU), Kind: LineMuted})
	}
	if q, ok := st.QuadValue(); ok && !geom.IsSimple(q) {
		lines = append(lines, Line{Text: i18n.Sprintf(locale, i18n.MsgSelfCrossing), Kind: LineError})
	}
	return lines
}

// SaveExport writes the export image to path and returns the status line
// to show for it.
func SaveExport(sess *Session, path, locale string) (string, error) {
	if err := imageio.SavePNG(path, sess.Export()); err != nil {
		return i18n.Sprintf(locale, i18n.MsgSaveFailed, path), err
	}
	return i18n.Sprintf(locale, i18n.MsgExported, path), nil
}
