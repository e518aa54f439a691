// Package compose assembles the try-on frame: background photo, up to two
// warped rug layers, the split compare view and the edit handles.
package compose

import (
	"image"
	"math"

	"github.com/example/tryon/internal/layer"
)

// Compare is the split view setting.
type Compare struct {
	Enabled  bool
	SplitPct float64
}

// DefaultSplit puts the divider in the middle.
const DefaultSplit = 50

// Scene is everything a frame is drawn from.
type Scene struct {
	Width  int
	Height int
	Photo  image.Image
	Layers [layer.Count]layer.State
	Active layer.ID
	// Second is true while the second layer's controls are shown.
	Second  bool
	Compare Compare
}

// NewScene returns an empty w x h scene with layer A active.
func NewScene(w, h int) Scene {
	return Scene{
		Width:   w,
		Height:  h,
		Layers:  [layer.Count]layer.State{layer.Empty(layer.A), layer.Empty(layer.B)},
		Active:  layer.A,
		Compare: Compare{SplitPct: DefaultSplit},
	}
}

// Layer returns a copy of layer id.
func (s *Scene) Layer(id layer.ID) layer.State {
	return s.Layers[id]
}

// SetLayer stores st under its own ID.
func (s *Scene) SetLayer(st layer.State) {
	s.Layers[st.ID] = st
}

// Update replaces layer id with f applied to it.
func (s *Scene) Update(id layer.ID, f func(layer.State) layer.State) {
	st := f(s.Layers[id])
	st.ID = id
	s.Layers[id] = st
}

// ActiveLayer returns the layer the controls and handles apply to.
func (s *Scene) ActiveLayer() layer.State {
	return s.Layers[s.Active]
}

// CompareActive reports whether the split view is drawn: it needs the
// toggle and both layers populated.
func (s *Scene) CompareActive() bool {
	return s.Compare.Enabled &&
		s.Layers[layer.A].Populated() &&
		s.Layers[layer.B].Populated()
}

// SetCompare toggles the split view.
func (s *Scene) SetCompare(enabled bool) {
	s.Compare.Enabled = enabled
}

// SetSplit moves the divider, clamped to [0, 100] percent.
func (s *Scene) SetSplit(pct float64) {
	if math.IsNaN(pct) {
		return
	}
	s.Compare.SplitPct = math.Max(0, math.Min(100, pct))
}

// SetActive focuses a layer. Focusing B reveals the second layer.
func (s *Scene) SetActive(id layer.ID) {
	if id == layer.B {
		s.Second = true
	}
	s.Active = id
}

// ToggleSecond adds or removes the second rug. Removing it clears layer B,
// leaves compare mode and focuses A; adding it focuses B.
func (s *Scene) ToggleSecond() {
	if s.Second {
		s.Second = false
		s.Compare.Enabled = false
		s.Layers[layer.B] = layer.Clear(s.Layers[layer.B])
		s.Active = layer.A
		return
	}
	s.Second = true
	s.Active = layer.B
}

// Resize changes the canvas size. Existing quads keep their positions;
// layers still waiting for a quad are seeded against the new size.
func (s *Scene) Resize(w, h int, seed layer.Seed) {
	s.Width = w
	s.Height = h
	for i := range s.Layers {
		s.Layers[i] = layer.SeedQuad(s.Layers[i], w, h, seed)
	}
}

// SetPhoto replaces the background photo.
func (s *Scene) SetPhoto(img image.Image) {
	s.Photo = img
}

// SetTexture installs a decoded texture on layer id and seeds its quad.
func (s *Scene) SetTexture(id layer.ID, img image.Image, seed layer.Seed) {
	s.Layers[id] = layer.SetTexture(s.Layers[id], img, s.Width, s.Height, seed)
}
