// Package layer holds the state of one rug layer and the reducers that
// update it. Every reducer takes a State by value and returns the next one;
// the caller's copy is never modified.
package layer

import (
	"fmt"
	"image"
	"strings"

	"github.com/example/tryon/internal/catalog"
	"github.com/example/tryon/internal/geom"
)

// ID selects one of the two layers.
type ID int

const (
	A ID = iota
	B
)

// Count is the number of layers an editor holds.
const Count = 2

func (id ID) String() string {
	if id == B {
		return "B"
	}
	return "A"
}

// Other returns the opposite layer.
func (id ID) Other() ID {
	if id == A {
		return B
	}
	return A
}

// ParseID accepts "a", "A", "b" or "B".
func ParseID(s string) (ID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return A, nil
	case "B":
		return B, nil
	}
	return A, fmt.Errorf("unknown layer %q", s)
}

// Defaults applied whenever a layer is created or a product is loaded.
const (
	DefaultUserScale      = 100
	DefaultShadowStrength = 30
)

// State is one layer: a product, its texture, the quad it is warped into
// and the settings the controls edit.
type State struct {
	ID   ID
	Code string

	Product    *catalog.Product
	ImageIndex int
	Texture    image.Image
	// Quad is nil until a texture has been loaded and a quad seeded.
	Quad *geom.Quad

	UserScalePct      float64
	SizeScale         float64
	RotationDeg       float64
	ShadowEnabled     bool
	ShadowStrengthPct float64

	Sizes        []string
	BaseSize     string
	SelectedSize string
	SKU          string

	Loading bool
	Err     error
}

// Empty returns a layer with default settings and nothing loaded.
func Empty(id ID) State {
	return State{
		ID:                id,
		UserScalePct:      DefaultUserScale,
		SizeScale:         1,
		ShadowEnabled:     true,
		ShadowStrengthPct: DefaultShadowStrength,
	}
}

// ActualScale is the combined user and size multiplier applied to the quad
// since it was seeded.
func (s State) ActualScale() float64 {
	return s.UserScalePct / 100 * s.SizeScale
}

// Populated reports whether the layer has something to draw.
func (s State) Populated() bool {
	return s.Texture != nil && s.Quad != nil
}

// ImageURL returns the selected product image, or "".
func (s State) ImageURL() string {
	if s.Product == nil || len(s.Product.Images) == 0 {
		return ""
	}
	i := s.ImageIndex
	if i < 0 || i >= len(s.Product.Images) {
		i = 0
	}
	return s.Product.Images[i]
}

// QuadValue returns the quad and whether it has been seeded.
func (s State) QuadValue() (geom.Quad, bool) {
	if s.Quad == nil {
		return geom.Quad{}, false
	}
	return *s.Quad, true
}

func (s State) withQuad(q geom.Quad) State {
	s.Quad = &q
	return s
}
