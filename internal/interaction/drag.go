// Package interaction turns single-pointer gestures into quad edits: a
// press on a corner handle resizes, a press inside the quad moves it.
package interaction

import (
	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/layer"
)

// DefaultHitRadius is how close a press must be to a corner to grab it.
const DefaultHitRadius = 12

// Mode is the kind of drag in progress.
type Mode int

const (
	Idle Mode = iota
	MovingQuad
	ResizingCorner
)

func (m Mode) String() string {
	switch m {
	case MovingQuad:
		return "move"
	case ResizingCorner:
		return "corner"
	}
	return "idle"
}

// Drag is the state of the current gesture. Layer and Corner are only
// meaningful while Mode is not Idle.
type Drag struct {
	Mode   Mode
	Layer  layer.ID
	Corner geom.Corner
	Last   geom.Point
}

// Layers is the layer store a Controller edits.
type Layers interface {
	Layer(id layer.ID) layer.State
	SetLayer(s layer.State)
}

// Controller is the drag state machine. The zero value uses
// DefaultHitRadius.
type Controller struct {
	HitRadius float64
	drag      Drag
}

// State returns the current drag.
func (c *Controller) State() Drag {
	return c.drag
}

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.drag.Mode != Idle
}

func (c *Controller) radius() float64 {
	if c.HitRadius > 0 {
		return c.HitRadius
	}
	return DefaultHitRadius
}

// Classify reports what a press at p on the active layer would start.
func (c *Controller) Classify(ls Layers, active layer.ID, p geom.Point) (Mode, geom.Corner) {
	q, ok := ls.Layer(active).QuadValue()
	if !ok {
		return Idle, geom.CornerTL
	}
	if corner, hit := geom.HitTestCorner(q, p, c.radius()); hit {
		return ResizingCorner, corner
	}
	if geom.PointInQuad(p, q) {
		return MovingQuad, geom.CornerTL
	}
	return Idle, geom.CornerTL
}

// Down starts a gesture on the active layer. Corner handles take priority
// over the quad body; presses elsewhere leave the controller idle. A press
// while a drag is already running is ignored.
func (c *Controller) Down(ls Layers, active layer.ID, p geom.Point) Drag {
	if c.drag.Mode != Idle {
		return c.drag
	}
	mode, corner := c.Classify(ls, active, p)
	if mode == Idle {
		return c.drag
	}
	c.drag = Drag{Mode: mode, Layer: active, Corner: corner, Last: p}
	return c.drag
}

// Move streams a pointer position into the drag target. It reports whether
// a layer changed.
func (c *Controller) Move(ls Layers, p geom.Point) bool {
	if c.drag.Mode == Idle {
		return false
	}
	s := ls.Layer(c.drag.Layer)
	if s.Quad == nil {
		return false
	}
	dx := p.X - c.drag.Last.X
	dy := p.Y - c.drag.Last.Y
	c.drag.Last = p
	if dx == 0 && dy == 0 {
		return false
	}
	switch c.drag.Mode {
	case ResizingCorner:
		s = layer.MoveCorner(s, c.drag.Corner, dx, dy)
	case MovingQuad:
		s = layer.Move(s, dx, dy)
	}
	ls.SetLayer(s)
	return true
}

// Up ends the gesture.
func (c *Controller) Up() {
	c.drag = Drag{}
}

// Leave ends the gesture when the pointer leaves the canvas or capture is
// lost.
func (c *Controller) Leave() {
	c.drag = Drag{}
}
