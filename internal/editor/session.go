// Package editor runs a try-on session: product loads, control changes,
// pointer gestures and export, headless or inside a shiny window.
package editor

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/tryon/internal/catalog"
	"github.com/example/tryon/internal/compose"
	"github.com/example/tryon/internal/geom"
	"github.com/example/tryon/internal/interaction"
	"github.com/example/tryon/internal/layer"
)

// Fetcher resolves a product image location to a decoded image.
type Fetcher interface {
	Fetch(ctx context.Context, loc string) (image.Image, error)
}

// Options configures a Session.
type Options struct {
	Limits         layer.Limits
	Seed           layer.Seed
	HitRadius      float64
	ShadowEnabled  bool
	ShadowStrength float64
	Render         compose.Options
	Locale         string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Limits:         layer.DefaultLimits(),
		Seed:           layer.DefaultSeed(),
		HitRadius:      interaction.DefaultHitRadius,
		ShadowEnabled:  true,
		ShadowStrength: layer.DefaultShadowStrength,
		Render:         compose.DefaultOptions(),
		Locale:         "en",
	}
}

// LoadRequest is one pending product or texture load.
type LoadRequest struct {
	Layer layer.ID
	Code  string
	// Product is set when only the texture changes.
	Product *catalog.Product
	Image   string
	Gen     uint64
}

// LoadResult is the outcome of a LoadRequest.
type LoadResult struct {
	LoadRequest
	Product *catalog.Product
	Texture image.Image
	Err     error
}

// Session owns the scene and applies every edit to it. It is not safe for
// concurrent use: Fetch may run on another goroutine, everything else
// belongs to one owner.
type Session struct {
	Scene compose.Scene

	opts     Options
	ctrl     interaction.Controller
	lookup   catalog.Lookup
	textures Fetcher
	gen      [layer.Count]uint64
	log      zerolog.Logger
}

// NewSession returns an empty w x h session.
func NewSession(w, h int, lookup catalog.Lookup, textures Fetcher, opts Options) *Session {
	return &Session{
		Scene:    compose.NewScene(w, h),
		opts:     opts,
		ctrl:     interaction.Controller{HitRadius: opts.HitRadius},
		lookup:   lookup,
		textures: textures,
		log:      log.With().Str("module", "editor").Logger(),
	}
}

// Options returns the session options.
func (s *Session) Options() Options {
	return s.opts
}

// Layer returns a copy of layer id.
func (s *Session) Layer(id layer.ID) layer.State {
	return s.Scene.Layer(id)
}

// SetLayer stores a layer.
func (s *Session) SetLayer(st layer.State) {
	s.Scene.SetLayer(st)
}

func (s *Session) update(f func(layer.State) layer.State) {
	s.Scene.Update(s.Scene.Active, f)
}

// BeginLoad starts looking up code for layer id. It returns false when
// there is nothing to fetch; a blank code records ErrEmptyCode on the
// layer. Results of earlier requests for the same layer become stale.
func (s *Session) BeginLoad(id layer.ID, code string) (LoadRequest, bool) {
	code = catalog.NormalizeCode(code)
	s.gen[id]++
	if code == "" {
		s.Scene.Update(id, func(st layer.State) layer.State {
			return layer.Fail(layer.SetCode(st, ""), catalog.ErrEmptyCode)
		})
		return LoadRequest{}, false
	}
	if id == layer.B {
		s.Scene.Second = true
	}
	s.Scene.Update(id, func(st layer.State) layer.State {
		return layer.StartLoading(layer.SetCode(st, code))
	})
	return LoadRequest{Layer: id, Code: code, Gen: s.gen[id]}, true
}

// BeginTexture switches layer id to product image index and starts
// fetching it. The quad is reseeded when the image arrives.
func (s *Session) BeginTexture(id layer.ID, index int) (LoadRequest, bool) {
	st := s.Scene.Layer(id)
	if st.Product == nil || index == st.ImageIndex {
		return LoadRequest{}, false
	}
	next := layer.SelectImage(st, index)
	if next.ImageIndex != index {
		return LoadRequest{}, false
	}
	s.gen[id]++
	s.Scene.SetLayer(layer.StartLoading(next))
	return LoadRequest{Layer: id, Code: st.Code, Product: st.Product, Image: next.ImageURL(), Gen: s.gen[id]}, true
}

// NextTexture cycles the active layer to its next product image.
func (s *Session) NextTexture() (LoadRequest, bool) {
	st := s.Scene.ActiveLayer()
	if st.Product == nil || len(st.Product.Images) < 2 {
		return LoadRequest{}, false
	}
	return s.BeginTexture(st.ID, (st.ImageIndex+1)%len(st.Product.Images))
}

// Fetch performs the lookup and texture download for req. It only reads
// immutable session collaborators and may run on any goroutine.
func (s *Session) Fetch(ctx context.Context, req LoadRequest) LoadResult {
	res := LoadResult{LoadRequest: req, Product: req.Product}
	if res.Product == nil {
		if s.lookup == nil {
			res.Err = fmt.Errorf("lookup %s: no catalog configured", req.Code)
			return res
		}
		p, err := s.lookup.Lookup(ctx, req.Code)
		if err != nil {
			res.Err = err
			return res
		}
		res.Product = p
		if len(p.Images) > 0 {
			res.Image = p.Images[0]
		}
	}
	if res.Image == "" {
		res.Err = fmt.Errorf("product %s: no images", req.Code)
		return res
	}
	if s.textures == nil {
		res.Err = fmt.Errorf("product %s: no texture source configured", req.Code)
		return res
	}
	img, err := s.textures.Fetch(ctx, res.Image)
	if err != nil {
		res.Err = err
		return res
	}
	res.Texture = img
	return res
}

// Apply installs a finished load. Stale results are dropped and reported
// as false. A failure keeps whatever the layer already shows.
func (s *Session) Apply(res LoadResult) bool {
	id := res.Layer
	if res.Gen != s.gen[id] {
		s.log.Debug().Str("layer", id.String()).Uint64("gen", res.Gen).Msg("dropping stale load")
		return false
	}
	if res.Err != nil {
		s.log.Warn().Err(res.Err).Str("layer", id.String()).Str("code", res.Code).Msg("load failed")
		s.Scene.Update(id, func(st layer.State) layer.State { return layer.Fail(st, res.Err) })
		return true
	}
	w, h := s.Scene.Width, s.Scene.Height
	if res.LoadRequest.Product != nil {
		// Texture change: keep settings, seed a fresh quad.
		s.Scene.Update(id, func(st layer.State) layer.State {
			return layer.SetTexture(st, res.Texture, w, h, s.opts.Seed)
		})
	} else {
		s.Scene.Update(id, func(st layer.State) layer.State {
			next := layer.LoadProduct(st, res.Product)
			next = layer.SetShadow(next, s.opts.ShadowEnabled, s.opts.ShadowStrength)
			return layer.SetTexture(next, res.Texture, w, h, s.opts.Seed)
		})
	}
	s.log.Info().Str("layer", id.String()).Str("code", res.Code).Msg("layer loaded")
	return true
}

// Load runs a lookup synchronously.
func (s *Session) Load(ctx context.Context, id layer.ID, code string) error {
	req, ok := s.BeginLoad(id, code)
	if !ok {
		return s.Scene.Layer(id).Err
	}
	res := s.Fetch(ctx, req)
	s.Apply(res)
	return res.Err
}

// SetPhoto replaces the background photo.
func (s *Session) SetPhoto(img image.Image) {
	s.Scene.SetPhoto(img)
}

// Resize changes the canvas size, seeding layers that are still waiting.
func (s *Session) Resize(w, h int) {
	if w == s.Scene.Width && h == s.Scene.Height {
		return
	}
	s.Scene.Resize(w, h, s.opts.Seed)
}

// SetScale sets the active layer's user scale percentage.
func (s *Session) SetScale(pct float64) {
	s.update(func(st layer.State) layer.State { return layer.SetUserScale(st, pct, s.opts.Limits) })
}

// AdjustScale changes the active layer's user scale by delta points.
func (s *Session) AdjustScale(delta float64) {
	s.SetScale(s.Scene.ActiveLayer().UserScalePct + delta)
}

// SetRotation sets the active layer's rotation in degrees.
func (s *Session) SetRotation(deg float64) {
	s.update(func(st layer.State) layer.State { return layer.SetRotation(st, deg, s.opts.Limits) })
}

// AdjustRotation turns the active layer by delta degrees.
func (s *Session) AdjustRotation(delta float64) {
	s.SetRotation(s.Scene.ActiveLayer().RotationDeg + delta)
}

// SetShadow sets the active layer's shadow.
func (s *Session) SetShadow(enabled bool, strength float64) {
	s.update(func(st layer.State) layer.State { return layer.SetShadow(st, enabled, strength) })
}

// ToggleShadow flips the active layer's shadow.
func (s *Session) ToggleShadow() {
	st := s.Scene.ActiveLayer()
	s.SetShadow(!st.ShadowEnabled, st.ShadowStrengthPct)
}

// AdjustShadow changes the active layer's shadow strength by delta.
func (s *Session) AdjustShadow(delta float64) {
	st := s.Scene.ActiveLayer()
	s.SetShadow(st.ShadowEnabled, st.ShadowStrengthPct+delta)
}

// SetSize selects a declared size on the active layer.
func (s *Session) SetSize(label string) {
	s.update(func(st layer.State) layer.State { return layer.SetDeclaredSize(st, label) })
}

// StepSize moves the active layer's size selection by step through its
// size list, wrapping around.
func (s *Session) StepSize(step int) {
	st := s.Scene.ActiveLayer()
	n := len(st.Sizes)
	if n == 0 {
		return
	}
	i := 0
	for j, l := range st.Sizes {
		if l == st.SelectedSize {
			i = j
			break
		}
	}
	i = ((i+step)%n + n) % n
	s.SetSize(st.Sizes[i])
}

// ResetQuad reseeds the active layer's quad.
func (s *Session) ResetQuad() {
	w, h := s.Scene.Width, s.Scene.Height
	s.update(func(st layer.State) layer.State { return layer.ResetQuad(st, w, h, s.opts.Seed) })
}

// Nudge moves the active layer's quad.
func (s *Session) Nudge(dx, dy float64) {
	s.update(func(st layer.State) layer.State { return layer.Move(st, dx, dy) })
}

// SetActive focuses a layer. A drag in progress keeps the layer it was
// started on.
func (s *Session) SetActive(id layer.ID) {
	s.Scene.SetActive(id)
}

// SwitchActive focuses the other layer when the second rug is shown.
func (s *Session) SwitchActive() {
	if !s.Scene.Second {
		return
	}
	s.SetActive(s.Scene.Active.Other())
}

// ToggleSecond adds or removes the second rug. Pending loads for B are
// abandoned when it is removed.
func (s *Session) ToggleSecond() {
	if s.Scene.Second {
		s.gen[layer.B]++
	}
	s.ctrl.Up()
	s.Scene.ToggleSecond()
}

// SetCompare toggles the split view.
func (s *Session) SetCompare(enabled bool) {
	s.Scene.SetCompare(enabled)
}

// SetSplit moves the compare divider.
func (s *Session) SetSplit(pct float64) {
	s.Scene.SetSplit(pct)
}

// PointerDown starts a gesture on the active layer.
func (s *Session) PointerDown(p geom.Point) interaction.Drag {
	return s.ctrl.Down(s, s.Scene.Active, p)
}

// PointerMove feeds a pointer position; it reports whether a quad changed.
func (s *Session) PointerMove(p geom.Point) bool {
	return s.ctrl.Move(s, p)
}

// PointerUp ends the gesture.
func (s *Session) PointerUp() {
	s.ctrl.Up()
}

// PointerLeave ends the gesture when the pointer is lost.
func (s *Session) PointerLeave() {
	s.ctrl.Leave()
}

// Drag returns the gesture in progress.
func (s *Session) Drag() interaction.Drag {
	return s.ctrl.State()
}

// Hover reports what a press at p would start.
func (s *Session) Hover(p geom.Point) interaction.Mode {
	m, _ := s.ctrl.Classify(s, s.Scene.Active, p)
	return m
}

// Render draws the scene with handles.
func (s *Session) Render() *image.RGBA {
	return compose.RenderImage(&s.Scene, s.opts.Render)
}

// Export draws the scene without handles.
func (s *Session) Export() *image.RGBA {
	o := s.opts.Render
	o.Handles = false
	return compose.RenderImage(&s.Scene, o)
}

// SKU returns the active layer's SKU for its selected size.
func (s *Session) SKU() string {
	return s.Scene.ActiveLayer().SKU
}

// round reports v as an integer for display.
func round(v float64) int {
	return int(math.Round(v))
}
