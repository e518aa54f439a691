package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/example/tryon/internal/catalog"
	"github.com/example/tryon/internal/editor"
)

var errNoCatalog = errors.New("no catalog configured: use -catalog or TRYON_CATALOG")

// openCatalog returns the product lookup and texture fetcher for the
// configured catalog. A URL selects the product API; anything else is a
// catalog file whose relative image paths resolve next to it.
func (r *root) openCatalog() (catalog.Lookup, *catalog.Textures, error) {
	src := strings.TrimSpace(r.config.Catalog)
	if src == "" {
		return nil, nil, errNoCatalog
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return catalog.NewClient(src), catalog.NewTextures("", 0), nil
	}
	m, err := catalog.LoadFile(src)
	if err != nil {
		return nil, nil, err
	}
	return m, catalog.NewTextures(filepath.Dir(src), 0), nil
}

func (r *root) sessionOptions() editor.Options {
	cfg := r.config
	o := editor.DefaultOptions()
	o.Limits = cfg.Limits()
	o.HitRadius = cfg.Editor.CornerRadius
	o.ShadowEnabled = cfg.Shadow.Enabled
	o.ShadowStrength = cfg.Shadow.Strength
	o.Render.Grid = cfg.Editor.Grid
	o.Render.HandleRadius = cfg.Editor.HandleRadius
	o.Render = editor.ThemeRender(o.Render, r.currentTheme())
	o.Locale = cfg.Locale
	return o
}

// newSession opens the catalog and returns an empty w x h session. Zero
// sizes fall back to the configured canvas.
func (r *root) newSession(w, h int) (*editor.Session, error) {
	lookup, textures, err := r.openCatalog()
	if err != nil {
		return nil, err
	}
	if w <= 0 {
		w = r.config.Canvas.Width
	}
	if h <= 0 {
		h = r.config.Canvas.Height
	}
	return editor.NewSession(w, h, lookup, textures, r.sessionOptions()), nil
}
