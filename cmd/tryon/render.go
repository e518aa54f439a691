package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/tryon/internal/clipboard"
	"github.com/example/tryon/internal/editor"
	"github.com/example/tryon/internal/imageio"
	"github.com/example/tryon/internal/layer"
	"github.com/example/tryon/internal/render"
)

// layerFlags are the per-rug settings of a headless render. A negative
// shadow keeps the configured default.
type layerFlags struct {
	code   string
	size   string
	scale  float64
	rotate float64
	shadow float64
}

type renderCmd struct {
	*root
	fs          *flag.FlagSet
	photo       string
	layers      [layer.Count]layerFlags
	noShadow    bool
	compare     bool
	split       float64
	active      string
	output      string
	stdout      bool
	toClipboard bool
	width       int
	height      int
	grid        int
	timeout     time.Duration
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (l *layerFlags) register(fs *flag.FlagSet, suffix string) {
	fs.StringVar(&l.code, suffix, "", "article code for rug "+strings.ToUpper(suffix))
	fs.StringVar(&l.size, "size-"+suffix, "", "declared size for rug "+strings.ToUpper(suffix)+", e.g. 160x230")
	fs.Float64Var(&l.scale, "scale-"+suffix, 100, "scale percent for rug "+strings.ToUpper(suffix))
	fs.Float64Var(&l.rotate, "rotate-"+suffix, 0, "rotation in degrees for rug "+strings.ToUpper(suffix))
	fs.Float64Var(&l.shadow, "shadow-"+suffix, -1, "shadow strength percent for rug "+strings.ToUpper(suffix)+" (negative keeps the default)")
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.photo, "photo", "", "room photo to place the rug on")
	c.layers[layer.A].register(fs, "a")
	c.layers[layer.B].register(fs, "b")
	fs.BoolVar(&c.noShadow, "no-shadow", false, "disable shadows on every rug")
	fs.BoolVar(&c.compare, "compare", false, "split the frame between rug A and rug B")
	fs.Float64Var(&c.split, "split", 50, "divider position in percent of the width")
	fs.StringVar(&c.active, "active", "a", "rug whose settings are reported (a or b)")
	fs.StringVar(&c.output, "output", editor.DefaultExportName, "write the image to this file path")
	fs.BoolVar(&c.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the image to the clipboard")
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels (default from config)")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels (default from config)")
	fs.IntVar(&c.grid, "grid", 0, "warp grid subdivisions, 8 to 32 (default from config)")
	fs.DurationVar(&c.timeout, "timeout", 30*time.Second, "give up loading products after this long")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 && c.photo == "" {
		c.photo = fs.Arg(0)
	}
	if strings.TrimSpace(c.layers[layer.A].code) == "" {
		return nil, &UsageError{of: c}
	}
	if c.stdout && c.toClipboard {
		return nil, errors.New("-stdout cannot be used with -to-clipboard")
	}
	if c.compare && strings.TrimSpace(c.layers[layer.B].code) == "" {
		return nil, errors.New("-compare needs a second rug (-b)")
	}
	if _, err := layer.ParseID(c.active); err != nil {
		return nil, err
	}
	if c.grid != 0 && (c.grid < render.MinGrid || c.grid > render.MaxGrid) {
		return nil, fmt.Errorf("-grid must be between %d and %d", render.MinGrid, render.MaxGrid)
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	if c.grid != 0 {
		c.config.Editor.Grid = c.grid
	}
	sess, err := c.newSession(c.width, c.height)
	if err != nil {
		return err
	}
	if c.photo != "" {
		img, err := imageio.LoadPhotoFile(c.photo, c.config.Canvas.MaxPhoto)
		if err != nil {
			return fmt.Errorf("failed to load photo: %w", err)
		}
		sess.SetPhoto(img)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	for _, id := range []layer.ID{layer.A, layer.B} {
		lf := c.layers[id]
		if strings.TrimSpace(lf.code) == "" {
			continue
		}
		if err := sess.Load(ctx, id, lf.code); err != nil {
			return fmt.Errorf("failed to load rug %s (%s): %w", id, lf.code, err)
		}
		c.apply(sess, id, lf)
	}
	active, _ := layer.ParseID(c.active)
	sess.SetActive(active)
	sess.SetCompare(c.compare)
	sess.SetSplit(c.split)

	img := sess.Export()
	return c.write(img, sess.SKU())
}

func (c *renderCmd) apply(sess *editor.Session, id layer.ID, lf layerFlags) {
	sess.SetActive(id)
	if lf.size != "" {
		sess.SetSize(lf.size)
	}
	sess.SetScale(lf.scale)
	sess.SetRotation(lf.rotate)
	st := sess.Layer(id)
	switch {
	case c.noShadow:
		sess.SetShadow(false, st.ShadowStrengthPct)
	case lf.shadow >= 0:
		sess.SetShadow(lf.shadow > 0, lf.shadow)
	}
}

func (c *renderCmd) write(img image.Image, sku string) error {
	switch {
	case c.stdout:
		return imageio.EncodePNG(c.out(), img)
	case c.toClipboard:
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("failed to copy image: %w", err)
		}
		c.notifyCopy("image")
		return nil
	}
	if err := imageio.SavePNG(c.output, img); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	log.Info().Str("path", c.output).Str("sku", sku).Msg("saved")
	c.notifyExport(c.output)
	return nil
}
