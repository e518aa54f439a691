package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/tryon/internal/imageio"
	"github.com/example/tryon/internal/interaction"
	"github.com/example/tryon/internal/layer"
	"github.com/example/tryon/internal/render"
	"github.com/example/tryon/internal/theme"
)

// Canvas holds the default canvas geometry.
type Canvas struct {
	Width    int
	Height   int
	MaxPhoto int
}

// Editor holds control limits and handle sizes.
type Editor struct {
	ScaleMin     float64
	ScaleMax     float64
	RotationMin  float64
	RotationMax  float64
	CornerRadius float64
	HandleRadius float64
	Grid         int
}

// Shadow holds the shadow defaults for new layers.
type Shadow struct {
	Enabled  bool
	Strength float64
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Catalog string
	Locale  string
	Canvas  Canvas
	Editor  Editor
	Shadow  Shadow
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	lim := layer.DefaultLimits()
	return &Config{
		Theme:  "", // Empty lets Env/Default apply
		Locale: "en",
		Canvas: Canvas{Width: 960, Height: 640, MaxPhoto: imageio.DefaultMaxPhoto},
		Editor: Editor{
			ScaleMin:     lim.ScaleMin,
			ScaleMax:     lim.ScaleMax,
			RotationMin:  lim.RotationMin,
			RotationMax:  lim.RotationMax,
			CornerRadius: interaction.DefaultHitRadius,
			HandleRadius: 6,
			Grid:         render.DefaultGrid,
		},
		Shadow: Shadow{Enabled: true, Strength: layer.DefaultShadowStrength},
		Themes: make(map[string]*theme.Theme),
	}
}

// Limits returns the control limits as the layer package expects them.
func (c *Config) Limits() layer.Limits {
	return layer.Limits{
		ScaleMin:    c.Editor.ScaleMin,
		ScaleMax:    c.Editor.ScaleMax,
		RotationMin: c.Editor.RotationMin,
		RotationMax: c.Editor.RotationMax,
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if c.Editor.ScaleMin <= 0 || c.Editor.ScaleMin > c.Editor.ScaleMax {
		return fmt.Errorf("editor: scale range %v-%v", c.Editor.ScaleMin, c.Editor.ScaleMax)
	}
	if c.Editor.RotationMin > c.Editor.RotationMax {
		return fmt.Errorf("editor: rotation range %v-%v", c.Editor.RotationMin, c.Editor.RotationMax)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas: size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Catalog != "" {
		fmt.Fprintf(&sb, "catalog = %s\n", c.Catalog)
	}
	if c.Locale != "" {
		fmt.Fprintf(&sb, "locale = %s\n", c.Locale)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "max_photo = %d\n", c.Canvas.MaxPhoto)
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "scale_min = %g\n", c.Editor.ScaleMin)
	fmt.Fprintf(&sb, "scale_max = %g\n", c.Editor.ScaleMax)
	fmt.Fprintf(&sb, "rotation_min = %g\n", c.Editor.RotationMin)
	fmt.Fprintf(&sb, "rotation_max = %g\n", c.Editor.RotationMax)
	fmt.Fprintf(&sb, "corner_radius = %g\n", c.Editor.CornerRadius)
	fmt.Fprintf(&sb, "handle_radius = %g\n", c.Editor.HandleRadius)
	fmt.Fprintf(&sb, "grid = %d\n", c.Editor.Grid)
	sb.WriteString("\n")

	sb.WriteString("[shadow]\n")
	fmt.Fprintf(&sb, "enabled = %v\n", c.Shadow.Enabled)
	fmt.Fprintf(&sb, "strength = %g\n", c.Shadow.Strength)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
