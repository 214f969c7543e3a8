// Package config reads and writes the sketchsolver rc file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/sketchsolver/internal/render"
	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/solver"
	"github.com/example/sketchsolver/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Submit bool
	Save   bool
	Copy   bool
}

// Canvas holds drawing defaults.
type Canvas struct {
	Background  color.RGBA
	Color       color.RGBA
	BrushSize   int
	Grid        bool
	GridSpacing int
}

// Config holds the application configuration.
type Config struct {
	SolverURL string
	Theme     string
	SaveDir   string
	Canvas    Canvas
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		SolverURL: solver.DefaultURL,
		Canvas: Canvas{
			Background:  sketch.DefaultBackground,
			Color:       sketch.DefaultColor,
			BrushSize:   sketch.DefaultBrushSize,
			GridSpacing: render.GridSpacing,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// SessionOptions turns the canvas section into session options.
func (c *Config) SessionOptions() []sketch.Option {
	return []sketch.Option{
		sketch.WithBackground(c.Canvas.Background),
		sketch.WithColor(c.Canvas.Color),
		sketch.WithBrushSize(c.Canvas.BrushSize),
		sketch.WithGrid(c.Canvas.Grid),
		sketch.WithGridSpacing(c.Canvas.GridSpacing),
	}
}

// String returns the configuration in rc format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SolverURL != "" {
		fmt.Fprintf(&sb, "solver_url = %s\n", c.SolverURL)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "background = %s\n", sketch.Hex(c.Canvas.Background))
	fmt.Fprintf(&sb, "color = %s\n", sketch.Hex(c.Canvas.Color))
	fmt.Fprintf(&sb, "brush_size = %d\n", c.Canvas.BrushSize)
	fmt.Fprintf(&sb, "grid = %v\n", c.Canvas.Grid)
	fmt.Fprintf(&sb, "grid_spacing = %d\n", c.Canvas.GridSpacing)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "submit = %v\n", c.Notify.Submit)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		_ = c.Themes[name].Format(&sb)
	}
	return sb.String()
}
