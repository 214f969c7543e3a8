// Package theme holds the window colour schemes and the dark/mobile view
// context shared by the front end.
package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colours of the window chrome. The drawing surface keeps
// its own background.
type Theme struct {
	Name string

	// General
	Background color.RGBA
	Foreground color.RGBA
	Error      color.RGBA

	// Toolbar
	ToolbarBackground  color.RGBA
	ButtonBackground   color.RGBA
	ButtonActive       color.RGBA
	ButtonDisabled     color.RGBA
	ButtonText         color.RGBA
	ButtonTextDisabled color.RGBA
	ButtonBorder       color.RGBA

	// Surface and panels
	SurfaceBorder   color.RGBA
	PanelBackground color.RGBA
	Highlight       color.RGBA
}

// Light returns the built-in light theme.
func Light() *Theme {
	return &Theme{
		Name:               "light",
		Background:         color.RGBA{235, 235, 235, 255},
		Foreground:         color.RGBA{20, 20, 20, 255},
		Error:              color.RGBA{190, 30, 30, 255},
		ToolbarBackground:  color.RGBA{220, 220, 220, 255},
		ButtonBackground:   color.RGBA{200, 200, 200, 255},
		ButtonActive:       color.RGBA{150, 170, 220, 255},
		ButtonDisabled:     color.RGBA{225, 225, 225, 255},
		ButtonText:         color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled: color.RGBA{150, 150, 150, 255},
		ButtonBorder:       color.RGBA{0, 0, 0, 255},
		SurfaceBorder:      color.RGBA{120, 120, 120, 255},
		PanelBackground:    color.RGBA{250, 250, 250, 255},
		Highlight:          color.RGBA{30, 90, 200, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:               "dark",
		Background:         color.RGBA{30, 30, 34, 255},
		Foreground:         color.RGBA{230, 230, 230, 255},
		Error:              color.RGBA{255, 110, 110, 255},
		ToolbarBackground:  color.RGBA{44, 44, 50, 255},
		ButtonBackground:   color.RGBA{64, 64, 72, 255},
		ButtonActive:       color.RGBA{70, 100, 170, 255},
		ButtonDisabled:     color.RGBA{50, 50, 56, 255},
		ButtonText:         color.RGBA{240, 240, 240, 255},
		ButtonTextDisabled: color.RGBA{110, 110, 110, 255},
		ButtonBorder:       color.RGBA{120, 120, 130, 255},
		SurfaceBorder:      color.RGBA{90, 90, 100, 255},
		PanelBackground:    color.RGBA{38, 38, 44, 255},
		Highlight:          color.RGBA{120, 170, 255, 255},
	}
}

// Default returns the fallback theme.
func Default() *Theme { return Light() }

var builtin = map[string]func() *Theme{
	"light":   Light,
	"default": Light,
	"dark":    Dark,
}

// Builtin returns a fresh copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	f, ok := builtin[strings.ToLower(strings.TrimSuffix(name, ".theme"))]
	if !ok {
		return nil, false
	}
	return f(), true
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDark reports whether a theme name selects dark mode.
func IsDark(name string) bool {
	return strings.Contains(strings.ToLower(name), "dark")
}
