// Package display reports the geometry of the screen the window opens on, so
// the drawing surface can be sized before the first resize event arrives.
package display

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Monitor describes one output in the desktop layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

type platformBackend interface {
	Monitors() ([]Monitor, error)
}

var backend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// DefaultViewport is used when no monitor can be queried.
var DefaultViewport = image.Pt(1280, 800)

// Monitors lists the connected monitors.
func Monitors() ([]Monitor, error) {
	mons, err := backend.Monitors()
	if err != nil {
		return nil, err
	}
	if len(mons) == 0 {
		return nil, errNoMonitors
	}
	return mons, nil
}

// Find resolves a selector against monitors. An empty selector or "primary"
// picks the primary output, a number picks by index, anything else matches
// the output name.
func Find(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" || lower == "primary" {
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, m := range monitors {
		if strings.Contains(strings.ToLower(m.Name), lower) {
			return m, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// Viewport returns the size of the selected monitor. When the display cannot
// be queried it returns DefaultViewport together with the error.
func Viewport(selector string) (image.Point, error) {
	mons, err := Monitors()
	if err != nil {
		return DefaultViewport, err
	}
	m, err := Find(mons, selector)
	if err != nil {
		return DefaultViewport, err
	}
	return m.Rect.Size(), nil
}
