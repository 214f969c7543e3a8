// Package surface decides the pixel size of the drawing surface and keeps it
// in step with the viewport.
package surface

import (
	"image"
	"sync"
	"time"
)

const (
	// HeightFraction of the viewport height given to the surface.
	HeightFraction = 0.6
	// MaxHeight caps the surface height in pixels.
	MaxHeight = 500
	// ResizeDelay coalesces bursts of viewport changes.
	ResizeDelay = 100 * time.Millisecond
	// MobileBreakpoint is the viewport width below which the compact layout
	// is used.
	MobileBreakpoint = 768
)

// Dimensions is the surface size for a container of the given width inside
// a viewport of the given height.
func Dimensions(containerWidth, viewportHeight int) image.Point {
	h := int(float64(viewportHeight) * HeightFraction)
	if h > MaxHeight {
		h = MaxHeight
	}
	if h < 1 {
		h = 1
	}
	w := containerWidth
	if w < 1 {
		w = 1
	}
	return image.Pt(w, h)
}

// IsMobile reports whether a viewport width falls under the mobile
// breakpoint.
func IsMobile(viewportWidth int) bool { return viewportWidth < MobileBreakpoint }

type timer interface{ Stop() bool }

var afterFunc = func(d time.Duration, f func()) timer { return time.AfterFunc(d, f) }

// Manager owns the surface size. Apply is called with each new size; from
// Viewport it runs on a timer goroutine, so window code should forward it to
// the event loop.
type Manager struct {
	Delay time.Duration
	Apply func(image.Point)

	mu      sync.Mutex
	size    image.Point
	pending timer
	next    image.Point
}

// NewManager returns a manager using ResizeDelay.
func NewManager(apply func(image.Point)) *Manager {
	return &Manager{Delay: ResizeDelay, Apply: apply}
}

// Size returns the most recently applied size.
func (m *Manager) Size() image.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Mount applies the initial size immediately.
func (m *Manager) Mount(containerWidth, viewportHeight int) image.Point {
	d := Dimensions(containerWidth, viewportHeight)
	m.mu.Lock()
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.size = d
	apply := m.Apply
	m.mu.Unlock()
	if apply != nil {
		apply(d)
	}
	return d
}

// Viewport records a viewport change. Only the last change of a burst is
// applied, once Delay has passed without another call.
func (m *Manager) Viewport(containerWidth, viewportHeight int) {
	d := Dimensions(containerWidth, viewportHeight)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next = d
	if m.pending != nil {
		m.pending.Stop()
	}
	m.pending = afterFunc(m.Delay, m.fire)
}

func (m *Manager) fire() {
	m.mu.Lock()
	m.pending = nil
	d := m.next
	m.size = d
	apply := m.Apply
	m.mu.Unlock()
	if apply != nil {
		apply(d)
	}
}

// Stop cancels a pending resize.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}
