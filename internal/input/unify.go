// Package input turns window mouse and touch events into surface relative
// pointer samples.
package input

import (
	"image"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// Kind is the phase of a pointer sample.
type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	}
	return "unknown"
}

// Pointer is a unified sample in surface coordinates.
type Pointer struct {
	X, Y float64
	Kind Kind
	// Consumed marks touch samples over the surface. The caller must not
	// hand them on to toolbar hit testing, scrolling or zooming.
	Consumed bool
}

// Unifier tracks the surface rectangle inside the window and the state of
// the pointers drawing on it.
type Unifier struct {
	surface image.Rectangle
	down    bool
	touches []touch.Sequence
}

// NewUnifier creates a unifier for a surface at r in window coordinates.
func NewUnifier(r image.Rectangle) *Unifier { return &Unifier{surface: r} }

// SetSurface moves or resizes the surface rectangle.
func (u *Unifier) SetSurface(r image.Rectangle) { u.surface = r }

// Surface returns the current surface rectangle.
func (u *Unifier) Surface() image.Rectangle { return u.surface }

func (u *Unifier) relative(x, y float32) (float64, float64) {
	return float64(x) - float64(u.surface.Min.X), float64(y) - float64(u.surface.Min.Y)
}

func (u *Unifier) inside(x, y float32) bool {
	return image.Pt(int(x), int(y)).In(u.surface)
}

// Mouse converts a mouse event. Only the left button draws. Leaving the
// surface while the button is held ends the stroke.
func (u *Unifier) Mouse(e mouse.Event) (Pointer, bool) {
	x, y := u.relative(e.X, e.Y)
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft || !u.inside(e.X, e.Y) {
			return Pointer{}, false
		}
		u.down = true
		return Pointer{X: x, Y: y, Kind: Down}, true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !u.down {
			return Pointer{}, false
		}
		u.down = false
		return Pointer{X: x, Y: y, Kind: Up}, true
	case mouse.DirNone:
		if !u.down {
			return Pointer{}, false
		}
		if !u.inside(e.X, e.Y) {
			u.down = false
			return Pointer{X: x, Y: y, Kind: Up}, true
		}
		return Pointer{X: x, Y: y, Kind: Move}, true
	}
	return Pointer{}, false
}

// Touch converts a touch event. Only the first active touch draws; later
// fingers are tracked so the first can be identified but are otherwise
// ignored.
func (u *Unifier) Touch(e touch.Event) (Pointer, bool) {
	x, y := u.relative(e.X, e.Y)
	switch e.Type {
	case touch.TypeBegin:
		u.touches = append(u.touches, e.Sequence)
		if len(u.touches) != 1 || !u.inside(e.X, e.Y) {
			return Pointer{}, false
		}
		u.down = true
		return Pointer{X: x, Y: y, Kind: Down, Consumed: true}, true
	case touch.TypeMove:
		if len(u.touches) == 0 || u.touches[0] != e.Sequence || !u.down {
			return Pointer{}, false
		}
		return Pointer{X: x, Y: y, Kind: Move, Consumed: u.inside(e.X, e.Y)}, true
	case touch.TypeEnd:
		first := len(u.touches) > 0 && u.touches[0] == e.Sequence
		u.remove(e.Sequence)
		if !first || !u.down {
			return Pointer{}, false
		}
		u.down = false
		return Pointer{X: x, Y: y, Kind: Up}, true
	}
	return Pointer{}, false
}

func (u *Unifier) remove(seq touch.Sequence) {
	for i, s := range u.touches {
		if s == seq {
			u.touches = append(u.touches[:i], u.touches[i+1:]...)
			return
		}
	}
}

// Active reports whether a pointer is currently drawing.
func (u *Unifier) Active() bool { return u.down }
