package appstate

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/touch"

	"github.com/example/sketchsolver/internal/input"
	"github.com/example/sketchsolver/internal/sketch"
)

const (
	rowHeight      = 24
	swatchSize     = 16
	swatchPitch    = 18
	widthRowHeight = 14
	bottomHeight   = 24
	gap            = 4
)

// surfaceMargin is the space around the drawing surface. The compact layout
// uses less.
func surfaceMargin(mobile bool) int {
	if mobile {
		return 4
	}
	return 12
}

type controlKind int

const (
	kindButton controlKind = iota
	kindSwatch
	kindWidth
)

// control is one clickable toolbar element.
type control struct {
	kind    controlKind
	label   string
	action  string
	rect    image.Rectangle
	color   color.RGBA
	size    int
	enabled bool
	active  bool
}

type toolButton struct {
	label  string
	action string
}

var (
	toolButtons = []toolButton{
		{"P:Pen", sketch.ActionPen},
		{"E:Eraser", sketch.ActionEraser},
	}
	actionButtons = []toolButton{
		{"G:Grid", sketch.ActionGrid},
		{"^Z:Undo", sketch.ActionUndo},
		{"Esc:Reset", sketch.ActionReset},
		{"^S:Save", ActionDownload},
		{"^C:Copy", ActionCopy},
		{"^Ret:Submit", sketch.ActionSubmit},
	}
)

// toolbarWidthFor fits every toolbar label.
func toolbarWidthFor() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString("sketchsolver").Ceil() + 8
	for _, group := range [][]toolButton{toolButtons, actionButtons} {
		for _, b := range group {
			if lw := d.MeasureString(b.label).Ceil() + 8; lw > w {
				w = lw
			}
		}
	}
	return w
}

// layout places every part of the window for one frame.
type layout struct {
	width, height int
	toolbar       int
	controls      []control
	surface       image.Rectangle
	result        image.Rectangle
	status        image.Rectangle
	comment       image.Rectangle
}

// containerWidth is the width available to the drawing surface in a
// window of the given width.
func containerWidth(width, toolbar int, mobile bool) int {
	return width - toolbar - 2*surfaceMargin(mobile)
}

func computeLayout(c *Controller, width, height, toolbar int) layout {
	s := c.session
	mobile := c.view.Mobile()
	m := surfaceMargin(mobile)
	l := layout{width: width, height: height, toolbar: toolbar}

	size := s.Size()
	l.surface = image.Rectangle{Min: image.Pt(toolbar+m, m), Max: image.Pt(toolbar+m+size.X, m+size.Y)}
	l.comment = image.Rect(toolbar, height-bottomHeight, width, height)
	l.status = image.Rect(toolbar, height-2*bottomHeight, width, height-bottomHeight)
	l.result = image.Rect(toolbar+m, l.surface.Max.Y+m, width-m, l.status.Min.Y)

	st := s.Style()
	hasDrawing := c.HasDrawing()
	y := rowHeight
	for _, b := range toolButtons {
		active := (b.action == sketch.ActionPen && st.Tool() == sketch.ToolPen) ||
			(b.action == sketch.ActionEraser && st.Tool() == sketch.ToolEraser)
		l.controls = append(l.controls, control{kind: kindButton, label: b.label, action: b.action,
			rect: image.Rect(0, y, toolbar, y+rowHeight), enabled: true, active: active})
		y += rowHeight
	}

	y += gap
	cols := (toolbar - gap) / swatchPitch
	if cols < 1 {
		cols = 1
	}
	for i, p := range sketch.Palette() {
		x := gap + (i%cols)*swatchPitch
		yy := y + (i/cols)*swatchPitch
		l.controls = append(l.controls, control{kind: kindSwatch, label: p.Name,
			rect: image.Rect(x, yy, x+swatchSize, yy+swatchSize), color: p.Color,
			enabled: st.ColorSelectable(), active: st.Color() == p.Color})
	}
	rows := (len(sketch.Palette()) + cols - 1) / cols
	y += rows*swatchPitch + gap

	for n := sketch.MinBrushSize; n <= sketch.MaxBrushSize; n++ {
		l.controls = append(l.controls, control{kind: kindWidth, label: fmt.Sprint(n), size: n,
			rect: image.Rect(0, y, toolbar, y+widthRowHeight), enabled: true, active: st.BrushSize() == n})
		y += widthRowHeight
	}
	y += gap

	for _, b := range actionButtons {
		ctl := control{kind: kindButton, label: b.label, action: b.action,
			rect: image.Rect(0, y, toolbar, y+rowHeight), enabled: true}
		switch b.action {
		case sketch.ActionGrid:
			ctl.active = s.GridEnabled()
		case sketch.ActionUndo, sketch.ActionReset, ActionDownload, ActionCopy:
			ctl.enabled = hasDrawing
		case sketch.ActionSubmit:
			ctl.enabled = c.CanSubmit()
			ctl.active = c.Loading()
		}
		l.controls = append(l.controls, ctl)
		y += rowHeight
	}
	return l
}

// hit returns the index of the control under p, or -1.
func (l layout) hit(p image.Point) int {
	for i, ctl := range l.controls {
		if p.In(ctl.rect) {
			return i
		}
	}
	return -1
}

// routeTouch feeds e to u. It returns the drawing sample, if any, and the
// index of the toolbar control tapped, or -1. Samples consumed by the surface
// and touches landing on it never reach the toolbar.
func (l layout) routeTouch(u *input.Unifier, e touch.Event) (input.Pointer, bool, int) {
	p, ok := u.Touch(e)
	at := image.Pt(int(e.X), int(e.Y))
	if (ok && p.Consumed) || e.Type != touch.TypeBegin || at.In(u.Surface()) {
		return p, ok, -1
	}
	return p, ok, l.hit(at)
}

// activate runs ctl if it is enabled.
func (c *Controller) activate(ctl control) bool {
	if !ctl.enabled {
		return false
	}
	switch ctl.kind {
	case kindSwatch:
		return c.session.SetColor(ctl.color)
	case kindWidth:
		c.session.SetBrushSize(ctl.size)
		return true
	}
	c.Trigger(ctl.action)
	return true
}
