package appstate

import (
	"image"
	"testing"

	"golang.org/x/mobile/event/touch"

	"github.com/example/sketchsolver/internal/input"
	"github.com/example/sketchsolver/internal/sketch"
)

func find(l layout, kind controlKind, label string) (control, int) {
	for i, ctl := range l.controls {
		if ctl.kind == kind && ctl.label == label {
			return ctl, i
		}
	}
	return control{}, -1
}

func TestLayoutDisablesHistoryButtonsWhenEmpty(t *testing.T) {
	h := newHarness(t)
	l := computeLayout(h.c, 800, 600, toolbarWidthFor())
	for _, name := range []string{"^Z:Undo", "Esc:Reset", "^S:Save", "^C:Copy", "^Ret:Submit"} {
		if ctl, i := find(l, kindButton, name); i < 0 || ctl.enabled {
			t.Fatalf("expected %s present and disabled", name)
		}
	}
	h.stroke()
	l = computeLayout(h.c, 800, 600, toolbarWidthFor())
	if ctl, _ := find(l, kindButton, "^Z:Undo"); !ctl.enabled {
		t.Fatal("expected undo enabled after a stroke")
	}
	h.c.loading = true
	l = computeLayout(h.c, 800, 600, toolbarWidthFor())
	if ctl, _ := find(l, kindButton, "^Ret:Submit"); ctl.enabled || !ctl.active {
		t.Fatal("expected submit disabled and marked busy while loading")
	}
}

func TestEraserDisablesPalette(t *testing.T) {
	h := newHarness(t)
	tb := toolbarWidthFor()
	l := computeLayout(h.c, 800, 600, tb)
	_, i := find(l, kindButton, "E:Eraser")
	if i < 0 || l.hit(l.controls[i].rect.Min) != i {
		t.Fatal("expected eraser button to be hit at its corner")
	}
	h.c.activate(l.controls[i])

	l = computeLayout(h.c, 800, 600, tb)
	red, _ := find(l, kindSwatch, "Red")
	if red.enabled {
		t.Fatal("expected swatches disabled under the eraser")
	}
	if h.c.activate(red) {
		t.Fatal("expected disabled swatch to do nothing")
	}
	if ctl, _ := find(l, kindButton, "E:Eraser"); !ctl.active {
		t.Fatal("expected eraser marked active")
	}

	pen, _ := find(l, kindButton, "P:Pen")
	h.c.activate(pen)
	l = computeLayout(h.c, 800, 600, tb)
	red, _ = find(l, kindSwatch, "Red")
	if !h.c.activate(red) || h.c.Session().Style().Color() != red.color {
		t.Fatal("expected red selected with the pen")
	}
}

func TestWidthRowsSetBrushSize(t *testing.T) {
	h := newHarness(t)
	l := computeLayout(h.c, 800, 600, toolbarWidthFor())
	n := 0
	for _, ctl := range l.controls {
		if ctl.kind == kindWidth {
			n++
		}
	}
	if n != sketch.MaxBrushSize-sketch.MinBrushSize+1 {
		t.Fatalf("expected a row per brush size, got %d", n)
	}
	ctl, _ := find(l, kindWidth, "8")
	h.c.activate(ctl)
	if h.c.Session().Style().BrushSize() != 8 {
		t.Fatalf("expected brush size 8, got %d", h.c.Session().Style().BrushSize())
	}
}

func TestLayoutPlacesSurfaceRightOfToolbar(t *testing.T) {
	h := newHarness(t)
	tb := toolbarWidthFor()
	l := computeLayout(h.c, 800, 600, tb)
	if l.surface.Min.X <= tb || l.surface.Size() != image.Pt(100, 80) {
		t.Fatalf("unexpected surface %v", l.surface)
	}
	if l.hit(l.surface.Min) != -1 {
		t.Fatal("expected no control over the surface")
	}
	if l.status.Max.Y != l.comment.Min.Y || l.comment.Max.Y != 600 {
		t.Fatalf("unexpected bottom rows %v %v", l.status, l.comment)
	}
	h.c.View().SetMobile(true)
	if m := computeLayout(h.c, 800, 600, tb); m.surface.Min.X >= l.surface.Min.X {
		t.Fatal("expected tighter margin in the compact layout")
	}
}

func TestTouchOnSurfaceNeverReachesToolbar(t *testing.T) {
	h := newHarness(t)
	l := computeLayout(h.c, 800, 600, toolbarWidthFor())
	u := input.NewUnifier(l.surface)

	in := l.surface.Min.Add(image.Pt(10, 10))
	p, ok, idx := l.routeTouch(u, touch.Event{X: float32(in.X), Y: float32(in.Y), Sequence: 1, Type: touch.TypeBegin})
	if !ok || !p.Consumed || p.Kind != input.Down || idx != -1 {
		t.Fatalf("expected consumed draw sample only, got %+v %v %d", p, ok, idx)
	}
	second := l.surface.Min.Add(image.Pt(30, 30))
	if _, ok, idx := l.routeTouch(u, touch.Event{X: float32(second.X), Y: float32(second.Y), Sequence: 2, Type: touch.TypeBegin}); ok || idx != -1 {
		t.Fatalf("expected second finger on the surface ignored, got %v %d", ok, idx)
	}
	l.routeTouch(u, touch.Event{Sequence: 2, Type: touch.TypeEnd})
	l.routeTouch(u, touch.Event{X: float32(in.X), Y: float32(in.Y), Sequence: 1, Type: touch.TypeEnd})

	ctl, want := find(l, kindButton, "G:Grid")
	at := ctl.rect.Min.Add(image.Pt(2, 2))
	if _, ok, idx := l.routeTouch(u, touch.Event{X: float32(at.X), Y: float32(at.Y), Sequence: 3, Type: touch.TypeBegin}); ok || idx != want {
		t.Fatalf("expected toolbar tap on control %d, got %v %d", want, ok, idx)
	}
}
