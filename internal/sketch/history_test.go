package sketch

import (
	"image/color"
	"reflect"
	"testing"
)

func stroke(n int) Stroke {
	s := make(Stroke, n)
	for i := range s {
		s[i] = Point{X: float64(i), Y: float64(i), Color: color.RGBA{255, 0, 0, 255}, BrushSize: 3}
	}
	return s
}

func TestHistoryUndoInvertsAppend(t *testing.T) {
	var h History
	h.Append(stroke(2))
	h.Append(stroke(4))
	before := h.Strokes()

	h.Append(stroke(7))
	if !h.Undo() {
		t.Fatal("expected undo to remove a stroke")
	}
	if got := h.Strokes(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected %v after undo, got %v", before, got)
	}
}

func TestHistoryUndoOnEmpty(t *testing.T) {
	var h History
	before := h.Strokes()
	h.Append(stroke(3))
	h.Undo()
	if got := h.Strokes(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected empty history, got %v", got)
	}
	if h.Undo() {
		t.Fatal("expected undo on empty history to report false")
	}
}

func TestHistoryReset(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		var h History
		for i := 0; i < n; i++ {
			h.Append(stroke(2))
		}
		h.Reset()
		if !h.IsEmpty() || h.Len() != 0 {
			t.Fatalf("expected empty history after reset of %d strokes", n)
		}
	}
}

func TestHistoryStrokesIsCopy(t *testing.T) {
	var h History
	h.Append(stroke(2))
	got := h.Strokes()
	got[0] = nil
	if len(h.Strokes()[0]) != 2 {
		t.Fatal("expected history to be unaffected by caller mutation")
	}
}

func TestRecorderKeepsEveryPoint(t *testing.T) {
	var h History
	r := NewRecorder(&h, NewStyle(DefaultBackground))
	if !r.Begin(1, 1) {
		t.Fatal("expected begin to open a stroke")
	}
	for i := 2; i <= 6; i++ {
		r.Extend(float64(i), float64(i))
	}
	s, ok := r.Finish()
	if !ok {
		t.Fatal("expected stroke to be kept")
	}
	if len(s) != 6 {
		t.Fatalf("expected 6 points, got %d", len(s))
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 stroke in history, got %d", h.Len())
	}
	if r.Active() || r.Len() != 0 {
		t.Fatal("expected recorder to be reset")
	}
}

func TestRecorderDiscardsTap(t *testing.T) {
	var h History
	r := NewRecorder(&h, NewStyle(DefaultBackground))
	r.Begin(5, 5)
	if _, ok := r.Finish(); ok {
		t.Fatal("expected single point stroke to be discarded")
	}
	if !h.IsEmpty() {
		t.Fatal("expected history to stay empty")
	}
	if r.Active() {
		t.Fatal("expected recorder to be reset")
	}
}

func TestRecorderIgnoresMisuse(t *testing.T) {
	var h History
	r := NewRecorder(&h, NewStyle(DefaultBackground))
	if _, ok := r.Extend(1, 1); ok {
		t.Fatal("expected extend without begin to be ignored")
	}
	if _, ok := r.Finish(); ok {
		t.Fatal("expected finish without begin to be ignored")
	}
	r.Begin(0, 0)
	if r.Begin(9, 9) {
		t.Fatal("expected second begin to be ignored")
	}
	if p, _ := r.Last(); p.X != 0 {
		t.Fatalf("expected original start point, got %v", p)
	}
}

func TestRecorderUsesCurrentStyle(t *testing.T) {
	var h History
	st := NewStyle(DefaultBackground)
	r := NewRecorder(&h, st)
	r.Begin(0, 0)
	st.SetBrushSize(9)
	st.SetTool(ToolEraser)
	p, _ := r.Extend(1, 1)
	if p.BrushSize != 9 || p.Tool != ToolEraser || p.Color != DefaultBackground {
		t.Fatalf("expected point with eraser style, got %+v", p)
	}
	s, _ := r.Finish()
	if s[0].Tool != ToolPen {
		t.Fatalf("expected first point to keep pen style, got %+v", s[0])
	}
}
