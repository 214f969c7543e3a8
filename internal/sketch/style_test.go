package sketch

import (
	"image/color"
	"testing"
)

func TestEraserDisablesColorAndRemembersIt(t *testing.T) {
	st := NewStyle(DefaultBackground)
	purple := color.RGBA{128, 0, 128, 255}
	if !st.SetColor(purple) {
		t.Fatal("expected pen to accept colour")
	}
	st.SetTool(ToolEraser)
	if st.ColorSelectable() {
		t.Fatal("expected colour selector to be disabled under eraser")
	}
	if st.SetColor(color.RGBA{255, 0, 0, 255}) {
		t.Fatal("expected colour change to be refused under eraser")
	}
	if got := st.PaintColor(); got != DefaultBackground {
		t.Fatalf("expected eraser to paint background, got %v", got)
	}
	st.SetTool(ToolPen)
	if got := st.PaintColor(); got != purple {
		t.Fatalf("expected pen to restore %v, got %v", purple, got)
	}
}

func TestBrushSizeClamped(t *testing.T) {
	st := NewStyle(DefaultBackground)
	if st.BrushSize() != DefaultBrushSize {
		t.Fatalf("expected default size %d, got %d", DefaultBrushSize, st.BrushSize())
	}
	st.SetBrushSize(0)
	if st.BrushSize() != MinBrushSize {
		t.Fatalf("expected %d, got %d", MinBrushSize, st.BrushSize())
	}
	st.SetBrushSize(99)
	if st.BrushSize() != MaxBrushSize {
		t.Fatalf("expected %d, got %d", MaxBrushSize, st.BrushSize())
	}
}

func TestLookupColor(t *testing.T) {
	c, err := LookupColor("orange")
	if err != nil || c != (color.RGBA{255, 165, 0, 255}) {
		t.Fatalf("unexpected orange %v %v", c, err)
	}
	c, err = LookupColor("teal")
	if err != nil || c != (color.RGBA{0, 128, 128, 255}) {
		t.Fatalf("unexpected teal %v %v", c, err)
	}
	c, err = LookupColor("#0f0")
	if err != nil || c != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("unexpected short hex %v %v", c, err)
	}
	if _, err := LookupColor("#12345"); err == nil {
		t.Fatal("expected error for malformed hex")
	}
	if got := Hex(color.RGBA{255, 165, 0, 255}); got != "#FFA500" {
		t.Fatalf("expected #FFA500, got %s", got)
	}
}

func TestParseTool(t *testing.T) {
	if tk, err := ParseTool("Eraser"); err != nil || tk != ToolEraser {
		t.Fatalf("expected eraser, got %v %v", tk, err)
	}
	if tk, err := ParseTool(""); err != nil || tk != ToolPen {
		t.Fatalf("expected pen default, got %v %v", tk, err)
	}
	if _, err := ParseTool("brush"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}
