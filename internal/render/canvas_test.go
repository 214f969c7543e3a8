package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func TestNewCanvasFilledWithBackground(t *testing.T) {
	c := NewCanvas(8, 6, black)
	if got := c.Bounds(); !got.Eq(image.Rect(0, 0, 8, 6)) {
		t.Fatalf("unexpected bounds %v", got)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if got := c.Image().RGBAAt(x, y); got != black {
				t.Fatalf("expected background at %d,%d, got %v", x, y, got)
			}
		}
	}
}

func TestLineToPaintsSegmentWithPen(t *testing.T) {
	c := NewCanvas(20, 20, black)
	c.SetPen(Pen{Color: red, Width: 3})
	c.MoveTo(image.Pt(2, 10))
	c.LineTo(image.Pt(17, 10))
	for x := 2; x <= 17; x++ {
		if got := c.Image().RGBAAt(x, 10); got != red {
			t.Fatalf("expected red at %d,10, got %v", x, got)
		}
	}
	if got := c.Image().RGBAAt(10, 11); got != red {
		t.Fatalf("expected width 3 to cover 10,11, got %v", got)
	}
	if got := c.Image().RGBAAt(10, 14); got != black {
		t.Fatalf("expected background at 10,14, got %v", got)
	}
}

func TestLineToWithoutOpenPathOnlyMoves(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.SetPen(Pen{Color: red, Width: 1})
	before := c.Clone()
	c.LineTo(image.Pt(5, 5))
	if !bytes.Equal(before.Pix, c.Image().Pix) {
		t.Fatal("expected first LineTo to paint nothing")
	}
	c.LineTo(image.Pt(8, 5))
	if got := c.Image().RGBAAt(7, 5); got != red {
		t.Fatalf("expected second LineTo to paint, got %v", got)
	}
}

func TestPolylineOutOfBoundsDoesNotPanic(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.Polyline([]image.Point{{-50, -50}, {200, 300}, {-5, 400}}, red, 10)
	c.Polyline([]image.Point{{1000, 1000}, {1200, 1000}}, red, 4)
}

func TestPolylineFarEndpointIsClipped(t *testing.T) {
	c := NewCanvas(50, 50, black)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Polyline([]image.Point{{1, 1}, {1 << 30, 1 << 30}}, red, 3)
		c.Polyline([]image.Point{{-(1 << 30), 25}, {1 << 30, 25}}, red, 1)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected far endpoints to be clipped before rasterising")
	}
	if got := c.Image().RGBAAt(20, 20); got != red {
		t.Fatalf("expected visible part of the diagonal at 20,20, got %v", got)
	}
	if got := c.Image().RGBAAt(49, 25); got != red {
		t.Fatalf("expected horizontal line across the canvas, got %v", got)
	}
	if got := c.Image().RGBAAt(40, 10); got != black {
		t.Fatalf("expected background off the lines, got %v", got)
	}
}

func TestClipSegment(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	if x0, y0, x1, y1, ok := clipSegment(2, 3, 7, 8, r); !ok || x0 != 2 || y0 != 3 || x1 != 7 || y1 != 8 {
		t.Fatalf("expected inside segment unchanged, got %d,%d %d,%d %v", x0, y0, x1, y1, ok)
	}
	if x0, y0, x1, y1, ok := clipSegment(-10, 5, 100, 5, r); !ok || x0 != 0 || y0 != 5 || x1 != 9 || y1 != 5 {
		t.Fatalf("expected 0,5 9,5, got %d,%d %d,%d %v", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := clipSegment(-10, -1, 100, -1, r); ok {
		t.Fatal("expected segment above the rectangle to be rejected")
	}
	if _, _, _, _, ok := clipSegment(20, 0, 30, 30, r); ok {
		t.Fatal("expected segment right of the rectangle to be rejected")
	}
}

func TestPolylineSinglePointPaintsNothing(t *testing.T) {
	c := NewCanvas(10, 10, black)
	before := c.Clone()
	c.Polyline([]image.Point{{5, 5}}, red, 4)
	if !bytes.Equal(before.Pix, c.Image().Pix) {
		t.Fatal("expected single point polyline to paint nothing")
	}
}

func TestPolylineKeepsPen(t *testing.T) {
	c := NewCanvas(10, 10, black)
	pen := Pen{Color: color.RGBA{0, 0, 255, 255}, Width: 2}
	c.SetPen(pen)
	c.Polyline([]image.Point{{0, 0}, {9, 9}}, red, 4)
	if c.Pen() != pen {
		t.Fatalf("expected pen %v, got %v", pen, c.Pen())
	}
}

func TestGridBlendsLines(t *testing.T) {
	c := NewCanvas(45, 45, black)
	c.Grid(GridSpacing, GridColor)
	on := c.Image().RGBAAt(20, 7)
	if on == black {
		t.Fatal("expected grid line at x=20")
	}
	if on.R == 204 {
		t.Fatalf("expected grid line to be blended, got %v", on)
	}
	if got := c.Image().RGBAAt(7, 7); got != black {
		t.Fatalf("expected untouched cell interior, got %v", got)
	}
}

func TestResizeClearsPixels(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.SetPen(Pen{Color: red, Width: 4})
	c.MoveTo(image.Pt(0, 0))
	c.LineTo(image.Pt(9, 9))
	c.Resize(30, 5)
	if got := c.Bounds(); !got.Eq(image.Rect(0, 0, 30, 5)) {
		t.Fatalf("unexpected bounds %v", got)
	}
	if got := c.Image().RGBAAt(1, 1); got != black {
		t.Fatalf("expected cleared pixels after resize, got %v", got)
	}
}

func TestBrushIsRound(t *testing.T) {
	pts := brush(9)
	for _, p := range pts {
		if p.X*p.X+p.Y*p.Y > 21 {
			t.Fatalf("offset %v outside radius", p)
		}
	}
	corner := image.Pt(4, 4)
	for _, p := range pts {
		if p == corner {
			t.Fatal("expected corner to be excluded from round brush")
		}
	}
}
