// Package sketch holds the freehand drawing model: points and strokes, the
// stroke history, the recorder that turns pointer input into strokes, the
// tool and style state, and the Session that ties them to a raster canvas.
package sketch

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// ToolKind selects what a newly recorded point means.
type ToolKind int

const (
	ToolPen ToolKind = iota
	ToolEraser
)

func (t ToolKind) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraser:
		return "eraser"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// ParseTool converts a tool name back into a ToolKind.
func ParseTool(s string) (ToolKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pen":
		return ToolPen, nil
	case "eraser":
		return ToolEraser, nil
	}
	return ToolPen, fmt.Errorf("unknown tool %q", s)
}

// Point is a single recorded sample. It carries its own paint so strokes keep
// the style they were drawn with.
type Point struct {
	X, Y      float64
	Color     color.RGBA
	BrushSize int
	Tool      ToolKind
}

// pixelLimit bounds pixel coordinates so conversion to int stays defined.
const pixelLimit = 1 << 30

// Pixel returns the canvas pixel the point falls in. Coordinates are clamped
// to ±2^30 and NaN maps to 0.
func (p Point) Pixel() image.Point {
	return image.Pt(toPixel(p.X), toPixel(p.Y))
}

func toPixel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(-pixelLimit, math.Min(pixelLimit, math.Floor(v))))
}

// MinStrokePoints is the shortest path kept in history. Anything shorter is a
// tap.
const MinStrokePoints = 2

// Stroke is the ordered path between one pointer down and the matching up.
type Stroke []Point

// Pixels converts the stroke into canvas coordinates.
func (s Stroke) Pixels() []image.Point {
	out := make([]image.Point, len(s))
	for i, p := range s {
		out[i] = p.Pixel()
	}
	return out
}
