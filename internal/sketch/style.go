package sketch

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/sketchsolver/internal/render"
)

// PaletteColor is a named swatch offered by the colour picker.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Orange", color.RGBA{255, 165, 0, 255}},
}

const (
	MinBrushSize     = 1
	MaxBrushSize     = 10
	DefaultBrushSize = 5
)

// DefaultBackground is the canvas fill and therefore also the eraser paint.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// DefaultColor is the initial pen colour.
var DefaultColor = palette[1].Color

// Palette returns the selectable swatches.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// PaletteIndex returns the swatch index holding col, or -1.
func PaletteIndex(col color.RGBA) int {
	for i, p := range palette {
		if p.Color == col {
			return i
		}
	}
	return -1
}

// ClampBrushSize limits n to the supported brush range.
func ClampBrushSize(n int) int {
	if n < MinBrushSize {
		return MinBrushSize
	}
	if n > MaxBrushSize {
		return MaxBrushSize
	}
	return n
}

// LookupColor resolves a palette name, an SVG colour name, or a #RRGGBB
// value.
func LookupColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	for _, p := range palette {
		if strings.EqualFold(p.Name, s) {
			return p.Color, nil
		}
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return ParseHex(s)
}

// ParseHex parses #RGB or #RRGGBB.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// Hex formats an opaque colour as #RRGGBB.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style is the current tool, colour and brush size. The user's colour is kept
// while the eraser is active so that switching back to the pen restores it.
type Style struct {
	tool       ToolKind
	color      color.RGBA
	size       int
	background color.RGBA
}

// NewStyle returns the pen with the default colour and brush size.
func NewStyle(background color.RGBA) *Style {
	return &Style{
		tool:       ToolPen,
		color:      DefaultColor,
		size:       DefaultBrushSize,
		background: background,
	}
}

func (s *Style) Tool() ToolKind { return s.tool }

// SetTool switches between pen and eraser.
func (s *Style) SetTool(t ToolKind) {
	if t != ToolEraser {
		t = ToolPen
	}
	s.tool = t
}

// Color returns the colour the user picked, regardless of tool.
func (s *Style) Color() color.RGBA { return s.color }

// ColorSelectable reports whether the colour picker is enabled.
func (s *Style) ColorSelectable() bool { return s.tool == ToolPen }

// SetColor changes the user colour. It is refused while the eraser is active.
func (s *Style) SetColor(c color.RGBA) bool {
	if !s.ColorSelectable() {
		return false
	}
	c.A = 255
	s.color = c
	return true
}

func (s *Style) BrushSize() int { return s.size }

// SetBrushSize applies to both tools.
func (s *Style) SetBrushSize(n int) { s.size = ClampBrushSize(n) }

func (s *Style) Background() color.RGBA { return s.background }

// PaintColor is the colour a new point is drawn with.
func (s *Style) PaintColor() color.RGBA {
	if s.tool == ToolEraser {
		return s.background
	}
	return s.color
}

// Point stamps the current style onto a coordinate.
func (s *Style) Point(x, y float64) Point {
	return Point{X: x, Y: y, Color: s.PaintColor(), BrushSize: s.size, Tool: s.tool}
}

// Pen is the live line style matching the current state.
func (s *Style) Pen() render.Pen {
	return render.Pen{Color: s.PaintColor(), Width: s.size}
}
