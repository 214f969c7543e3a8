package render

import (
	"image"
	"image/color"
	"image/draw"
)

// GridSpacing is the distance in pixels between grid lines.
const GridSpacing = 20

// GridColor is the light overlay colour used for grid lines. The half alpha
// stands in for a half pixel wide line.
var GridColor = color.NRGBA{204, 204, 204, 128}

// Pen is the live stroke style of a canvas. Replays change it and restore it
// afterwards so the next incremental segment starts with the right style.
type Pen struct {
	Color color.RGBA
	Width int
}

// Canvas is a single flat raster layer with a current path position.
type Canvas struct {
	img        *image.RGBA
	background color.RGBA
	pen        Pen
	cur        image.Point
	open       bool
}

// NewCanvas allocates a canvas filled with the background colour.
func NewCanvas(w, h int, background color.RGBA) *Canvas {
	c := &Canvas{background: background, pen: Pen{Color: color.RGBA{0, 0, 0, 255}, Width: 1}}
	c.Resize(w, h)
	return c
}

// Image exposes the backing pixels.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Bounds returns the pixel bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Background returns the fill colour used by Fill.
func (c *Canvas) Background() color.RGBA { return c.background }

// SetBackground changes the fill colour. It takes effect on the next Fill.
func (c *Canvas) SetBackground(col color.RGBA) { c.background = col }

// Resize reallocates the pixel buffer. The new buffer is filled with the
// background and the open path is dropped.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.open = false
	c.Fill()
}

// Fill paints every pixel with the opaque background colour.
func (c *Canvas) Fill() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// Pen returns the live stroke style.
func (c *Canvas) Pen() Pen { return c.pen }

// SetPen replaces the live stroke style.
func (c *Canvas) SetPen(p Pen) {
	if p.Width < 1 {
		p.Width = 1
	}
	c.pen = p
}

// MoveTo starts a new open path at p without painting.
func (c *Canvas) MoveTo(p image.Point) {
	c.cur = p
	c.open = true
}

// LineTo paints one segment from the current position to p with the live pen
// and makes p the current position. Without an open path it behaves like
// MoveTo.
func (c *Canvas) LineTo(p image.Point) {
	if !c.open {
		c.MoveTo(p)
		return
	}
	drawLine(c.img, c.cur.X, c.cur.Y, p.X, p.Y, c.pen.Color, c.pen.Width)
	c.cur = p
}

// ClosePath forgets the current position.
func (c *Canvas) ClosePath() { c.open = false }

// Polyline paints a connected line through pts with a fixed style. Paths
// with fewer than two points paint nothing. The live pen is untouched.
func (c *Canvas) Polyline(pts []image.Point, col color.RGBA, width int) {
	if len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		drawLine(c.img, a.X, a.Y, b.X, b.Y, col, width)
	}
}

// Grid blends evenly spaced vertical and horizontal lines over the current
// pixels.
func (c *Canvas) Grid(spacing int, col color.Color) {
	if spacing <= 0 {
		return
	}
	b := c.img.Bounds()
	src := &image.Uniform{col}
	for x := b.Min.X; x < b.Max.X; x += spacing {
		draw.Draw(c.img, image.Rect(x, b.Min.Y, x+1, b.Max.Y), src, image.Point{}, draw.Over)
	}
	for y := b.Min.Y; y < b.Max.Y; y += spacing {
		draw.Draw(c.img, image.Rect(b.Min.X, y, b.Max.X, y+1), src, image.Point{}, draw.Over)
	}
}

// Clone returns a deep copy of the current pixels.
func (c *Canvas) Clone() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}
