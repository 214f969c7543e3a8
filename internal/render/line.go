package render

import (
	"image"
	"image/color"
	"math"
	"sync"
)

var (
	brushMu    sync.Mutex
	brushCache = map[int][]image.Point{}
)

// brush returns the pixel offsets covered by a round brush of the given
// diameter, centred on the origin.
func brush(width int) []image.Point {
	if width < 1 {
		width = 1
	}
	brushMu.Lock()
	defer brushMu.Unlock()
	if pts, ok := brushCache[width]; ok {
		return pts
	}
	r := float64(width) / 2
	lim := width / 2
	var pts []image.Point
	for dy := -lim; dy <= lim; dy++ {
		for dx := -lim; dx <= lim; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				pts = append(pts, image.Pt(dx, dy))
			}
		}
	}
	brushCache[width] = pts
	return pts
}

func stamp(img *image.RGBA, x, y int, tip []image.Point, col color.RGBA) {
	b := img.Bounds()
	for _, o := range tip {
		p := image.Pt(x+o.X, y+o.Y)
		if p.In(b) {
			img.SetRGBA(p.X, p.Y, col)
		}
	}
}

// drawLine rasterises a segment with round caps and joins by stamping the
// brush along a Bresenham walk. The walk is clipped to the image grown by the
// brush reach, so far away endpoints cost no more than visible ones.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, width int) {
	tip := brush(width)
	reach := width/2 + 1
	var ok bool
	x0, y0, x1, y1, ok = clipSegment(x0, y0, x1, y1, img.Bounds().Inset(-reach))
	if !ok {
		return
	}
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stamp(img, x0, y0, tip, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment trims a segment to r (Liang-Barsky). Segments already inside r
// are returned unchanged.
func clipSegment(x0, y0, x1, y1 int, r image.Rectangle) (int, int, int, int, bool) {
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	if image.Pt(x0, y0).In(r) && image.Pt(x1, y1).In(r) {
		return x0, y0, x1, y1, true
	}
	fx, fy := float64(x0), float64(y0)
	dx, dy := float64(x1)-fx, float64(y1)-fy
	edges := [4][2]float64{
		{-dx, fx - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - fx},
		{-dy, fy - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - fy},
	}
	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return int(math.Round(fx + t0*dx)), int(math.Round(fy + t0*dy)),
		int(math.Round(fx + t1*dx)), int(math.Round(fy + t1*dy)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Line draws a round-tipped line of the given width.
func Line(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, width int) {
	drawLine(img, x0, y0, x1, y1, col, width)
}

// Rect outlines r with a line of the given thickness.
func Rect(img *image.RGBA, r image.Rectangle, col color.RGBA, thick int) {
	drawLine(img, r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, col, thick)
	drawLine(img, r.Max.X-1, r.Min.Y, r.Max.X-1, r.Max.Y-1, col, thick)
	drawLine(img, r.Max.X-1, r.Max.Y-1, r.Min.X, r.Max.Y-1, col, thick)
	drawLine(img, r.Min.X, r.Max.Y-1, r.Min.X, r.Min.Y, col, thick)
}
