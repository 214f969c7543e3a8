package sketch

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// MaxDimension caps the canvas width and height accepted from a file.
const MaxDimension = 16384

// Drawing is the on-disk form of a session: canvas size, background and the
// stroke history.
type Drawing struct {
	Width      int
	Height     int
	Background color.RGBA
	Strokes    []Stroke
}

type drawingFile struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Background string       `yaml:"background,omitempty"`
	Strokes    []strokeFile `yaml:"strokes"`
}

type strokeFile struct {
	Points []pointFile `yaml:"points"`
}

type pointFile struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"`
	Size  int     `yaml:"size"`
	Tool  string  `yaml:"tool,omitempty"`
}

// Drawing captures the session for saving.
func (s *Session) Drawing() Drawing {
	sz := s.Size()
	return Drawing{Width: sz.X, Height: sz.Y, Background: s.style.Background(), Strokes: s.history.Strokes()}
}

// WriteDrawing encodes d as YAML.
func WriteDrawing(w io.Writer, d Drawing) error {
	f := drawingFile{Width: d.Width, Height: d.Height, Background: Hex(d.Background)}
	for _, st := range d.Strokes {
		sf := strokeFile{Points: make([]pointFile, 0, len(st))}
		for _, p := range st {
			sf.Points = append(sf.Points, pointFile{
				X:     p.X,
				Y:     p.Y,
				Color: Hex(p.Color),
				Size:  p.BrushSize,
				Tool:  p.Tool.String(),
			})
		}
		f.Strokes = append(f.Strokes, sf)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode drawing: %w", err)
	}
	return enc.Close()
}

// ReadDrawing decodes a YAML drawing. Missing sizes are left zero, missing
// background becomes DefaultBackground, and missing brush sizes become
// DefaultBrushSize. Sizes outside 0..MaxDimension and coordinates that are
// not finite are rejected.
func ReadDrawing(r io.Reader) (Drawing, error) {
	var f drawingFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return Drawing{}, fmt.Errorf("decode drawing: %w", err)
	}
	if f.Width < 0 || f.Width > MaxDimension || f.Height < 0 || f.Height > MaxDimension {
		return Drawing{}, fmt.Errorf("decode drawing: size %dx%d outside 0..%d", f.Width, f.Height, MaxDimension)
	}
	d := Drawing{Width: f.Width, Height: f.Height, Background: DefaultBackground}
	if f.Background != "" {
		bg, err := LookupColor(f.Background)
		if err != nil {
			return Drawing{}, fmt.Errorf("background: %w", err)
		}
		d.Background = bg
	}
	for i, sf := range f.Strokes {
		st := make(Stroke, 0, len(sf.Points))
		for j, pf := range sf.Points {
			if !finite(pf.X) || !finite(pf.Y) {
				return Drawing{}, fmt.Errorf("stroke %d point %d: coordinate %v,%v is not finite", i, j, pf.X, pf.Y)
			}
			col, err := LookupColor(pf.Color)
			if err != nil {
				return Drawing{}, fmt.Errorf("stroke %d point %d: %w", i, j, err)
			}
			tool, err := ParseTool(pf.Tool)
			if err != nil {
				return Drawing{}, fmt.Errorf("stroke %d point %d: %w", i, j, err)
			}
			size := pf.Size
			if size == 0 {
				size = DefaultBrushSize
			}
			st = append(st, Point{X: pf.X, Y: pf.Y, Color: col, BrushSize: ClampBrushSize(size), Tool: tool})
		}
		d.Strokes = append(d.Strokes, st)
	}
	return d, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
