package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/sketchsolver/internal/render"
	"github.com/example/sketchsolver/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var (
	resultFace  font.Face
	messageFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	resultFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paintState is everything drawFrame needs. It is built on the event loop
// and owned by the paint goroutine afterwards.
type paintState struct {
	layout     layout
	hover      int
	theme      *theme.Theme
	surface    *image.RGBA
	status     string
	statusErr  bool
	hint       string
	comment    string
	editing    bool
	result     []string
	overlay    string
	overlayErr bool
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	l := st.layout
	b, err := s.NewBuffer(image.Point{l.width, l.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme

	fill(dst, dst.Bounds(), th.Background)
	if st.surface != nil {
		draw.Draw(dst, l.surface, st.surface, image.Point{}, draw.Src)
		render.Rect(dst, l.surface.Inset(-1), th.SurfaceBorder, 1)
	}
	if ctx.Err() != nil {
		return
	}

	drawToolbar(dst, l, st.hover, th)
	if ctx.Err() != nil {
		return
	}

	drawResult(dst, l.result, st.result, th)
	drawStatus(dst, l.status, st, th)
	drawComment(dst, l.comment, st.comment, st.editing, th)
	if ctx.Err() != nil {
		return
	}

	if st.overlay != "" {
		drawOverlay(dst, l.surface, st.overlay, st.overlayErr, th)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func label(dst *image.RGBA, face font.Face, x, y int, c color.RGBA, s string) {
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{c}, Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// shade darkens c for hover feedback.
func shade(c color.RGBA) color.RGBA {
	return color.RGBA{c.R - c.R/8, c.G - c.G/8, c.B - c.B/8, c.A}
}

func drawToolbar(dst *image.RGBA, l layout, hover int, th *theme.Theme) {
	fill(dst, image.Rect(0, 0, l.toolbar, l.height), th.ToolbarBackground)
	label(dst, basicfont.Face7x13, 4, 16, th.Foreground, "sketchsolver")

	for i, ctl := range l.controls {
		switch ctl.kind {
		case kindButton:
			bg, fg := th.ButtonBackground, th.ButtonText
			switch {
			case !ctl.enabled:
				bg, fg = th.ButtonDisabled, th.ButtonTextDisabled
			case ctl.active:
				bg = th.ButtonActive
			case i == hover:
				bg = shade(bg)
			}
			fill(dst, ctl.rect, bg)
			render.Rect(dst, ctl.rect, th.ButtonBorder, 1)
			label(dst, basicfont.Face7x13, ctl.rect.Min.X+4, ctl.rect.Min.Y+16, fg, ctl.label)
		case kindSwatch:
			fill(dst, ctl.rect, ctl.color)
			if !ctl.enabled {
				dim := th.ToolbarBackground
				dim.A = 180
				draw.Draw(dst, ctl.rect, &image.Uniform{dim}, image.Point{}, draw.Over)
				continue
			}
			if i == hover {
				draw.Draw(dst, ctl.rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
			}
			if ctl.active {
				render.Rect(dst, ctl.rect.Inset(-2), th.Highlight, 2)
			} else {
				render.Rect(dst, ctl.rect, th.ButtonBorder, 1)
			}
		case kindWidth:
			bg := th.ToolbarBackground
			if ctl.active {
				bg = th.ButtonActive
			} else if i == hover {
				bg = shade(bg)
			}
			fill(dst, ctl.rect, bg)
			label(dst, basicfont.Face7x13, 4, ctl.rect.Min.Y+11, th.Foreground, ctl.label)
			mid := (ctl.rect.Min.Y + ctl.rect.Max.Y) / 2
			render.Line(dst, 24, mid, l.toolbar-6, mid, th.Foreground, ctl.size)
		}
	}
}

func drawResult(dst *image.RGBA, r image.Rectangle, lines []string, th *theme.Theme) {
	if len(lines) == 0 || r.Empty() {
		return
	}
	fill(dst, r, th.PanelBackground)
	render.Rect(dst, r, th.SurfaceBorder, 1)
	m := resultFace.Metrics()
	lh := (m.Ascent + m.Descent).Ceil() + 2
	y := r.Min.Y + 4 + m.Ascent.Ceil()
	for _, line := range lines {
		if y+m.Descent.Ceil() > r.Max.Y {
			label(dst, resultFace, r.Min.X+6, r.Max.Y-m.Descent.Ceil()-2, th.Foreground, "...")
			return
		}
		label(dst, resultFace, r.Min.X+6, y, th.Foreground, line)
		y += lh
	}
}

func drawStatus(dst *image.RGBA, r image.Rectangle, st paintState, th *theme.Theme) {
	fill(dst, r, th.ToolbarBackground)
	text, col := st.hint, th.Foreground
	if st.status != "" {
		text = st.status
		if st.statusErr {
			col = th.Error
		}
	}
	label(dst, basicfont.Face7x13, r.Min.X+4, r.Min.Y+16, col, text)
}

func drawComment(dst *image.RGBA, r image.Rectangle, comment string, editing bool, th *theme.Theme) {
	bg := th.PanelBackground
	if !editing {
		bg = th.ToolbarBackground
	}
	fill(dst, r, bg)
	render.Rect(dst, r, th.ButtonBorder, 1)
	text := comment
	col := th.Foreground
	switch {
	case editing:
		text += "|"
	case comment == "":
		text = "C: add a comment"
		col = th.ButtonTextDisabled
	}
	label(dst, basicfont.Face7x13, r.Min.X+4, r.Min.Y+16, col, text)
}

// drawOverlay centres a message box over the surface.
func drawOverlay(dst *image.RGBA, area image.Rectangle, msg string, isErr bool, th *theme.Theme) {
	d := &font.Drawer{Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.PanelBackground
	bg.A = 230
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	border := th.ButtonBorder
	if isErr {
		border = th.Error
	}
	render.Rect(dst, rect, border, 2)
	fg := th.Foreground
	if isErr {
		fg = th.Error
	}
	label(dst, messageFace, px, py, fg, msg)
}
