package sketch

import (
	"errors"
	"image"
	"image/color"

	"github.com/example/sketchsolver/internal/render"
)

// ErrEmptyDrawing is returned when an export is asked for with no strokes.
var ErrEmptyDrawing = errors.New("please draw something first")

// Session is one drawing surface with its history. All methods are expected
// to run on a single goroutine, the window's event loop.
type Session struct {
	canvas  *render.Canvas
	history *History
	style   *Style
	rec     *Recorder
	sched   *Scheduler

	grid        bool
	gridSpacing int
	gridColor   color.Color

	// latest is the newest recorded position not yet painted by the live path.
	latest    image.Point
	unpainted bool
}

// Option configures a Session during creation.
type Option func(*Session)

// WithBackground sets the canvas fill, which is also the eraser colour.
func WithBackground(c color.RGBA) Option {
	return func(s *Session) { s.style.background = c; s.canvas.SetBackground(c) }
}

// WithColor sets the initial pen colour.
func WithColor(c color.RGBA) Option { return func(s *Session) { s.style.SetColor(c) } }

// WithBrushSize sets the initial brush size.
func WithBrushSize(n int) Option { return func(s *Session) { s.style.SetBrushSize(n) } }

// WithGrid enables the grid overlay from the start.
func WithGrid(on bool) Option { return func(s *Session) { s.grid = on } }

// WithGridSpacing overrides the grid spacing in pixels.
func WithGridSpacing(px int) Option {
	return func(s *Session) {
		if px > 0 {
			s.gridSpacing = px
		}
	}
}

// WithScheduler replaces the frame scheduler. The scheduler's frames must be
// fed back through RunFrame.
func WithScheduler(sc *Scheduler) Option { return func(s *Session) { s.sched = sc } }

// NewSession creates a session with a w by h canvas. Without WithScheduler
// incremental segments are painted synchronously on each move.
func NewSession(w, h int, opts ...Option) *Session {
	s := &Session{
		history:     &History{},
		style:       NewStyle(DefaultBackground),
		gridSpacing: render.GridSpacing,
		gridColor:   render.GridColor,
	}
	s.canvas = render.NewCanvas(w, h, s.style.Background())
	s.rec = NewRecorder(s.history, s.style)
	for _, o := range opts {
		o(s)
	}
	if s.sched == nil {
		s.sched = NewScheduler(0, s.RunFrame)
	}
	s.Repaint()
	return s
}

// History exposes the stroke history. Callers must not mutate it directly
// while a window is showing the session.
func (s *Session) History() *History { return s.history }

// Style exposes the current tool state.
func (s *Session) Style() *Style { return s.style }

// Image returns the live pixels for display.
func (s *Session) Image() *image.RGBA { return s.canvas.Image() }

// Size returns the canvas dimensions.
func (s *Session) Size() image.Point { return s.canvas.Bounds().Size() }

// Active reports whether a stroke is open.
func (s *Session) Active() bool { return s.rec.Active() }

// GridEnabled reports whether the grid overlay is shown.
func (s *Session) GridEnabled() bool { return s.grid }

// PointerDown opens a stroke at x, y. Nothing is painted until the pointer
// moves.
func (s *Session) PointerDown(x, y float64) {
	if !s.rec.Begin(x, y) {
		return
	}
	p, _ := s.rec.Last()
	s.canvas.SetPen(s.style.Pen())
	s.canvas.MoveTo(p.Pixel())
	s.unpainted = false
}

// PointerMove records a point and asks for a frame. Every point is stored;
// only the newest is guaranteed to be painted when the frame runs.
func (s *Session) PointerMove(x, y float64) {
	p, ok := s.rec.Extend(x, y)
	if !ok {
		return
	}
	s.latest = p.Pixel()
	s.unpainted = true
	s.sched.Request()
}

// RunFrame paints the live segment up to the newest point. Stale frames are
// ignored.
func (s *Session) RunFrame(f Frame) {
	if !s.sched.Take(f) {
		return
	}
	s.flush()
}

func (s *Session) flush() {
	if !s.rec.Active() || !s.unpainted {
		return
	}
	s.canvas.SetPen(s.style.Pen())
	s.canvas.LineTo(s.latest)
	s.unpainted = false
}

// PointerUp finishes the stroke. It reports whether the stroke was long
// enough to be kept.
func (s *Session) PointerUp() bool {
	if !s.rec.Active() {
		return false
	}
	s.sched.Cancel()
	s.flush()
	s.canvas.ClosePath()
	_, kept := s.rec.Finish()
	if kept && s.grid {
		s.Repaint()
	}
	return kept
}

// Undo removes the last stroke and repaints.
func (s *Session) Undo() bool {
	if !s.history.Undo() {
		return false
	}
	s.Repaint()
	return true
}

// Reset clears the history and repaints the bare background.
func (s *Session) Reset() {
	s.history.Reset()
	s.Repaint()
}

// SetGrid shows or hides the grid overlay.
func (s *Session) SetGrid(on bool) {
	if s.grid == on {
		return
	}
	s.grid = on
	s.Repaint()
}

// ToggleGrid flips the grid overlay and returns the new state.
func (s *Session) ToggleGrid() bool {
	s.SetGrid(!s.grid)
	return s.grid
}

// Resize reallocates the canvas and replays the history into it. Stored
// coordinates are not rescaled.
func (s *Session) Resize(w, h int) {
	if s.canvas.Bounds().Size() == image.Pt(w, h) {
		return
	}
	s.canvas.Resize(w, h)
	s.canvas.SetPen(s.style.Pen())
	s.Repaint()
}

// Repaint redraws the surface from scratch: background, every stroke in
// order, then the grid.
func (s *Session) Repaint() {
	s.sched.Cancel()
	s.canvas.Fill()
	for _, st := range s.history.strokes {
		if len(st) < MinStrokePoints {
			continue
		}
		first := st[0]
		s.canvas.Polyline(st.Pixels(), first.Color, first.BrushSize)
	}
	s.canvas.SetPen(s.style.Pen())
	if s.grid {
		s.canvas.Grid(s.gridSpacing, s.gridColor)
	}
	if s.rec.Active() {
		open := s.rec.path.Pixels()
		s.canvas.Polyline(open, s.style.PaintColor(), s.style.BrushSize())
		s.canvas.MoveTo(open[len(open)-1])
		s.unpainted = false
	}
}

// SetTool switches between pen and eraser.
func (s *Session) SetTool(t ToolKind) {
	s.style.SetTool(t)
	s.canvas.SetPen(s.style.Pen())
}

// SetColor changes the pen colour. It is refused while the eraser is active.
func (s *Session) SetColor(c color.RGBA) bool {
	if !s.style.SetColor(c) {
		return false
	}
	s.canvas.SetPen(s.style.Pen())
	return true
}

// SetBrushSize changes the brush for both tools.
func (s *Session) SetBrushSize(n int) {
	s.style.SetBrushSize(n)
	s.canvas.SetPen(s.style.Pen())
}

// Snapshot copies the current pixels for export. It fails with
// ErrEmptyDrawing when there is nothing in the history.
func (s *Session) Snapshot() (*image.RGBA, error) {
	if s.history.IsEmpty() {
		return nil, ErrEmptyDrawing
	}
	return s.canvas.Clone(), nil
}

// Load replaces the history with strokes and repaints. Strokes shorter than
// MinStrokePoints are dropped.
func (s *Session) Load(strokes []Stroke) {
	s.history.Reset()
	for _, st := range strokes {
		if len(st) >= MinStrokePoints {
			s.history.Append(st)
		}
	}
	s.Repaint()
}

// RegisterShortcuts binds the drawing actions of the session to d.
func (s *Session) RegisterShortcuts(d *Dispatcher) {
	d.Register(ActionUndo, UndoKeys, func() { s.Undo() })
	d.Register(ActionReset, ResetKeys, s.Reset)
	d.Register(ActionPen, PenKeys, func() { s.SetTool(ToolPen) })
	d.Register(ActionEraser, EraserKeys, func() { s.SetTool(ToolEraser) })
	d.Register(ActionGrid, GridKeys, func() { s.ToggleGrid() })
}
