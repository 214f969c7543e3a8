// Package appstate is the interactive drawing window.
package appstate

import (
	"context"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/display"
	"github.com/example/sketchsolver/internal/input"
	"github.com/example/sketchsolver/internal/notify"
	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/surface"
	"github.com/example/sketchsolver/internal/theme"
)

// AppState holds what the window needs before it opens.
type AppState struct {
	Solver   Submitter
	Notifier *notify.Notifier
	View     *theme.Context
	Light    *theme.Theme
	Dark     *theme.Theme
	SaveDir  string
	Viewport image.Point

	sessionOpts []sketch.Option
	strokes     []sketch.Stroke
	logger      pslog.Logger
	onClose     func(*sketch.Session)
	closeOnce   sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSolver sets the submission backend.
func WithSolver(sub Submitter) Option { return func(a *AppState) { a.Solver = sub } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithThemes sets the light and dark themes and the shared view context.
func WithThemes(view *theme.Context, light, dark *theme.Theme) Option {
	return func(a *AppState) { a.View, a.Light, a.Dark = view, light, dark }
}

// WithSaveDir sets where downloads are written.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithViewport sets the screen size the window is fitted to.
func WithViewport(p image.Point) Option { return func(a *AppState) { a.Viewport = p } }

// WithSessionOptions passes options through to the drawing session.
func WithSessionOptions(opts ...sketch.Option) Option {
	return func(a *AppState) { a.sessionOpts = append(a.sessionOpts, opts...) }
}

// WithStrokes preloads a saved history.
func WithStrokes(strokes []sketch.Stroke) Option { return func(a *AppState) { a.strokes = strokes } }

// WithLogger sets the logger for action failures.
func WithLogger(l pslog.Logger) Option { return func(a *AppState) { a.logger = l } }

// WithOnClose registers a callback invoked with the session when the window
// closes.
func WithOnClose(fn func(*sketch.Session)) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{}
	for _, o := range opts {
		o(a)
	}
	if a.Viewport == (image.Point{}) {
		a.Viewport = display.DefaultViewport
	}
	if a.Light == nil {
		a.Light = theme.Light()
	}
	if a.Dark == nil {
		a.Dark = theme.Dark()
	}
	if a.View == nil {
		a.View = theme.NewContext("", surface.IsMobile(a.Viewport.X))
	}
	return a
}

// resizeEvent carries a debounced surface size to the event loop.
type resizeEvent struct{ size image.Point }

// windowSize fits the window inside the viewport.
func windowSize(viewport image.Point) image.Point {
	w, h := viewport.X*3/4, viewport.Y*3/4
	if w < 320 {
		w = 320
	}
	if h < 320 {
		h = 320
	}
	return image.Pt(w, h)
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run(ctx context.Context) {
	driver.Main(func(s screen.Screen) { a.Main(ctx, s) })
}

func (a *AppState) notifyClose(s *sketch.Session) {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose(s)
		}
	})
}

func (a *AppState) Main(ctx context.Context, s screen.Screen) {
	toolbar := toolbarWidthFor()
	win := windowSize(a.Viewport)
	width, height := win.X, win.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "sketchsolver"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	a.View.SetMobile(surface.IsMobile(width))
	sizer := surface.NewManager(func(p image.Point) { w.Send(resizeEvent{p}) })
	defer sizer.Stop()
	initial := sizer.Mount(containerWidth(width, toolbar, a.View.Mobile()), height)
	sched := sketch.NewScheduler(sketch.DefaultFrameInterval, func(f sketch.Frame) { w.Send(f) })
	defer sched.Cancel()
	opts := append([]sketch.Option{sketch.WithScheduler(sched)}, a.sessionOpts...)
	session := sketch.NewSession(initial.X, initial.Y, opts...)
	if len(a.strokes) > 0 {
		session.Load(a.strokes)
	}
	defer a.notifyClose(session)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			w.Send(lifecycle.Event{To: lifecycle.StageDead})
		case <-done:
		}
	}()

	c := NewController(session, a.Solver, a.Notifier, a.View, a.SaveDir, a.logger, w.Send)
	c.SetContext(ctx)
	pointer := input.NewUnifier(image.Rectangle{})
	lay := computeLayout(c, width, height, toolbar)
	pointer.SetSurface(lay.surface)
	hover := -1

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPainting := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	var expiry *time.Timer
	repaintLater := func() {
		if msg, _ := c.Message(); msg == "" {
			return
		}
		if expiry != nil {
			expiry.Stop()
		}
		expiry = time.AfterFunc(messageDuration, func() { w.Send(paint.Event{}) })
	}
	defer func() {
		if expiry != nil {
			expiry.Stop()
		}
	}()

	relayout := func() {
		lay = computeLayout(c, width, height, toolbar)
		pointer.SetSurface(lay.surface)
	}

	handlePointer := func(p input.Pointer) {
		switch p.Kind {
		case input.Down:
			session.PointerDown(p.X, p.Y)
		case input.Move:
			session.PointerMove(p.X, p.Y)
			return
		case input.Up:
			session.PointerUp()
		}
		w.Send(paint.Event{})
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case sketch.Frame:
			session.RunFrame(e)
			w.Send(paint.Event{})
		case resizeEvent:
			session.Resize(e.size.X, e.size.Y)
			relayout()
			w.Send(paint.Event{})
		case submitDone:
			c.Deliver(e)
			repaintLater()
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPainting()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			a.View.SetMobile(surface.IsMobile(width))
			sizer.Viewport(containerWidth(width, toolbar, a.View.Mobile()), height)
			relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			relayout()
			st := a.paintState(c, lay, hover)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if p, ok := pointer.Mouse(e); ok {
				handlePointer(p)
				continue
			}
			idx := lay.hit(image.Pt(int(e.X), int(e.Y)))
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && idx >= 0 {
				if c.activate(lay.controls[idx]) {
					repaintLater()
				}
				w.Send(paint.Event{})
				continue
			}
			if idx != hover {
				hover = idx
				w.Send(paint.Event{})
			}
		case touch.Event:
			p, ok, idx := lay.routeTouch(pointer, e)
			if ok {
				handlePointer(p)
			}
			if idx >= 0 {
				c.activate(lay.controls[idx])
				repaintLater()
				w.Send(paint.Event{})
			}
		case key.Event:
			if !c.Key(e) {
				continue
			}
			if c.Quit() {
				stopPainting()
				return
			}
			repaintLater()
			w.Send(paint.Event{})
		}
	}
}

func (a *AppState) paintState(c *Controller, l layout, hover int) paintState {
	src := c.Session().Image()
	snap := image.NewRGBA(src.Bounds())
	copy(snap.Pix, src.Pix)
	st := paintState{
		layout:  l,
		hover:   hover,
		theme:   a.View.Pick(a.Light, a.Dark),
		surface: snap,
		hint:    hint(c),
		comment: c.Comment(),
		editing: c.Editing(),
		result:  c.ResultLines(),
	}
	if msg, isErr := c.Message(); msg != "" {
		if isErr {
			st.overlay, st.overlayErr = msg, true
		} else {
			st.status = msg
		}
	}
	if c.Loading() {
		st.status = "solving..."
	}
	return st
}

// hint is the shortcut summary shown when there is no message.
func hint(c *Controller) string {
	parts := []string{"C:comment", "^Ret:submit", "G:grid", "D:dark", "Q:quit"}
	if c.Editing() {
		parts = []string{"Enter:done", "Esc:done", "Backspace:delete"}
	} else if c.Result() != nil {
		parts = append(parts, "V:expand steps", "J:raw json", "Y:copy json")
	}
	return strings.Join(parts, "  ")
}
