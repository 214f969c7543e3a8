package appstate

import (
	"context"
	"image"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/clipboard"
	"github.com/example/sketchsolver/internal/export"
	"github.com/example/sketchsolver/internal/notify"
	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/solver"
	"github.com/example/sketchsolver/internal/theme"
)

// messageDuration is how long a status message stays up.
const messageDuration = 3 * time.Second

// Front end action names beyond the ones the session binds.
const (
	ActionDownload = "download"
	ActionCopy     = "copy"
	ActionComment  = "comment"
	ActionDark     = "dark"
	ActionQuit     = "quit"
	ActionExpand   = "expand"
	ActionRaw      = "raw"
	ActionCopyJSON = "copyjson"
)

var (
	downloadKeys = sketch.ShortcutList{{Code: key.CodeS, Modifiers: key.ModControl}, {Code: key.CodeS, Modifiers: key.ModMeta}}
	copyKeys     = sketch.ShortcutList{{Code: key.CodeC, Modifiers: key.ModControl}, {Code: key.CodeC, Modifiers: key.ModMeta}}
	commentKeys  = sketch.ShortcutList{{Rune: 'c'}}
	darkKeys     = sketch.ShortcutList{{Rune: 'd'}}
	quitKeys     = sketch.ShortcutList{{Rune: 'q'}}
	expandKeys   = sketch.ShortcutList{{Rune: 'v'}}
	rawKeys      = sketch.ShortcutList{{Rune: 'j'}}
	copyJSONKeys = sketch.ShortcutList{{Rune: 'y'}}
)

// Submitter sends a drawing to the solver.
type Submitter interface {
	Submit(ctx context.Context, image, comment string) (*solver.Result, error)
	Busy() bool
}

// submitDone carries a finished submission back to the event loop.
type submitDone struct {
	result   *solver.Result
	err      error
	snapshot *image.RGBA
}

// Controller holds everything the window shows apart from pixels: the
// session, the comment being typed, the last result and the status line.
// Its methods run on the event loop goroutine, except the submission
// request itself which reports back through post.
type Controller struct {
	session  *sketch.Session
	solver   Submitter
	notifier *notify.Notifier
	view     *theme.Context
	saveDir  string
	logger   pslog.Logger
	post     func(any)
	ctx      context.Context

	keys *sketch.Dispatcher

	editing bool
	comment []rune

	loading   bool
	result    *solver.Result
	expandAll bool
	raw       bool

	message      string
	messageErr   bool
	messageUntil time.Time
	quit         bool

	now         func() time.Time
	copyText    func(string) error
	copyDrawing func(export.Source) error
}

// NewController wires a session to its collaborators. post delivers values
// to the event loop; it may be called from any goroutine.
func NewController(s *sketch.Session, sub Submitter, n *notify.Notifier, view *theme.Context, saveDir string, logger pslog.Logger, post func(any)) *Controller {
	c := &Controller{
		session:     s,
		solver:      sub,
		notifier:    n,
		view:        view,
		saveDir:     saveDir,
		logger:      logger,
		post:        post,
		ctx:         context.Background(),
		keys:        sketch.NewDispatcher(),
		now:         time.Now,
		copyText:    clipboard.WriteText,
		copyDrawing: export.Copy,
	}
	c.keys.Enabled = func() bool { return !c.editing }
	s.RegisterShortcuts(c.keys)
	c.keys.Register(sketch.ActionSubmit, sketch.SubmitKeys, func() { c.Submit(c.ctx) })
	c.keys.Register(ActionDownload, downloadKeys, c.Download)
	c.keys.Register(ActionCopy, copyKeys, c.Copy)
	c.keys.Register(ActionComment, commentKeys, c.StartComment)
	c.keys.Register(ActionDark, darkKeys, func() { c.view.ToggleDark() })
	c.keys.Register(ActionQuit, quitKeys, func() { c.quit = true })
	c.keys.Register(ActionExpand, expandKeys, func() { c.expandAll = !c.expandAll })
	c.keys.Register(ActionRaw, rawKeys, func() { c.raw = !c.raw })
	c.keys.Register(ActionCopyJSON, copyJSONKeys, c.CopyJSON)
	return c
}

func (c *Controller) Session() *sketch.Session { return c.session }
func (c *Controller) View() *theme.Context { return c.view }
func (c *Controller) Quit() bool { return c.quit }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) Editing() bool { return c.editing }
func (c *Controller) Comment() string { return string(c.comment) }
func (c *Controller) Result() *solver.Result { return c.result }

// SetContext sets the context submissions started from keys and buttons
// run under.
func (c *Controller) SetContext(ctx context.Context) { c.ctx = ctx }

// Trigger runs a named action as if its shortcut had been pressed.
func (c *Controller) Trigger(name string) { c.keys.Trigger(name) }

// HasDrawing reports whether anything is stored to undo, export or submit.
func (c *Controller) HasDrawing() bool { return !c.session.History().IsEmpty() }

// CanSubmit reports whether the Submit control is enabled.
func (c *Controller) CanSubmit() bool { return c.HasDrawing() && !c.loading }

// Message returns the status message while it is current.
func (c *Controller) Message() (string, bool) {
	if c.message == "" || !c.now().Before(c.messageUntil) {
		return "", false
	}
	return c.message, c.messageErr
}

func (c *Controller) say(msg string) {
	c.message, c.messageErr, c.messageUntil = msg, false, c.now().Add(messageDuration)
}

func (c *Controller) fail(op string, err error) {
	c.message, c.messageErr, c.messageUntil = Notice(err), true, c.now().Add(messageDuration)
	if c.logger != nil {
		c.logger.With("op", op, "err", err).Warn("action failed")
	}
}

// Key handles a key press. While the comment is being edited runes go to
// the comment; otherwise the key is looked up as a shortcut.
func (c *Controller) Key(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if !c.editing {
		return c.keys.Dispatch(e)
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeEscape:
		c.editing = false
		return true
	case key.CodeDeleteBackspace:
		if len(c.comment) > 0 {
			c.comment = c.comment[:len(c.comment)-1]
		}
		return true
	}
	if e.Rune < ' ' || !utf8.ValidRune(e.Rune) {
		return false
	}
	if len(c.comment) >= solver.MaxCommentLength {
		return true
	}
	c.comment = append(c.comment, e.Rune)
	return true
}

// StartComment focuses the comment line.
func (c *Controller) StartComment() { c.editing = true }

// Download saves the drawing as drawing.png in the save directory.
func (c *Controller) Download() {
	path, err := export.Download(c.session, c.saveDir)
	if err != nil {
		c.fail(ActionDownload, err)
		return
	}
	c.say("saved " + path)
	c.notifier.Save(path)
}

// Copy places the drawing on the clipboard.
func (c *Controller) Copy() {
	if err := c.copyDrawing(c.session); err != nil {
		c.fail(ActionCopy, err)
		return
	}
	c.say("drawing copied to clipboard")
	c.notifier.Copy("drawing")
}

// CopyJSON places the raw result on the clipboard.
func (c *Controller) CopyJSON() {
	if c.result == nil {
		return
	}
	if err := c.copyText(c.result.JSON()); err != nil {
		c.fail(ActionCopyJSON, err)
		return
	}
	c.say("result copied to clipboard")
	c.notifier.Copy("result")
}

// Submit starts a submission of the drawing and comment. It returns at
// once; the answer arrives through post and is applied by Deliver.
func (c *Controller) Submit(ctx context.Context) {
	if c.loading {
		return
	}
	snap, err := c.session.Snapshot()
	if err != nil {
		c.fail(sketch.ActionSubmit, err)
		return
	}
	data, err := export.EncodePNG(snap)
	if err != nil {
		c.fail(sketch.ActionSubmit, err)
		return
	}
	payload := export.DataURL("image/png", data)
	comment := string(c.comment)
	c.loading = true
	c.editing = false
	c.say("solving...")
	go func() {
		res, err := c.solver.Submit(ctx, payload, comment)
		c.post(submitDone{result: res, err: err, snapshot: snap})
	}()
}

// Deliver applies a value posted back to the event loop. It reports whether
// the value was one the controller owns.
func (c *Controller) Deliver(v any) bool {
	done, ok := v.(submitDone)
	if !ok {
		return false
	}
	c.loading = false
	if done.err != nil {
		c.fail(sketch.ActionSubmit, done.err)
		return true
	}
	c.result = done.result
	c.expandAll = false
	c.raw = false
	c.message = ""
	summary, _ := done.result.Text("title")
	c.notifier.Submit(summary, done.snapshot)
	return true
}

// ResultLines is the result panel content.
func (c *Controller) ResultLines() []string {
	if c.result == nil {
		return nil
	}
	if c.raw {
		return strings.Split(c.result.JSON(), "\n")
	}
	return c.result.Format(solver.FormatOptions{ExpandAll: c.expandAll})
}
