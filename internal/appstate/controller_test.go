package appstate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/sketchsolver/internal/export"
	"github.com/example/sketchsolver/internal/sketch"
	"github.com/example/sketchsolver/internal/solver"
	"github.com/example/sketchsolver/internal/theme"
	"github.com/example/sketchsolver/internal/upload"
)

type fakeSolver struct {
	mu       sync.Mutex
	images   []string
	comments []string
	res      *solver.Result
	err      error
}

func (f *fakeSolver) Submit(ctx context.Context, image, comment string) (*solver.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, image)
	f.comments = append(f.comments, comment)
	return f.res, f.err
}

func (f *fakeSolver) Busy() bool { return false }

func (f *fakeSolver) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

type harness struct {
	c      *Controller
	solver *fakeSolver
	posted chan any
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{solver: &fakeSolver{}, posted: make(chan any, 4)}
	s := sketch.NewSession(100, 80)
	h.c = NewController(s, h.solver, nil, theme.NewContext("", false), t.TempDir(), nil, func(v any) { h.posted <- v })
	return h
}

func (h *harness) stroke() {
	s := h.c.Session()
	s.PointerDown(10, 10)
	s.PointerMove(30, 40)
	s.PointerUp()
}

func (h *harness) await(t *testing.T) {
	t.Helper()
	select {
	case v := <-h.posted:
		if !h.c.Deliver(v) {
			t.Fatalf("expected controller to own %T", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for submission")
	}
}

func press(r rune) key.Event { return key.Event{Rune: r, Direction: key.DirPress} }

func code(c key.Code, mods key.Modifiers) key.Event {
	return key.Event{Rune: -1, Code: c, Modifiers: mods, Direction: key.DirPress}
}

func TestSubmitEmptyDrawingShowsNotice(t *testing.T) {
	h := newHarness(t)
	h.c.Submit(context.Background())
	msg, isErr := h.c.Message()
	if msg != "Please draw something first" || !isErr {
		t.Fatalf("expected empty drawing notice, got %q %v", msg, isErr)
	}
	if h.c.Loading() || h.solver.calls() != 0 {
		t.Fatal("expected no request to be sent")
	}
}

func TestSubmitSendsDrawingAndComment(t *testing.T) {
	h := newHarness(t)
	res, err := solver.ParseResult([]byte(`{"title":"Sum","steps":["1+1","= 2"]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.solver.res = res
	h.stroke()
	h.c.Key(press('c'))
	for _, r := range "what is this" {
		h.c.Key(press(r))
	}
	h.c.Key(code(key.CodeReturnEnter, 0))

	if !h.c.CanSubmit() {
		t.Fatal("expected submit enabled after a stroke")
	}
	h.c.Key(code(key.CodeReturnEnter, key.ModControl))
	if !h.c.Loading() || h.c.CanSubmit() {
		t.Fatal("expected loading state with submit disabled")
	}
	h.c.Submit(context.Background())
	h.await(t)

	if h.solver.calls() != 1 {
		t.Fatalf("expected a single request, got %d", h.solver.calls())
	}
	if !strings.HasPrefix(h.solver.images[0], "data:image/png;base64,") {
		t.Fatalf("unexpected payload prefix %.30q", h.solver.images[0])
	}
	if h.solver.comments[0] != "what is this" {
		t.Fatalf("unexpected comment %q", h.solver.comments[0])
	}
	if h.c.Loading() {
		t.Fatal("expected loading cleared")
	}
	lines := h.c.ResultLines()
	if len(lines) == 0 || lines[0] != "Topic: Sum" {
		t.Fatalf("unexpected result lines %q", lines)
	}
	h.c.Key(press('j'))
	if got := strings.Join(h.c.ResultLines(), "\n"); got != res.JSON() {
		t.Fatalf("expected raw json view, got %q", got)
	}
}

func TestSubmitFailureShowsGenericNotice(t *testing.T) {
	h := newHarness(t)
	h.solver.err = &solver.StatusError{Code: 502, Status: "502 Bad Gateway"}
	h.stroke()
	h.c.Submit(context.Background())
	h.await(t)
	msg, isErr := h.c.Message()
	if msg != "Failed to process your input. Please try again." || !isErr {
		t.Fatalf("unexpected notice %q", msg)
	}
	if h.c.Result() != nil || h.c.Loading() {
		t.Fatal("expected no result and loading cleared")
	}
}

func TestCommentEditingCapturesShortcutKeys(t *testing.T) {
	h := newHarness(t)
	h.c.Key(press('c'))
	if !h.c.Editing() {
		t.Fatal("expected comment focus")
	}
	h.c.Key(press('g'))
	if h.c.Session().GridEnabled() {
		t.Fatal("expected g to be typed, not toggle the grid")
	}
	h.c.Key(press('x'))
	h.c.Key(code(key.CodeDeleteBackspace, 0))
	if h.c.Comment() != "g" {
		t.Fatalf("expected comment g, got %q", h.c.Comment())
	}
	for i := 0; i < solver.MaxCommentLength+10; i++ {
		h.c.Key(press('a'))
	}
	if n := len([]rune(h.c.Comment())); n != solver.MaxCommentLength {
		t.Fatalf("expected comment capped at %d, got %d", solver.MaxCommentLength, n)
	}
	h.c.Key(code(key.CodeEscape, 0))
	if h.c.Editing() {
		t.Fatal("expected escape to leave the comment")
	}
	h.c.Key(press('g'))
	if !h.c.Session().GridEnabled() {
		t.Fatal("expected g to toggle the grid after editing")
	}
}

func TestDownloadWritesFixedName(t *testing.T) {
	h := newHarness(t)
	h.c.Download()
	if _, isErr := h.c.Message(); !isErr {
		t.Fatal("expected empty drawing to fail")
	}
	h.stroke()
	h.c.Key(code(key.CodeS, key.ModControl))
	path := filepath.Join(h.c.saveDir, export.DownloadName)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
	if msg, _ := h.c.Message(); msg != "saved "+path {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCopyUsesClipboard(t *testing.T) {
	h := newHarness(t)
	var copied int
	h.c.copyDrawing = func(src export.Source) error {
		if _, err := src.Snapshot(); err != nil {
			return err
		}
		copied++
		return nil
	}
	h.stroke()
	h.c.Key(code(key.CodeC, key.ModControl))
	if copied != 1 {
		t.Fatalf("expected one copy, got %d", copied)
	}
	if h.c.Editing() {
		t.Fatal("expected ctrl+c not to focus the comment")
	}

	h.c.copyDrawing = func(export.Source) error { return errors.New("no display") }
	h.c.Copy()
	if msg, isErr := h.c.Message(); !isErr || msg != Notice(errors.New("x")) {
		t.Fatalf("unexpected failure message %q", msg)
	}
}

func TestCopyJSONNeedsResult(t *testing.T) {
	h := newHarness(t)
	var text string
	h.c.copyText = func(s string) error { text = s; return nil }
	h.c.Key(press('y'))
	if text != "" {
		t.Fatal("expected nothing copied without a result")
	}
	h.c.result, _ = solver.ParseResult([]byte(`{"answer":42}`))
	h.c.Key(press('y'))
	if text != h.c.result.JSON() {
		t.Fatalf("expected raw json copied, got %q", text)
	}
}

func TestMessageExpires(t *testing.T) {
	h := newHarness(t)
	now := time.Unix(100, 0)
	h.c.now = func() time.Time { return now }
	h.c.Submit(context.Background())
	if msg, _ := h.c.Message(); msg == "" {
		t.Fatal("expected a message")
	}
	now = now.Add(messageDuration)
	if msg, _ := h.c.Message(); msg != "" {
		t.Fatalf("expected message expired, got %q", msg)
	}
}

func TestDarkAndQuitKeys(t *testing.T) {
	h := newHarness(t)
	h.c.Key(press('d'))
	if !h.c.View().Dark() {
		t.Fatal("expected dark mode")
	}
	h.c.Key(press('q'))
	if !h.c.Quit() {
		t.Fatal("expected quit")
	}
}

func TestNotice(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{sketch.ErrEmptyDrawing, "Please draw something first"},
		{upload.ErrTooLarge, "File size must be less than 1MB"},
		{upload.ErrNotImage, "Please upload an image file"},
		{upload.ErrNoFile, "Please select an image first"},
		{errors.New("connection refused"), "Failed to process your input. Please try again."},
		{&solver.StatusError{Code: 500}, "Failed to process your input. Please try again."},
		{errors.Join(errors.New("x"), solver.ErrBusy), "Please wait for the current request to finish"},
	}
	for _, tc := range cases {
		if got := Notice(tc.err); got != tc.want {
			t.Errorf("Notice(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
	if Notice(nil) != "" {
		t.Error("expected empty notice for nil")
	}
}
