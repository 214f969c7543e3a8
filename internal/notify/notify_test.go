package notify

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		if opts.IconPath != "" {
			if _, statErr := os.Stat(opts.IconPath); statErr != nil {
				t.Errorf("expected icon %s to exist during send: %v", opts.IconPath, statErr)
			}
		}
		got = append(got, sent{title, body, opts})
		return err
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences(), nil)
	n.Submit("x", nil)
	n.Copy("x")
	var nilNotifier *Notifier
	nilNotifier.Save("x")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}
}

func TestSubmitUsesTemplateAndPreview(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences(), nil)
	n.Enable(EventSubmit, true)
	n.Submit("quadratic equation", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != platform.DefaultAppName || s.body != "Solved: quadratic equation" {
		t.Fatalf("unexpected notification %+v", s)
	}
	if s.opts.IconPath == "" {
		t.Fatal("expected preview icon")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("expected preview removed after send, got %v", err)
	}
}

func TestSaveUsesAbsolutePath(t *testing.T) {
	got := capture(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences(), nil)
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 || (*got)[0].body != "Saved "+path || (*got)[0].opts.IconPath != path {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestCopyDefaultDetail(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences(), nil)
	n.Enable(EventCopy, true)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied drawing to clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SKETCHSOLVER_NOTIFY_TITLE", "Maths")
	t.Setenv("SKETCHSOLVER_NOTIFY_SUBMIT_TEXT", "Answer for %s")
	prefs := LoadPreferences()
	if prefs.Title != "Maths" {
		t.Fatalf("expected title Maths, got %q", prefs.Title)
	}
	if prefs.Events[EventSubmit].Template != "Answer for %s" {
		t.Fatalf("unexpected submit template %q", prefs.Events[EventSubmit].Template)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Fatalf("expected default save template, got %q", prefs.Events[EventSave].Template)
	}
}

func TestSendFailureIsLogged(t *testing.T) {
	capture(t, errors.New("no bus"))
	var buf bytes.Buffer
	logger := pslog.NewWithOptions(&buf, pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.DebugLevel})
	n := New(DefaultPreferences(), logger)
	n.Enable(EventCopy, true)
	n.Copy("result")
	if !strings.Contains(buf.String(), "no bus") {
		t.Fatalf("expected error in log, got %q", buf.String())
	}
}
