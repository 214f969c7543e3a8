package display

import (
	"errors"
	"image"
	"testing"
)

type fakeBackend struct {
	mons []Monitor
	err  error
}

func (f fakeBackend) Monitors() ([]Monitor, error) { return f.mons, f.err }

func useBackend(t *testing.T, b platformBackend) {
	t.Helper()
	old := backend
	backend = b
	t.Cleanup(func() { backend = old })
}

var layout = []Monitor{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3200, 800), Primary: true},
}

func TestViewportUsesPrimary(t *testing.T) {
	useBackend(t, fakeBackend{mons: layout})
	got, err := Viewport("")
	if err != nil {
		t.Fatalf("viewport: %v", err)
	}
	if got != image.Pt(1280, 800) {
		t.Fatalf("expected primary size 1280x800, got %v", got)
	}
}

func TestFindSelectors(t *testing.T) {
	if m, err := Find(layout, "#0"); err != nil || m.Name != "HDMI-1" {
		t.Fatalf("expected HDMI-1 by index, got %v %v", m, err)
	}
	if m, err := Find(layout, "edp"); err != nil || m.Index != 1 {
		t.Fatalf("expected eDP-1 by name, got %v %v", m, err)
	}
	if _, err := Find(layout, "5"); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := Find(layout, "dp-9"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestViewportFallsBack(t *testing.T) {
	useBackend(t, fakeBackend{err: errors.New("no display")})
	got, err := Viewport("")
	if err == nil {
		t.Fatal("expected error from backend")
	}
	if got != DefaultViewport {
		t.Fatalf("expected default viewport, got %v", got)
	}

	useBackend(t, fakeBackend{})
	if _, err := Monitors(); !errors.Is(err, errNoMonitors) {
		t.Fatalf("expected errNoMonitors, got %v", err)
	}
}
