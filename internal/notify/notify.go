// Package notify raises desktop notifications when a drawing is solved,
// saved or copied.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"github.com/example/sketchsolver/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSubmit fires when the solver answers a submission.
	EventSubmit Event = "submit"
	// EventSave fires when a drawing is written to disk.
	EventSave Event = "save"
	// EventCopy fires when an image or result is placed on the clipboard.
	EventCopy Event = "copy"
)

// Events lists every known event.
var Events = []Event{EventSubmit, EventSave, EventCopy}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Events: map[Event]EventPreference{
			EventSubmit: {Template: "Solved: %s"},
			EventSave:   {Template: "Saved %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences applies SKETCHSOLVER_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SKETCHSOLVER_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range Events {
		key := "SKETCHSOLVER_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			p := prefs.Events[event]
			p.Template = v
			prefs.Events[event] = p
		}
	}
	return prefs
}

var send = platform.Notify

// Notifier sends OS-level notifications for enabled events. A nil Notifier
// sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	logger  pslog.Logger
}

// New creates a Notifier with every event disabled. logger may be nil.
func New(prefs Preferences, logger pslog.Logger) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), logger: logger}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event will produce a notification.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Submit reports a solver answer. summary is usually the result topic or
// first line; preview, when given, is shown as the icon.
func (n *Notifier) Submit(summary string, preview image.Image) {
	if !n.Enabled(EventSubmit) {
		return
	}
	if strings.TrimSpace(summary) == "" {
		summary = "answer received"
	}
	opts := platform.Options{AppName: n.prefs.Title}
	if preview != nil {
		if path, cleanup, err := createPreview(preview); err != nil {
			n.warn("notification preview failed", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventSubmit, summary, opts)
}

// Save reports a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{AppName: n.prefs.Title}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard write.
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.dispatch(EventCopy, detail, platform.Options{AppName: n.prefs.Title})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		n.warn("notification "+string(event)+" failed", err)
	}
}

func (n *Notifier) warn(msg string, err error) {
	if n.logger == nil {
		return
	}
	n.logger.With("err", err).Warn(msg)
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "sketchsolver-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
