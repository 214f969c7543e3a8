package sketch

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut is one key binding. Bindings match either on Code or on Rune,
// together with the exact modifier set.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts lists the bindings of an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// ShortcutList is the usual KeyboardShortcuts implementation.
type ShortcutList []KeyShortcut

func (s ShortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// Action names bound by RegisterShortcuts and by the front end.
const (
	ActionUndo   = "undo"
	ActionReset  = "reset"
	ActionSubmit = "submit"
	ActionPen    = "pen"
	ActionEraser = "eraser"
	ActionGrid   = "grid"
)

var (
	UndoKeys = ShortcutList{
		{Code: key.CodeZ, Modifiers: key.ModControl},
		{Code: key.CodeZ, Modifiers: key.ModMeta},
	}
	ResetKeys  = ShortcutList{{Code: key.CodeEscape}}
	SubmitKeys = ShortcutList{
		{Code: key.CodeReturnEnter, Modifiers: key.ModControl},
		{Code: key.CodeReturnEnter, Modifiers: key.ModMeta},
	}
	PenKeys    = ShortcutList{{Rune: 'p'}}
	EraserKeys = ShortcutList{{Rune: 'e'}}
	GridKeys   = ShortcutList{{Rune: 'g'}}
)

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// Dispatcher is a flat key to action table.
type Dispatcher struct {
	actions map[string]func()
	keys    map[KeyShortcut]string
	// Enabled, when set, must return true for Dispatch to act.
	Enabled func() bool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{actions: map[string]func(){}, keys: map[KeyShortcut]string{}}
}

// Register binds an action name to fn and to the given keys. Registering a
// name twice replaces the handler and adds the keys.
func (d *Dispatcher) Register(name string, keys KeyboardShortcuts, fn func()) {
	d.actions[name] = fn
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		sc.Rune = unicode.ToLower(sc.Rune)
		d.keys[sc] = name
	}
}

// Lookup returns the action bound to a key press.
func (d *Dispatcher) Lookup(e key.Event) (string, bool) {
	if e.Direction != key.DirPress {
		return "", false
	}
	mods := e.Modifiers & modMask
	if e.Code != key.CodeUnknown {
		if name, ok := d.keys[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
			return name, true
		}
	}
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if name, ok := d.keys[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return name, true
		}
		if name, ok := d.keys[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok {
			return name, true
		}
	}
	return "", false
}

// Dispatch runs the action bound to e. It reports true when the key was
// consumed, in which case the caller must not process it further.
func (d *Dispatcher) Dispatch(e key.Event) bool {
	if d.Enabled != nil && !d.Enabled() {
		return false
	}
	name, ok := d.Lookup(e)
	if !ok {
		return false
	}
	return d.Trigger(name)
}

// Trigger runs an action by name, as a toolbar button does.
func (d *Dispatcher) Trigger(name string) bool {
	fn, ok := d.actions[name]
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}

// Keys returns the bindings registered for name.
func (d *Dispatcher) Keys(name string) []KeyShortcut {
	var out []KeyShortcut
	for sc, n := range d.keys {
		if n == name {
			out = append(out, sc)
		}
	}
	return out
}
