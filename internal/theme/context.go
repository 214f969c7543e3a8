package theme

import "sync"

// Context is the process-wide view state: dark mode and the mobile layout.
// The window owns it and hands it to whatever needs to read it.
type Context struct {
	mu     sync.Mutex
	dark   bool
	mobile bool
}

// NewContext initialises dark mode from a theme name, typically the
// configured theme or SKETCHSOLVER_THEME.
func NewContext(themeName string, mobile bool) *Context {
	return &Context{dark: IsDark(themeName), mobile: mobile}
}

// Dark reports whether dark mode is on.
func (c *Context) Dark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// ToggleDark flips dark mode and returns the new value.
func (c *Context) ToggleDark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dark = !c.dark
	return c.dark
}

// Mobile reports whether the compact layout is in use.
func (c *Context) Mobile() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mobile
}

// SetMobile records the layout after a viewport change.
func (c *Context) SetMobile(mobile bool) {
	c.mu.Lock()
	c.mobile = mobile
	c.mu.Unlock()
}

// Pick returns dark when dark mode is on and light otherwise.
func (c *Context) Pick(light, dark *Theme) *Theme {
	if c.Dark() {
		return dark
	}
	return light
}
