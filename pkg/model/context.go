package model

// FullConfig is a layout together with the live drawer state and the setters
// that change it. It is passed explicitly to the navigation panel and to any
// function-valued header or children.
type FullConfig struct {
	Config

	// Breakpoint is the breakpoint active for this render.
	Breakpoint Breakpoint

	Opened    bool
	Collapsed bool

	SetOpened    func(bool)
	SetCollapsed func(bool)
}

// Variant resolves the panel variant at the active breakpoint.
func (c FullConfig) Variant() Variant {
	return c.NavVariant.Resolve(c.Breakpoint)
}

// Width resolves the expanded panel width at the active breakpoint.
func (c FullConfig) Width() int {
	return c.NavWidth.Resolve(c.Breakpoint)
}

// IsCollapsible resolves collapsibility at the active breakpoint.
func (c FullConfig) IsCollapsible() bool {
	return c.Collapsible.Resolve(c.Breakpoint)
}

// Open calls SetOpened if one was supplied.
func (c FullConfig) Open(v bool) {
	if c.SetOpened != nil {
		c.SetOpened(v)
	}
}

// Collapse calls SetCollapsed if one was supplied.
func (c FullConfig) Collapse(v bool) {
	if c.SetCollapsed != nil {
		c.SetCollapsed(v)
	}
}
