package nav

import "github.com/Dicklesworthstone/navshell/pkg/model"

// Derived is the per-render state computed from the layout context and props.
// Widths are in layout pixels.
type Derived struct {
	Variant     model.Variant
	Anchor      model.Anchor
	NavWidth    int
	Width       int
	Collapsible bool

	ShowCollapseButton bool
	ShowCloseButton    bool

	// Visible is false for a closed temporary or persistent drawer.
	Visible bool
	// Backdrop is true while a temporary drawer is open over the content.
	Backdrop bool
}

// Derive computes the render state. It has no side effects.
func Derive(ctx model.FullConfig, p Props) Derived {
	d := Derived{
		Variant:     ctx.Variant(),
		Anchor:      ctx.NavAnchor,
		NavWidth:    ctx.Width(),
		Collapsible: ctx.IsCollapsible(),
	}
	if d.Anchor == "" {
		d.Anchor = model.AnchorLeft
	}

	d.Width = d.NavWidth
	if d.Collapsible && ctx.Collapsed {
		d.Width = ctx.CollapsedWidth
	}

	d.ShowCollapseButton = d.Collapsible && p.RenderIcon != nil
	d.ShowCloseButton = ctx.Opened && d.Variant == model.VariantTemporary && p.RenderIcon != nil

	d.Visible = d.Variant == model.VariantPermanent || ctx.Opened
	d.Backdrop = d.Variant == model.VariantTemporary && ctx.Opened
	return d
}

// Dismiss closes the drawer, as a click outside a temporary drawer does.
func Dismiss(ctx model.FullConfig) {
	ctx.Open(false)
}

// PressClose handles a click on the floating close button.
func PressClose(ctx model.FullConfig) {
	ctx.Open(false)
}

// ToggleCollapse flips the collapsed state.
func ToggleCollapse(ctx model.FullConfig) {
	ctx.Collapse(!ctx.Collapsed)
}
