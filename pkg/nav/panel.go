package nav

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	reflowtrunc "github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/navshell/pkg/model"
)

// closeButtonOffset is the gap, in layout pixels, between the drawer edge
// and the floating close button, and between the button and the bottom edge.
const closeButtonOffset = 16

// collapseButtonRows is the rule plus the label row.
const collapseButtonRows = 2

// Props configures one render of the drawer.
type Props struct {
	// ClassName is a space-separated list of style hooks looked up in
	// Styles.Classes.
	ClassName string
	Header    Content
	// Children is required.
	Children   Content
	RenderIcon IconRenderer

	// Style is layered over the container style.
	Style lipgloss.Style
	// Height overrides the drawer height in rows. For top and bottom anchors
	// it defaults to a third of the available height.
	Height int
}

// Target identifies what a screen cell belongs to.
type Target int

const (
	TargetNone Target = iota
	TargetDrawer
	TargetCollapseButton
	TargetCloseButton
	TargetBackdrop
)

func (t Target) String() string {
	switch t {
	case TargetDrawer:
		return "drawer"
	case TargetCollapseButton:
		return "collapse"
	case TargetCloseButton:
		return "close"
	case TargetBackdrop:
		return "backdrop"
	default:
		return "none"
	}
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return r.W > 0 && r.H > 0 && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Rendered is the output of Layout: the drawer and the floating close button
// as strings, with the cell rectangles they occupy inside the region.
type Rendered struct {
	Derived

	Screen Rect

	Drawer       string
	DrawerRect   Rect
	CollapseRect Rect

	Close     string
	CloseRect Rect
}

// HitTest maps a cell to the element under it. The close button sits above
// the drawer, which sits above the backdrop.
func (r Rendered) HitTest(x, y int) Target {
	switch {
	case r.CloseRect.Contains(x, y):
		return TargetCloseButton
	case r.CollapseRect.Contains(x, y):
		return TargetCollapseButton
	case r.DrawerRect.Contains(x, y):
		return TargetDrawer
	case r.Backdrop && r.Screen.Contains(x, y):
		return TargetBackdrop
	}
	return TargetNone
}

// Panel renders the drawer. Besides the scroll position of its content
// region it keeps no state; opened and collapsed live in the FullConfig.
type Panel struct {
	Styles Styles
	Scale  model.Scale

	viewport viewport.Model
}

// New creates a drawer panel.
func New(scale model.Scale, styles Styles) Panel {
	return Panel{
		Styles:   styles,
		Scale:    scale,
		viewport: viewport.New(0, 0),
	}
}

// Layout renders the drawer into a width x height region.
func (p *Panel) Layout(ctx model.FullConfig, props Props, width, height int) Rendered {
	d := Derive(ctx, props)
	r := Rendered{Derived: d, Screen: Rect{W: width, H: height}}
	if width <= 0 || height <= 0 {
		return r
	}

	if d.ShowCloseButton {
		r.Close, r.CloseRect = p.closeButton(d, props, width, height)
	}
	if !d.Visible {
		return r
	}

	horizontal := d.Anchor.Horizontal()
	cols := clamp(p.Scale.Cells(d.Width), 1, width)
	rows := height
	if props.Height > 0 {
		rows = min(props.Height, height)
	} else if !horizontal {
		rows = max(3, height/3)
	}

	inner, innerH := cols, rows
	if horizontal && cols > 1 {
		inner--
	}
	if !horizontal && rows > 1 {
		innerH--
	}

	var parts []string
	used := 0
	if header := Render(props.Header, ctx); header != "" {
		h := p.Styles.Header.Width(inner).Render(truncateLines(header, inner))
		parts = append(parts, h)
		used += lipgloss.Height(h)
	}

	var button string
	if d.ShowCollapseButton {
		// The toggle always gets a setter; a nil one marks the close button.
		label := props.RenderIcon(ctx.Collapsed, ctx.Collapse)
		rule := p.Styles.rule().Render(strings.Repeat(p.Styles.Border.Top, inner))
		button = rule + "\n" + p.Styles.CollapseButton.Width(inner).
			Render(truncateLines(label, inner))
	}

	contentH := max(innerH-used, 0)
	if button != "" {
		contentH = max(contentH-collapseButtonRows, 0)
	}
	p.viewport.Width = inner
	p.viewport.Height = contentH
	p.viewport.SetContent(truncateLines(Render(props.Children, ctx), inner))
	if contentH > 0 {
		parts = append(parts, p.Styles.Content.Width(inner).Height(contentH).Render(p.viewport.View()))
	}
	if button != "" {
		parts = append(parts, button)
	}

	box := props.Style.Inherit(p.Styles.container(props.ClassName)).
		Width(inner).
		Height(innerH).
		MaxWidth(cols).
		MaxHeight(rows)
	if inner < cols || innerH < rows {
		box = box.Border(p.Styles.Border, borderSides(d.Anchor)...)
		if p.Styles.BorderColor != nil {
			box = box.BorderForeground(p.Styles.BorderColor)
		}
	}
	r.Drawer = box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	r.DrawerRect = Rect{W: cols, H: rows}
	switch d.Anchor {
	case model.AnchorRight:
		r.DrawerRect.X = width - cols
	case model.AnchorBottom:
		r.DrawerRect.Y = height - rows
	}

	if button != "" && used+collapseButtonRows <= innerH {
		x, y := r.DrawerRect.X, r.DrawerRect.Y+innerH-1
		if d.Anchor == model.AnchorRight && inner < cols {
			x++
		}
		if d.Anchor == model.AnchorBottom && innerH < rows {
			y++
		}
		r.CollapseRect = Rect{X: x, Y: y, W: inner, H: 1}
	}
	return r
}

// closeButton renders the floating close button next to the expanded drawer
// edge, near the bottom of the region.
func (p *Panel) closeButton(d Derived, props Props, width, height int) (string, Rect) {
	btn := p.Styles.CloseButton.Render(props.RenderIcon(false, nil))
	w, h := lipgloss.Width(btn), lipgloss.Height(btn)
	x := clamp(p.Scale.Cells(d.NavWidth+closeButtonOffset), 0, max(width-w, 0))
	y := clamp(height-h-p.Scale.Rows(closeButtonOffset), 0, max(height-h, 0))
	return btn, Rect{X: x, Y: y, W: w, H: h}
}

// Update routes mouse input. Coordinates are relative to the region passed
// to Layout. A left button press on the close button or the backdrop closes
// the drawer; a press on the collapse button flips collapsed; the wheel
// scrolls the content region. Releases are ignored.
func (p Panel) Update(msg tea.Msg, ctx model.FullConfig, props Props, width, height int) (Panel, Target, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return p, TargetNone, nil
	}
	r := p.Layout(ctx, props, width, height)
	target := r.HitTest(mouse.X, mouse.Y)

	switch {
	case mouse.Button == tea.MouseButtonWheelUp || mouse.Button == tea.MouseButtonWheelDown:
		if target != TargetDrawer {
			return p, TargetNone, nil
		}
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, target, cmd

	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft:
		switch target {
		case TargetCloseButton:
			PressClose(ctx)
		case TargetCollapseButton:
			ToggleCollapse(ctx)
		case TargetBackdrop:
			Dismiss(ctx)
		}
		return p, target, nil
	}
	return p, TargetNone, nil
}

// ScrollDown scrolls the content region by n lines.
func (p *Panel) ScrollDown(n int) {
	p.viewport.SetYOffset(p.viewport.YOffset + n)
}

// ScrollUp scrolls the content region back by n lines.
func (p *Panel) ScrollUp(n int) {
	p.viewport.SetYOffset(p.viewport.YOffset - n)
}

// ScrollOffset returns the first visible content line.
func (p Panel) ScrollOffset() int {
	return p.viewport.YOffset
}

func borderSides(a model.Anchor) []bool {
	// top, right, bottom, left
	switch a {
	case model.AnchorRight:
		return []bool{false, false, false, true}
	case model.AnchorTop:
		return []bool{false, false, true, false}
	case model.AnchorBottom:
		return []bool{true, false, false, false}
	default:
		return []bool{false, true, false, false}
	}
}

func truncateLines(s string, width int) string {
	if width <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if lipgloss.Width(l) > width {
			lines[i] = reflowtrunc.String(l, uint(width))
		}
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
