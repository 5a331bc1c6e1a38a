package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/navshell/pkg/nav"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired, adaptive for light terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#F2F2F2", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1E1F29", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6272A4"}

	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#5A6A94", Dark: "#6272A4"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#1F9D4A", Dark: "#50FA7B"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#C46A00", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF5555"}
)

// Theme bundles the renderer and the colors every shell component draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	Base lipgloss.Style
}

// DefaultTheme returns the stock palette bound to r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		Subtext:   ColorSubtext,
		Muted:     ColorMuted,
		Border:    ColorBgHighlight,
		Highlight: ColorBgSubtle,
		Danger:    ColorDanger,
		Base:      r.NewStyle().Foreground(ColorText),
	}
}

// PlainTheme renders without any color or attributes. Used for the render
// command when output is not a terminal, and by tests.
func PlainTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return DefaultTheme(r)
}

// NavStyles derives the drawer styles from the theme.
func (t Theme) NavStyles() nav.Styles {
	s := nav.DefaultStyles(t.Renderer)
	s.Header = t.Renderer.NewStyle().Bold(true).Foreground(t.Primary)
	s.CollapseButton = t.Renderer.NewStyle().
		Align(lipgloss.Center).
		Foreground(t.Subtext).
		Background(t.Highlight)
	s.CloseButton = t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Foreground(t.Primary).
		Padding(0, 1)
	s.BorderColor = t.Border
	s.Classes = map[string]lipgloss.Style{
		"dense":  t.Renderer.NewStyle().Faint(true),
		"accent": t.Renderer.NewStyle().Foreground(t.Primary),
	}
	return s
}

// ══════════════════════════════════════════════════════════════════════════════
// CHROME - header bar, footer, backdrop
// ══════════════════════════════════════════════════════════════════════════════

func (t Theme) headerStyle() lipgloss.Style {
	return t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Text).
		Background(t.Highlight)
}

func (t Theme) footerStyle() lipgloss.Style {
	return t.Renderer.NewStyle().Foreground(t.Subtext)
}

func (t Theme) backdropStyle() lipgloss.Style {
	return t.Renderer.NewStyle().Faint(true).Foreground(t.Muted)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}

// RenderBadge renders a short inverse label, e.g. the active breakpoint.
func RenderBadge(t Theme, label string) string {
	return t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Render(label)
}
