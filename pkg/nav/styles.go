package nav

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the drawer's presentation. Classes maps ClassName tokens to
// extra styles layered on the container.
type Styles struct {
	Container      lipgloss.Style
	Header         lipgloss.Style
	Content        lipgloss.Style
	CollapseButton lipgloss.Style
	CloseButton    lipgloss.Style
	Border         lipgloss.Border
	BorderColor    lipgloss.TerminalColor

	Classes map[string]lipgloss.Style
}

// DefaultStyles returns the stock drawer styles for r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	border := lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	return Styles{
		Container: r.NewStyle(),
		Header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"}),
		Content: r.NewStyle(),
		CollapseButton: r.NewStyle().
			Align(lipgloss.Center).
			Background(lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#363949"}),
		CloseButton: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Border:      lipgloss.NormalBorder(),
		BorderColor: border,
	}
}

// container returns the container style with the class hook applied.
func (s Styles) container(className string) lipgloss.Style {
	st := s.Container
	for _, cls := range strings.Fields(className) {
		if extra, ok := s.Classes[cls]; ok {
			st = extra.Inherit(st)
		}
	}
	return st
}

func (s Styles) rule() lipgloss.Style {
	if s.BorderColor == nil {
		return s.Container
	}
	return s.Container.Foreground(s.BorderColor)
}
