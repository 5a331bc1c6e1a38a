package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel shows the key bindings in a bordered box
type HelpOverlayModel struct {
	visible bool
	keys    KeyMap
	theme   Theme
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(keys KeyMap, theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		keys:  keys,
		theme: theme,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			m.visible = false
		}
	}

	return m, nil
}

var helpSections = []string{"MENU", "DRAWER", "SHELL"}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(10)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	for i, group := range m.keys.FullHelp() {
		if i < len(helpSections) {
			b.WriteString(sectionStyle.Render(helpSections[i]) + "\n")
		}
		for _, kb := range group {
			if !kb.Enabled() {
				continue
			}
			h := kb.Help()
			b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
		b.WriteString("\n")
	}

	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	// Wrap in box
	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}

