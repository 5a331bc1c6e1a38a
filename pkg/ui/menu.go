package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/nav"
)

// Section is one navigation entry and the page it opens.
type Section struct {
	ID    string
	Title string
	Icon  string
	// Body is markdown, static or computed from the live layout.
	Body nav.Content
}

// MenuModel is the list of sections rendered inside the drawer.
type MenuModel struct {
	sections []Section
	visible  []int // indexes into sections, in display order

	filter    textinput.Model
	filtering bool

	cursor int // index into visible
	active string
	theme  Theme
}

// NewMenuModel creates a menu over sections with the first one active.
func NewMenuModel(sections []Section, theme Theme) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 32

	m := MenuModel{
		sections: sections,
		filter:   ti,
		theme:    theme,
	}
	m.applyFilter()
	if len(sections) > 0 {
		m.active = sections[0].ID
	}
	return m
}

// Sections returns all sections, unfiltered.
func (m MenuModel) Sections() []Section {
	return m.sections
}

// Active returns the section currently shown in the main content.
func (m MenuModel) Active() Section {
	for _, s := range m.sections {
		if s.ID == m.active {
			return s
		}
	}
	if len(m.sections) > 0 {
		return m.sections[0]
	}
	return Section{}
}

// SetActive opens the section with the given ID. Unknown IDs are ignored.
func (m *MenuModel) SetActive(id string) bool {
	for i, s := range m.sections {
		if s.ID != id {
			continue
		}
		m.active = id
		for vi, idx := range m.visible {
			if idx == i {
				m.cursor = vi
			}
		}
		return true
	}
	return false
}

// Cursor returns the highlighted section, if any are visible.
func (m MenuModel) Cursor() (Section, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return Section{}, false
	}
	return m.sections[m.visible[m.cursor]], true
}

// MoveUp moves the highlight up one row.
func (m *MenuModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the highlight down one row.
func (m *MenuModel) MoveDown() {
	if m.cursor < len(m.visible)-1 {
		m.cursor++
	}
}

// Select opens the highlighted section.
func (m *MenuModel) Select() bool {
	s, ok := m.Cursor()
	if !ok {
		return false
	}
	m.active = s.ID
	return true
}

// Filtering reports whether the filter input has focus.
func (m MenuModel) Filtering() bool {
	return m.filtering
}

// StartFilter focuses the filter input.
func (m *MenuModel) StartFilter() tea.Cmd {
	m.filtering = true
	return m.filter.Focus()
}

// StopFilter blurs the filter input. With clear it also drops the query.
func (m *MenuModel) StopFilter(clear bool) {
	m.filtering = false
	m.filter.Blur()
	if clear {
		m.filter.SetValue("")
		m.applyFilter()
	}
}

// Query returns the current filter text.
func (m MenuModel) Query() string {
	return m.filter.Value()
}

// SetQuery replaces the filter text.
func (m *MenuModel) SetQuery(q string) {
	m.filter.SetValue(q)
	m.applyFilter()
}

// Update feeds key input to the filter while it has focus.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	if !m.filtering {
		return m, nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *MenuModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	m.visible = nil
	if query == "" {
		for i := range m.sections {
			m.visible = append(m.visible, i)
		}
		m.cursor = 0
		return
	}

	searchStrings := make([]string, len(m.sections))
	for i, s := range m.sections {
		searchStrings[i] = s.Title + " " + s.ID
	}
	for _, match := range fuzzy.Find(query, searchStrings) {
		m.visible = append(m.visible, match.Index)
	}
	m.cursor = 0
}

// headerRows is the number of lines View emits before the first section.
func (m MenuModel) headerRows(collapsed bool) int {
	if !collapsed && (m.filtering || m.filter.Value() != "") {
		return 1
	}
	return 0
}

// SectionAt maps a line of View output to a section.
func (m MenuModel) SectionAt(line int, collapsed bool) (Section, bool) {
	i := line - m.headerRows(collapsed)
	if i < 0 || i >= len(m.visible) {
		return Section{}, false
	}
	return m.sections[m.visible[i]], true
}

// View renders one row per visible section. Collapsed drawers show icons
// only; labels are cut to the drawer width by the panel.
func (m MenuModel) View(ctx model.FullConfig) string {
	var b strings.Builder
	if m.headerRows(ctx.Collapsed) > 0 {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	t := m.theme
	normal := t.Renderer.NewStyle().Foreground(t.Text)
	cursor := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	active := t.Renderer.NewStyle().Foreground(t.Secondary)

	if len(m.visible) == 0 {
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Muted).Render("no matches"))
		return b.String()
	}

	for vi, idx := range m.visible {
		s := m.sections[idx]
		icon := s.Icon
		if icon == "" {
			icon = "•"
		}
		var line string
		if ctx.Collapsed {
			line = " " + icon
		} else {
			marker := " "
			if s.ID == m.active {
				marker = "▌"
			}
			line = fmt.Sprintf("%s%s %s", marker, icon, s.Title)
		}

		st := normal
		switch {
		case vi == m.cursor:
			st = cursor
		case s.ID == m.active:
			st = active
		}
		if vi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(st.Render(line))
	}
	return b.String()
}
