package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/nav"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// Options configures a shell Model.
type Options struct {
	Title string
	// Preset names the registry entry Layout was built from. Cycling
	// presets rebuilds from the registry with Overrides applied last.
	Preset    string
	Layout    model.Config
	Overrides model.Overrides

	Scale    model.Scale
	Sections []Section
	// State, when set, restores opened/collapsed/section at startup and
	// records changes.
	State *StateStore
	Theme *Theme
	// GlamourStyle is a glamour standard style name.
	GlamourStyle string
	RenderIcon   nav.IconRenderer
	Logger       *slog.Logger
	Clipboard    func(string) error
}

// ConfigReloadedMsg replaces the layout of a running shell. Opened and
// collapsed are kept.
type ConfigReloadedMsg struct {
	Preset    string
	Title     string
	Layout    model.Config
	Overrides model.Overrides
	Err       error
}

// stateChange collects setter calls made while handling one message.
type stateChange struct {
	opened    *bool
	collapsed *bool
}

// Model is the application shell: a header bar, the navigation drawer, the
// main content and a footer, laid out from a model.Config.
type Model struct {
	title      string
	presetName string
	layout     model.Config
	overrides  model.Overrides
	scale      model.Scale

	opened    bool
	collapsed bool

	width      int
	height     int
	breakpoint model.Breakpoint
	ready      bool

	theme       Theme
	keys        KeyMap
	help        help.Model
	helpOverlay HelpOverlayModel
	menu        MenuModel
	markdown    *MarkdownRenderer
	panel       nav.Panel
	content     viewport.Model
	renderIcon  nav.IconRenderer

	status    string
	statusErr bool

	state     *StateStore
	logger    *slog.Logger
	clipboard func(string) error
}

// DefaultIcon renders the collapse toggle as an arrow and the close button
// as a cross.
func DefaultIcon(collapsed bool, setCollapsed func(bool)) string {
	switch {
	case setCollapsed == nil:
		return "✕"
	case collapsed:
		return "»"
	default:
		return "« collapse"
	}
}

// NewModel creates a shell.
func NewModel(opts Options) Model {
	theme := DefaultTheme(nil)
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if opts.Scale == (model.Scale{}) {
		opts.Scale = model.Scale{CellPixels: model.DefaultCellPixels, RowPixels: model.DefaultRowPixels}
	}
	if opts.Sections == nil {
		opts.Sections = DefaultSections()
	}
	if opts.RenderIcon == nil {
		opts.RenderIcon = DefaultIcon
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Title == "" {
		opts.Title = "navshell"
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Styles.ShortKey = theme.Renderer.NewStyle().Foreground(theme.Primary)
	h.Styles.ShortDesc = theme.Renderer.NewStyle().Foreground(theme.Subtext)
	h.Styles.ShortSeparator = theme.Renderer.NewStyle().Foreground(theme.Muted)

	m := Model{
		title:       opts.Title,
		presetName:  opts.Preset,
		layout:      opts.Layout,
		overrides:   opts.Overrides,
		scale:       opts.Scale,
		theme:       theme,
		keys:        keys,
		help:        h,
		helpOverlay: NewHelpOverlayModel(keys, theme),
		menu:        NewMenuModel(opts.Sections, theme),
		markdown:    NewMarkdownRenderer(opts.GlamourStyle),
		panel:       nav.New(opts.Scale, theme.NavStyles()),
		content:     viewport.New(0, 0),
		renderIcon:  opts.RenderIcon,
		state:       opts.State,
		logger:      opts.Logger,
		clipboard:   opts.Clipboard,
	}

	if m.state != nil {
		st := m.state.Get()
		m.opened = st.Opened
		m.collapsed = st.Collapsed
		if st.Section != "" {
			m.menu.SetActive(st.Section)
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Opened reports whether the drawer is open.
func (m Model) Opened() bool { return m.opened }

// Collapsed reports whether the drawer is collapsed.
func (m Model) Collapsed() bool { return m.collapsed }

// Breakpoint returns the breakpoint for the current terminal width.
func (m Model) Breakpoint() model.Breakpoint { return m.breakpoint }

// Layout returns the active layout.
func (m Model) Layout() model.Config { return m.layout }

// PresetName returns the name of the active preset.
func (m Model) PresetName() string { return m.presetName }

// Status returns the footer status message.
func (m Model) Status() string { return m.status }

// ActiveSection returns the section shown in the main content.
func (m Model) ActiveSection() Section { return m.menu.Active() }

// Context returns the layout context without setters.
func (m Model) Context() model.FullConfig {
	return m.context(nil)
}

// context builds the FullConfig handed to the drawer. Setter calls are
// recorded into ch and applied once the message has been handled.
func (m Model) context(ch *stateChange) model.FullConfig {
	ctx := model.FullConfig{
		Config:     m.layout,
		Breakpoint: m.breakpoint,
		Opened:     m.opened,
		Collapsed:  m.collapsed,
	}
	if ch != nil {
		ctx.SetOpened = func(v bool) { ch.opened = &v }
		ctx.SetCollapsed = func(v bool) { ch.collapsed = &v }
	}
	return ctx
}

func (m *Model) apply(ch *stateChange) {
	if ch.opened == nil && ch.collapsed == nil {
		return
	}
	if ch.opened != nil {
		m.opened = *ch.opened
	}
	if ch.collapsed != nil {
		m.collapsed = *ch.collapsed
	}
	m.logger.Debug("drawer state changed",
		"opened", m.opened,
		"collapsed", m.collapsed,
		"breakpoint", m.breakpoint.String())
	m.recordState()
}

func (m *Model) recordState() {
	if m.state == nil {
		return
	}
	opened, collapsed := m.opened, m.collapsed
	section, name := m.menu.Active().ID, m.presetName
	m.state.Update(func(s *ShellState) {
		s.Opened = opened
		s.Collapsed = collapsed
		s.Section = section
		s.Preset = name
	})
}

func (m Model) props() nav.Props {
	title := m.title
	return nav.Props{
		Header: nav.Func(func(ctx model.FullConfig) string {
			if ctx.Collapsed {
				return ""
			}
			return title
		}),
		Children:   nav.Func(m.menu.View),
		RenderIcon: m.renderIcon,
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ch := &stateChange{}
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		bp := m.scale.BreakpointForColumns(msg.Width)
		if !m.ready || bp != m.breakpoint {
			m.logger.Debug("breakpoint", "breakpoint", bp.String(), "width", msg.Width)
		}
		m.breakpoint = bp
		m.ready = true

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.logger.Warn("config reload failed", "err", msg.Err)
			m.setStatus("reload failed: "+msg.Err.Error(), true)
			break
		}
		m.layout = msg.Layout
		m.overrides = msg.Overrides
		if msg.Preset != "" {
			m.presetName = msg.Preset
		}
		if msg.Title != "" {
			m.title = msg.Title
		}
		m.logger.Info("config reloaded", "preset", m.presetName)
		m.setStatus("config reloaded", false)

	case tea.KeyMsg:
		if m.helpOverlay.IsVisible() {
			m.helpOverlay, _ = m.helpOverlay.Update(msg)
			break
		}
		if m.menu.Filtering() {
			cmds = append(cmds, m.handleFilterKey(msg, ch))
			break
		}
		cmd := m.handleKey(msg, ch)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if m.helpOverlay.IsVisible() {
			m.helpOverlay, _ = m.helpOverlay.Update(msg)
			break
		}
		if cmd := m.handleMouse(msg, ch); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.apply(ch)
	m.syncContent()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg, ch *stateChange) tea.Cmd {
	ctx := m.context(ch)
	d := nav.Derive(ctx, m.props())

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.state != nil {
			if err := m.state.Save(); err != nil {
				m.logger.Warn("saving shell state", "path", m.state.Path(), "err", err)
			}
		}
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Toggle()

	case key.Matches(msg, m.keys.Menu):
		if d.Variant != model.VariantPermanent {
			ctx.Open(!ctx.Opened)
		}

	case key.Matches(msg, m.keys.Dismiss):
		switch {
		case m.menu.Query() != "":
			m.menu.StopFilter(true)
		case d.Variant != model.VariantPermanent && ctx.Opened:
			nav.Dismiss(ctx)
		}

	case key.Matches(msg, m.keys.Collapse):
		if d.Collapsible {
			nav.ToggleCollapse(ctx)
		}

	case key.Matches(msg, m.keys.Close):
		if d.ShowCloseButton {
			nav.PressClose(ctx)
		}

	case key.Matches(msg, m.keys.Up):
		m.menu.MoveUp()

	case key.Matches(msg, m.keys.Down):
		m.menu.MoveDown()

	case key.Matches(msg, m.keys.Select):
		m.selectSection(ctx, d)

	case key.Matches(msg, m.keys.PageUp):
		m.content.SetYOffset(m.content.YOffset - PageScroll)

	case key.Matches(msg, m.keys.PageDown):
		m.content.SetYOffset(m.content.YOffset + PageScroll)

	case key.Matches(msg, m.keys.Filter):
		if !d.Visible {
			ctx.Open(true)
		}
		if ctx.Collapsed {
			ctx.Collapse(false)
		}
		return m.menu.StartFilter()

	case key.Matches(msg, m.keys.Preset):
		m.cyclePreset()

	case key.Matches(msg, m.keys.Copy):
		m.copyLayout()
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg, ch *stateChange) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.menu.StopFilter(true)
		return nil
	case tea.KeyEnter:
		m.menu.StopFilter(false)
		ctx := m.context(ch)
		m.selectSection(ctx, nav.Derive(ctx, m.props()))
		return nil
	case tea.KeyUp:
		m.menu.MoveUp()
		return nil
	case tea.KeyDown:
		m.menu.MoveDown()
		return nil
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return cmd
}

// selectSection opens the highlighted section. A temporary drawer closes
// behind the selection.
func (m *Model) selectSection(ctx model.FullConfig, d nav.Derived) {
	if !m.menu.Select() {
		return
	}
	m.content.SetYOffset(0)
	if d.Variant == model.VariantTemporary && ctx.Opened {
		ctx.Open(false)
	}
	m.recordState()
}

func (m *Model) cyclePreset() {
	next := preset.Next(m.presetName)
	cfg, err := preset.Build(next, m.overrides)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.presetName = next
	m.layout = cfg
	m.logger.Info("preset changed", "preset", next)
	m.setStatus("preset: "+next, false)
	m.recordState()
}

func (m *Model) copyLayout() {
	data, err := yaml.Marshal(m.layout)
	if err != nil {
		m.setStatus("copy failed: "+err.Error(), true)
		return
	}
	if err := m.clipboard(string(data)); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		m.setStatus("copy failed: "+err.Error(), true)
		return
	}
	m.setStatus("layout copied to clipboard", false)
}

func (m *Model) handleMouse(msg tea.MouseMsg, ch *stateChange) tea.Cmd {
	ctx := m.context(ch)
	props := m.props()
	fr := m.frame()

	rel := msg
	rel.X -= fr.region.X
	rel.Y -= fr.region.Y

	var target nav.Target
	var cmd tea.Cmd
	m.panel, target, cmd = m.panel.Update(tea.MouseMsg(rel), ctx, props, fr.region.W, fr.region.H)

	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown

	switch {
	case target == nav.TargetDrawer && press:
		line := rel.Y - fr.nav.DrawerRect.Y - fr.drawerTop + m.panel.ScrollOffset()
		if s, ok := m.menu.SectionAt(line, ctx.Collapsed); ok {
			m.menu.SetActive(s.ID)
			m.content.SetYOffset(0)
			if fr.nav.Backdrop {
				ctx.Open(false)
			}
			m.recordState()
		}

	case target != nav.TargetNone:
		// buttons and backdrop were handled by the panel

	case press && fr.menuIcon.Contains(msg.X, msg.Y):
		if fr.nav.Variant != model.VariantPermanent {
			ctx.Open(!ctx.Opened)
		}

	case wheel && fr.content.Contains(msg.X, msg.Y):
		var vcmd tea.Cmd
		m.content, vcmd = m.content.Update(msg)
		return vcmd
	}
	return cmd
}

// frame is the screen geometry for one layout, in cells.
type frame struct {
	header   nav.Rect // zero when the header scrolls with the content
	menuIcon nav.Rect
	region   nav.Rect // where the drawer is laid out
	content  nav.Rect
	footer   nav.Rect

	// headerInContent is set when the header is the first content line.
	headerInContent bool
	// drawerTop is the number of drawer rows above the menu: border and
	// drawer header.
	drawerTop int

	nav nav.Rendered
}

func (m Model) frame() frame {
	var fr frame
	w, h := m.width, m.height
	ctx := m.context(nil)
	props := m.props()
	d := nav.Derive(ctx, props)
	cfg := m.layout

	vertical := !d.Anchor.Horizontal()
	fullHeader := cfg.Clipped || vertical
	pinned := cfg.HeaderPosition.Pinned() || fullHeader

	// Drawer region.
	if d.Variant == model.VariantTemporary {
		fr.region = nav.Rect{W: w, H: h}
	} else {
		top := 0
		if fullHeader {
			top = HeaderHeight
		}
		bottom := h
		if !cfg.FooterShrink || vertical {
			bottom -= FooterHeight
		}
		fr.region = nav.Rect{Y: top, W: w, H: max(bottom-top, 0)}
	}

	p := m.panel
	fr.nav = p.Layout(ctx, props, fr.region.W, fr.region.H)
	if d.Anchor == model.AnchorBottom && fr.nav.DrawerRect.H > 1 {
		fr.drawerTop = 1
	}
	if hdr := nav.Render(props.Header, ctx); hdr != "" {
		fr.drawerTop += lipgloss.Height(hdr)
	}

	docked := d.Visible && d.Variant != model.VariantTemporary
	dr := fr.nav.DrawerRect
	dr.X += fr.region.X
	dr.Y += fr.region.Y

	// Content column. Unless squeezed the content keeps the full width and
	// runs off the screen edge beside a docked drawer.
	cx, cw := 0, w
	if docked && !vertical {
		switch {
		case d.Anchor == model.AnchorLeft:
			cx = dr.W
			if cfg.Squeezed {
				cw = w - dr.W
			}
		case cfg.Squeezed:
			cw = w - dr.W
		}
	}
	visibleW := max(min(cw, w-cx), 0)

	top, bottom := 0, h-FooterHeight
	switch {
	case fullHeader:
		fr.header = nav.Rect{W: w, H: HeaderHeight}
		top = HeaderHeight
	case pinned:
		fr.header = nav.Rect{X: cx, W: visibleW, H: HeaderHeight}
		top = HeaderHeight
	default:
		fr.headerInContent = true
	}
	if docked && vertical {
		if d.Anchor == model.AnchorTop {
			top = dr.Y + dr.H
		} else {
			bottom = dr.Y
		}
	}
	fr.content = nav.Rect{X: cx, Y: top, W: cw, H: max(bottom-top, 0)}
	switch {
	case fr.header.W > 0:
		fr.menuIcon = nav.Rect{X: fr.header.X, Y: fr.header.Y, W: MenuIconWidth, H: 1}
	case m.content.YOffset == 0:
		// the scrolling header is still on screen
		fr.menuIcon = nav.Rect{X: cx, Y: fr.content.Y, W: MenuIconWidth, H: 1}
	}

	// Footer.
	fr.footer = nav.Rect{Y: h - FooterHeight, W: w, H: FooterHeight}
	if cfg.FooterShrink && docked && !vertical {
		fr.footer.X = cx
		fr.footer.W = visibleW
	}
	return fr
}

// syncContent sizes the content viewport and fills it with the active
// section.
func (m *Model) syncContent() {
	if !m.ready {
		return
	}
	fr := m.frame()
	m.content.Width = fr.content.W
	m.content.Height = fr.content.H

	body := m.markdown.Render(nav.Render(m.menu.Active().Body, m.context(nil)), max(fr.content.W, 1))
	if fr.headerInContent {
		body = m.renderHeader(fr.content.W) + "\n" + body
	}
	offset := m.content.YOffset
	m.content.SetContent(body)
	m.content.SetYOffset(offset)
}

func (m Model) renderHeader(width int) string {
	if width <= 0 {
		return ""
	}
	icon := "≡ "
	left := icon + m.title
	right := RenderBadge(m.theme, fmt.Sprintf("%s · %s · %s", m.presetName, m.breakpoint, m.context(nil).Variant()))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap >= 1 {
		line = left + strings.Repeat(" ", gap) + right
	}
	return m.theme.headerStyle().Width(width).MaxWidth(width).Render(line)
}

func (m Model) renderFooter(width int) string {
	if width <= 0 {
		return ""
	}
	text := m.help.View(m.keys)
	st := m.theme.footerStyle()
	if m.status != "" {
		text = m.status
		if m.statusErr {
			st = st.Foreground(m.theme.Danger)
		}
	}
	return st.Width(width).MaxWidth(width).Render(text)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.width < MinShellWidth || m.height < MinShellHeight {
		return fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
			m.width, m.height, MinShellWidth, MinShellHeight)
	}

	fr := m.frame()
	c := newCanvas(m.width, m.height)

	if fr.content.W > 0 && fr.content.H > 0 {
		c.paint(m.content.View(), fr.content.X, fr.content.Y, fr.content.W)
	}
	if fr.header.W > 0 {
		c.paint(m.renderHeader(fr.header.W), fr.header.X, fr.header.Y, fr.header.W)
	}
	c.paint(m.renderFooter(fr.footer.W), fr.footer.X, fr.footer.Y, fr.footer.W)

	if fr.nav.Backdrop {
		c.dim(m.theme.backdropStyle())
	}
	if fr.nav.Drawer != "" {
		c.paint(fr.nav.Drawer, fr.region.X+fr.nav.DrawerRect.X, fr.region.Y+fr.nav.DrawerRect.Y, fr.nav.DrawerRect.W)
	}
	if fr.nav.Close != "" {
		c.paint(fr.nav.Close, fr.region.X+fr.nav.CloseRect.X, fr.region.Y+fr.nav.CloseRect.Y, fr.nav.CloseRect.W)
	}

	if m.helpOverlay.IsVisible() {
		box := m.helpOverlay.View()
		x := max((m.width-lipgloss.Width(box))/2, 0)
		y := max((m.height-lipgloss.Height(box))/2, 0)
		c.paint(box, x, y, 0)
	}
	return c.String()
}

// RenderFrame lays out a shell at the given size and returns one frame.
func RenderFrame(opts Options, width, height int) string {
	var tm tea.Model = NewModel(opts)
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return tm.View()
}
