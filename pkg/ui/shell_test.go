package ui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/nav"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func testOptions(name string) Options {
	theme := PlainTheme(io.Discard)
	cfg, _ := preset.Build(name, model.Overrides{})
	return Options{
		Title:        "navshell",
		Preset:       name,
		Layout:       cfg,
		Theme:        &theme,
		GlamourStyle: GlamourNoTTY,
		Clipboard:    func(string) error { return nil },
	}
}

func newTestShell(t *testing.T, opts Options, width, height int) Model {
	t.Helper()
	return send(NewModel(opts), tea.WindowSizeMsg{Width: width, Height: height})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		tm, _ := m.Update(msg)
		m = tm.(Model)
	}
	return m
}

func TestShellBreakpointFromWidth(t *testing.T) {
	tests := []struct {
		width int
		want  model.Breakpoint
	}{
		{40, model.XS},
		{80, model.SM},
		{100, model.SM},
		{130, model.MD},
		{200, model.LG},
	}
	for _, tt := range tests {
		m := newTestShell(t, testOptions(preset.NameDefault), tt.width, 20)
		if m.Breakpoint() != tt.want {
			t.Errorf("width %d: breakpoint %s, want %s", tt.width, m.Breakpoint(), tt.want)
		}
	}
}

func TestShellMenuKeyOpensTemporaryDrawer(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	if m.Context().Variant() != model.VariantTemporary {
		t.Fatalf("expected temporary at xs, got %s", m.Context().Variant())
	}
	if m.Opened() {
		t.Fatal("drawer should start closed")
	}
	if strings.Contains(m.View(), "⌂ Overview") {
		t.Error("closed temporary drawer should not render the menu")
	}

	m = send(m, keyMsg("m"))
	if !m.Opened() {
		t.Fatal("m should open the drawer")
	}
	view := m.View()
	if !strings.Contains(view, "⌂ Overview") {
		t.Error("open drawer should render the menu")
	}
	if !strings.Contains(view, "✕") {
		t.Error("open temporary drawer should show the close button")
	}

	m = send(m, keyMsg("x"))
	if m.Opened() {
		t.Error("x should close the drawer")
	}
}

func TestShellEscDismissesTemporary(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	m = send(m, keyMsg("m"), keyMsg("esc"))
	if m.Opened() {
		t.Error("esc should dismiss the drawer")
	}
}

func TestShellMenuKeyIgnoredWhenPermanent(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	if m.Context().Variant() != model.VariantPermanent {
		t.Fatalf("expected permanent at sm, got %s", m.Context().Variant())
	}
	m = send(m, keyMsg("m"), keyMsg("esc"))
	if m.Opened() {
		t.Error("permanent drawer should not toggle opened")
	}
	if !strings.Contains(m.View(), "⌂ Overview") {
		t.Error("permanent drawer should always render")
	}
}

func TestShellCollapseKey(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	m = send(m, keyMsg("["))
	if !m.Collapsed() {
		t.Fatal("[ should collapse a collapsible drawer")
	}
	if strings.Contains(m.View(), "Overview") {
		t.Error("collapsed drawer should show icons only")
	}
	m = send(m, keyMsg("["))
	if m.Collapsed() {
		t.Error("second [ should expand")
	}

	xs := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	xs = send(xs, keyMsg("["))
	if xs.Collapsed() {
		t.Error("[ should be ignored when not collapsible")
	}
}

func TestShellCollapseButtonClick(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	m = send(m, click(1, 19))
	if !m.Collapsed() {
		t.Error("click on the collapse button should collapse")
	}
	if m.Opened() {
		t.Error("collapse click must not touch opened")
	}
}

func TestShellBackdropClickDismisses(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	m = send(m, keyMsg("m"), click(50, 5))
	if m.Opened() {
		t.Error("click on the backdrop should dismiss")
	}
}

func TestShellMenuIconClickOpens(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	m = send(m, click(0, 0))
	if !m.Opened() {
		t.Error("click on the header menu icon should open the drawer")
	}

	// pinned full-width header
	clipped := newTestShell(t, testOptions(preset.NameMuiTreasury), 60, 20)
	clipped = send(clipped, click(0, 0))
	if !clipped.Opened() {
		t.Error("click on the clipped header menu icon should open the drawer")
	}
}

func TestShellCloseButtonClick(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	m = send(m, keyMsg("m"))

	// 256px + 16px at 8px per column, 16px above the bottom at 16px per row.
	m = send(m, click(35, 17))
	if m.Opened() {
		t.Error("click on the close button should close the drawer")
	}
}

func TestShellClickSelectsSection(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	// Row 0 is the drawer header; sections start at row 1.
	m = send(m, click(3, 3))
	if got := m.ActiveSection().ID; got != "presets" {
		t.Errorf("active section %q, want presets", got)
	}
}

func TestShellKeyboardSelection(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 60, 20)
	m = send(m, keyMsg("m"), keyMsg("j"), keyMsg("enter"))
	if got := m.ActiveSection().ID; got != "layout" {
		t.Errorf("active section %q, want layout", got)
	}
	if m.Opened() {
		t.Error("selecting from a temporary drawer should close it")
	}
}

func TestShellFilter(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	m = send(m, keyMsg("/"))
	if !m.menu.Filtering() {
		t.Fatal("/ should focus the filter")
	}
	for _, r := range "break" {
		m = send(m, keyMsg(string(r)))
	}
	if m.menu.Query() != "break" {
		t.Fatalf("query %q, want break", m.menu.Query())
	}
	m = send(m, keyMsg("enter"))
	if got := m.ActiveSection().ID; got != "breakpoints" {
		t.Errorf("active section %q, want breakpoints", got)
	}

	m = send(m, keyMsg("esc"))
	if m.menu.Query() != "" {
		t.Error("esc should clear a leftover query")
	}
}

func TestShellPresetCycle(t *testing.T) {
	opts := testOptions(preset.NameDefault)
	opts.Overrides = model.Overrides{CollapsedWidth: model.Ptr(80)}
	m := newTestShell(t, opts, 100, 20)

	m = send(m, keyMsg("p"))
	if m.PresetName() != preset.NameFixed {
		t.Fatalf("preset %q, want fixed", m.PresetName())
	}
	want := preset.FixedLayout(opts.Overrides)
	if !m.Layout().Equal(want) {
		t.Errorf("layout after cycling should be the fixed preset with overrides")
	}
	if m.Layout().CollapsedWidth != 80 {
		t.Errorf("overrides should survive a preset change, got %d", m.Layout().CollapsedWidth)
	}
	if !strings.Contains(m.Status(), "fixed") {
		t.Errorf("status %q should name the preset", m.Status())
	}
}

func TestShellCopyLayout(t *testing.T) {
	var copied string
	opts := testOptions(preset.NameDefault)
	opts.Clipboard = func(s string) error {
		copied = s
		return nil
	}
	m := newTestShell(t, opts, 100, 20)
	m = send(m, keyMsg("y"))
	if !strings.Contains(copied, "navWidth: 256") {
		t.Errorf("clipboard missing navWidth:\n%s", copied)
	}

	opts.Clipboard = func(string) error { return errors.New("no clipboard") }
	m = newTestShell(t, opts, 100, 20)
	m = send(m, keyMsg("y"))
	if !m.statusErr || !strings.Contains(m.Status(), "no clipboard") {
		t.Errorf("clipboard error should reach the status line, got %q", m.Status())
	}
}

func TestShellConfigReloadKeepsDrawerState(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	m = send(m, keyMsg("["))

	cozy := preset.CozyLayout(model.Overrides{})
	m = send(m, ConfigReloadedMsg{Preset: preset.NameCozy, Layout: cozy})
	if !m.Layout().Equal(cozy) {
		t.Error("reload should replace the layout")
	}
	if m.PresetName() != preset.NameCozy {
		t.Errorf("preset %q, want cozy", m.PresetName())
	}
	if !m.Collapsed() {
		t.Error("reload should keep collapsed")
	}

	m = send(m, ConfigReloadedMsg{Err: errors.New("bad yaml")})
	if !m.Layout().Equal(cozy) {
		t.Error("failed reload should keep the previous layout")
	}
	if !strings.Contains(m.Status(), "bad yaml") {
		t.Errorf("status %q should carry the reload error", m.Status())
	}
}

func TestShellHelpOverlay(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 30)
	m = send(m, keyMsg("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("? should show the help overlay")
	}
	m = send(m, keyMsg("["))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("any key should close the help overlay")
	}
	if m.Collapsed() {
		t.Error("the key closing help should not reach the shell")
	}
}

func TestShellQuitSavesState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStateStore(path)
	opts := testOptions(preset.NameDefault)
	opts.State = store

	m := newTestShell(t, opts, 100, 20)
	// Collapsed drawers have no header row, so row 1 is the second section.
	m = send(m, keyMsg("["), click(3, 1))

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}

	reloaded := NewStateStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	st := reloaded.Get()
	if !st.Collapsed {
		t.Error("collapsed should be persisted")
	}
	if st.Section != "layout" {
		t.Errorf("section %q, want layout", st.Section)
	}
	if st.Preset != preset.NameDefault {
		t.Errorf("preset %q, want default", st.Preset)
	}

	restored := newTestShell(t, Options{
		Layout: preset.DefaultLayout(model.Overrides{}),
		State:  reloaded,
		Theme:  opts.Theme,
	}, 100, 20)
	if !restored.Collapsed() || restored.ActiveSection().ID != "layout" {
		t.Error("a new shell should restore the saved state")
	}
}

func TestShellViewDockedLayout(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "navshell") {
		t.Errorf("drawer header should start row 0: %q", lines[0])
	}
	if !strings.Contains(lines[0], "≡ navshell") {
		t.Errorf("relative header should sit beside the drawer: %q", lines[0])
	}
	// footerShrink: the drawer runs to the bottom row beside the footer.
	if !strings.Contains(lines[19], "« collapse") {
		t.Errorf("collapse button should occupy the last row: %q", lines[19])
	}
	if !strings.Contains(lines[19], "toggle menu") {
		t.Errorf("footer should share the last row: %q", lines[19])
	}
}

func TestShellFrameGeometry(t *testing.T) {
	t.Run("default not squeezed", func(t *testing.T) {
		m := newTestShell(t, testOptions(preset.NameDefault), 100, 20)
		fr := m.frame()
		if fr.region != (nav.Rect{X: 0, Y: 0, W: 100, H: 20}) {
			t.Errorf("region %+v", fr.region)
		}
		if fr.content != (nav.Rect{X: 32, Y: 0, W: 100, H: 19}) {
			t.Errorf("content %+v", fr.content)
		}
		if !fr.headerInContent {
			t.Error("relative header should scroll with the content")
		}
		if fr.footer != (nav.Rect{X: 32, Y: 19, W: 68, H: 1}) {
			t.Errorf("footer %+v", fr.footer)
		}
	})

	t.Run("fixed clipped and squeezed", func(t *testing.T) {
		m := newTestShell(t, testOptions(preset.NameFixed), 130, 20)
		fr := m.frame()
		if fr.header != (nav.Rect{X: 0, Y: 0, W: 130, H: 1}) {
			t.Errorf("clipped header should span the width: %+v", fr.header)
		}
		if fr.region.Y != 1 {
			t.Errorf("clipped drawer should start below the header, got y=%d", fr.region.Y)
		}
		if fr.content != (nav.Rect{X: 32, Y: 1, W: 98, H: 18}) {
			t.Errorf("content %+v", fr.content)
		}
		lines := strings.Split(m.View(), "\n")
		if !strings.HasPrefix(lines[0], "≡ navshell") {
			t.Errorf("row 0 should be the header: %q", lines[0])
		}
	})

	t.Run("no footer shrink", func(t *testing.T) {
		opts := testOptions(preset.NameDefault)
		opts.Layout = preset.DefaultLayout(model.Overrides{FooterShrink: model.Ptr(false)})
		m := newTestShell(t, opts, 100, 20)
		fr := m.frame()
		if fr.region.H != 19 {
			t.Errorf("drawer should stop above the footer, height %d", fr.region.H)
		}
		if fr.footer != (nav.Rect{X: 0, Y: 19, W: 100, H: 1}) {
			t.Errorf("footer %+v", fr.footer)
		}
	})

	t.Run("right anchor overlaps unsqueezed content", func(t *testing.T) {
		opts := testOptions(preset.NameDefault)
		opts.Layout = preset.DefaultLayout(model.Overrides{NavAnchor: model.Ptr(model.AnchorRight)})
		m := newTestShell(t, opts, 100, 20)
		fr := m.frame()
		if fr.nav.DrawerRect.X != 68 {
			t.Errorf("drawer x %d, want 68", fr.nav.DrawerRect.X)
		}
		if fr.content.X != 0 || fr.content.W != 100 {
			t.Errorf("content %+v", fr.content)
		}
	})

	t.Run("top anchor pushes content down", func(t *testing.T) {
		opts := testOptions(preset.NameDefault)
		opts.Layout = preset.DefaultLayout(model.Overrides{NavAnchor: model.Ptr(model.AnchorTop)})
		m := newTestShell(t, opts, 100, 31)
		fr := m.frame()
		// Region is rows 1..29; a third of 29 is 9.
		if fr.nav.DrawerRect.H != 9 {
			t.Fatalf("drawer rows %d, want 9", fr.nav.DrawerRect.H)
		}
		if fr.content.Y != 10 {
			t.Errorf("content should start below the drawer, got y=%d", fr.content.Y)
		}
	})
}

func TestShellTooSmall(t *testing.T) {
	m := newTestShell(t, testOptions(preset.NameDefault), 10, 4)
	if !strings.Contains(m.View(), "too small") {
		t.Errorf("expected resize hint, got %q", m.View())
	}
}

func TestRenderFrame(t *testing.T) {
	out := RenderFrame(testOptions(preset.NameMuiTreasury), 140, 24)
	if !strings.Contains(out, "⌂ Overview") {
		t.Error("frame should contain the menu")
	}
	if !strings.Contains(out, "mui-treasury") {
		t.Error("frame header should name the preset")
	}
}
