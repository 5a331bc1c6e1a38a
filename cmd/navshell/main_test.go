package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/navshell/pkg/config"
	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// execute runs the root command in a fresh temp directory with its own
// state file and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--state", filepath.Join(t.TempDir(), "state.json")))
	err := cmd.Execute()
	return out.String(), err
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(body), 0644))
}

func TestVersionCommand(t *testing.T) {
	inTempDir(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "navshell v")
}

func TestVersionCheck(t *testing.T) {
	inTempDir(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v99.0.0","html_url":"https://example.com/releases/v99.0.0"}`)
	}))
	defer srv.Close()

	out, err := execute(t, "version", "--check", "--release-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Update available: v99.0.0")
}

func TestRenderCommand(t *testing.T) {
	inTempDir(t)

	t.Run("permanent drawer at sm", func(t *testing.T) {
		out, err := execute(t, "render", "--width", "100", "--height", "24", "--title", "Demo")
		require.NoError(t, err)
		assert.Contains(t, out, "Demo")
		assert.Contains(t, out, "⌂ Overview")
		assert.Contains(t, out, "« collapse")
		assert.NotContains(t, out, "✕", "a docked drawer has no close button")
	})

	t.Run("clipped header shows the badge", func(t *testing.T) {
		out, err := execute(t, "render", "--preset", preset.NameMuiTreasury, "--width", "130", "--height", "24")
		require.NoError(t, err)
		assert.Contains(t, out, "mui-treasury · md · permanent")
	})

	t.Run("temporary drawer closed at xs", func(t *testing.T) {
		out, err := execute(t, "render", "--breakpoint", "xs", "--height", "20")
		require.NoError(t, err)
		assert.Contains(t, out, "xs · temporary")
		assert.NotContains(t, out, "⌂ Overview")
	})

	t.Run("temporary drawer opened at xs", func(t *testing.T) {
		out, err := execute(t, "render", "--breakpoint", "xs", "--height", "20", "--opened")
		require.NoError(t, err)
		assert.Contains(t, out, "⌂ Overview")
		assert.Contains(t, out, "✕")
	})

	t.Run("frame size", func(t *testing.T) {
		out, err := execute(t, "render", "--width", "80", "--height", "12")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		assert.Len(t, lines, 12)
	})

	t.Run("bad breakpoint", func(t *testing.T) {
		_, err := execute(t, "render", "--breakpoint", "huge")
		require.Error(t, err)
	})
}

func TestBreakpointColumns(t *testing.T) {
	scale := model.Scale{CellPixels: 8, RowPixels: 16}
	for _, bp := range model.Breakpoints {
		cols := breakpointColumns(bp, scale)
		assert.Equal(t, bp, scale.BreakpointForColumns(cols), "breakpoint %s", bp)
	}
}

func TestPresetsList(t *testing.T) {
	inTempDir(t)
	out, err := execute(t, "presets", "list", "--preset", preset.NameCozy)
	require.NoError(t, err)
	for _, name := range preset.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "* cozy")
}

func TestPresetsShow(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, "preset: fixed\nlayout:\n  navAnchor: right\n")

	t.Run("configured preset with overrides", func(t *testing.T) {
		out, err := execute(t, "presets", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "navAnchor: right")
		assert.Contains(t, out, "clipped: true")
	})

	t.Run("raw", func(t *testing.T) {
		out, err := execute(t, "presets", "show", "cozy", "--raw")
		require.NoError(t, err)
		assert.Contains(t, out, "navAnchor: left")
		assert.Contains(t, out, "collapsedWidth: 64")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := execute(t, "presets", "show", "nope")
		require.ErrorIs(t, err, preset.ErrUnknownPreset)
	})
}

func TestInvalidConfigRejected(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, "preset: nope\n")
	_, err := execute(t, "render", "--width", "80", "--height", "20")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestExportCommand(t *testing.T) {
	dir := inTempDir(t)

	out, err := execute(t, "export", "--out", filepath.Join("diagrams", "layout.svg"))
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(filepath.Join(dir, "diagrams", "layout.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), `id="bp-xl"`)

	_, err = execute(t, "export", "--out", "layout.gif")
	require.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := inTempDir(t)

	out, err := execute(t, "init", "--defaults", "--preset", preset.NameCozy, "--title", "My App")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile), nil)
	require.NoError(t, err)
	assert.Equal(t, preset.NameCozy, cfg.Preset)
	assert.Equal(t, "My App", cfg.Title)

	_, err = execute(t, "init", "--defaults")
	require.Error(t, err, "existing file needs --force")

	_, err = execute(t, "init", "--defaults", "--force", "--preset", preset.NameFixed)
	require.NoError(t, err)
	cfg, err = config.Load(filepath.Join(dir, config.DefaultFile), nil)
	require.NoError(t, err)
	assert.Equal(t, preset.NameFixed, cfg.Preset)
}
