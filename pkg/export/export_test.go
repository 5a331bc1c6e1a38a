package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/nav"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

func TestLayoutDiagram_Geometry(t *testing.T) {
	d := layoutDiagram(preset.DefaultLayout(model.Overrides{}), Options{})
	require.Len(t, d.Frames, len(model.Breakpoints))

	xs, sm := d.Frames[0], d.Frames[1]
	assert.Equal(t, model.VariantTemporary, xs.Variant)
	assert.Equal(t, model.VariantPermanent, sm.Variant)

	// 256px at a quarter scale.
	assert.InDelta(t, 64, xs.Drawer.W, 0.01)
	assert.InDelta(t, xs.Viewport.X, xs.Drawer.X, 0.01)
	assert.Zero(t, xs.Collapsed.W, "xs is not collapsible")
	assert.InDelta(t, 16, sm.Collapsed.W, 0.01, "64px collapsed width")

	for _, f := range d.Frames {
		assert.LessOrEqual(t, f.Viewport.X+f.Viewport.W, float64(d.Width))
		assert.LessOrEqual(t, f.Viewport.Y+f.Viewport.H, float64(d.Height))
	}
}

func TestLayoutDiagram_AnchorsAndClipping(t *testing.T) {
	right := layoutDiagram(preset.DefaultLayout(model.Overrides{
		NavAnchor: model.Ptr(model.AnchorRight),
	}), Options{})
	f := right.Frames[2]
	assert.InDelta(t, f.Viewport.X+f.Viewport.W, f.Drawer.X+f.Drawer.W, 0.01)

	clipped := layoutDiagram(preset.FixedLayout(model.Overrides{}), Options{})
	f = clipped.Frames[2]
	assert.InDelta(t, f.Viewport.Y+headerHeight, f.Drawer.Y, 0.01)

	collapsed := layoutDiagram(preset.DefaultLayout(model.Overrides{}), Options{Collapsed: true})
	assert.InDelta(t, 16, collapsed.Frames[1].Drawer.W, 0.01)
	assert.Contains(t, collapsed.Frames[1].Label, "64px")
}

func TestLayoutDiagram_MatchesPanelWidth(t *testing.T) {
	for _, name := range preset.Names() {
		cfg, err := preset.Build(name, model.Overrides{})
		require.NoError(t, err)
		for _, collapsed := range []bool{false, true} {
			d := layoutDiagram(cfg, Options{Scale: 1, Collapsed: collapsed})
			for _, f := range d.Frames {
				want := nav.Derive(model.FullConfig{Config: cfg, Breakpoint: f.Breakpoint, Collapsed: collapsed}, nav.Props{})
				assert.Equal(t, want.Variant, f.Variant, "%s %s", name, f.Breakpoint)
				assert.InDelta(t, float64(min(want.Width, viewportPixels(f.Breakpoint))), f.Drawer.W, 0.01,
					"%s %s collapsed=%v", name, f.Breakpoint, collapsed)
			}
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, preset.CozyLayout(model.Overrides{}), Options{Title: "cozy"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, len(model.Breakpoints), strings.Count(out, `id="bp-`))
	assert.Contains(t, out, "<title>cozy</title>")
	assert.Contains(t, out, "variant-persistent")
	assert.Contains(t, out, "variant-permanent")
	assert.Contains(t, out, "</svg>")
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, preset.MuiTreasuryLayout(model.Overrides{}), Options{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	d := layoutDiagram(preset.MuiTreasuryLayout(model.Overrides{}), Options{})
	assert.Equal(t, d.Width, img.Bounds().Dx())
	assert.Equal(t, d.Height, img.Bounds().Dy())
}

func TestSaveSnapshot(t *testing.T) {
	tmp := t.TempDir()
	cases := []struct {
		name   string
		file   string
		format string
	}{
		{"svg by extension", "layout.svg", ""},
		{"png by extension", "layout.png", ""},
		{"explicit format", "diagram.out", FormatSVG},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(tmp, "nested", tc.file)
			err := SaveSnapshot(SnapshotOptions{
				Path:   out,
				Format: tc.format,
				Layout: preset.DefaultLayout(model.Overrides{}),
			})
			require.NoError(t, err)
			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	err := SaveSnapshot(SnapshotOptions{Path: filepath.Join(tmp, "layout.gif")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
