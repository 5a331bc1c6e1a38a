package export

import (
	"fmt"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/navshell/pkg/model"
)

var (
	pngBackground = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	pngViewport   = color.RGBA{0xF2, 0xF2, 0xF2, 0xFF}
	pngHeader     = color.RGBA{0xE4, 0xE4, 0xE4, 0xFF}
	pngFrame      = color.RGBA{0x8A, 0x8A, 0x8A, 0xFF}
	pngBackdrop   = color.RGBA{0x1E, 0x1F, 0x29, 0x40}
	pngDrawer     = color.RGBA{0xBD, 0x93, 0xF9, 0xFF}
	pngPersistent = color.RGBA{0xD6, 0xC8, 0xFA, 0xFF}
	pngAccent     = color.RGBA{0x7D, 0x56, 0xF4, 0xFF}
	pngCollapsed  = color.RGBA{0xC4, 0x6A, 0x00, 0xFF}
	pngText       = color.RGBA{0x1E, 0x1F, 0x29, 0xFF}
	pngSubtext    = color.RGBA{0x55, 0x55, 0x55, 0xFF}
)

// WritePNG draws the layout diagram for cfg as a PNG image.
func WritePNG(w io.Writer, cfg model.Config, opts Options) error {
	d := layoutDiagram(cfg, opts)
	dc := gg.NewContext(d.Width, d.Height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(pngBackground)
	dc.Clear()

	dc.SetColor(pngText)
	dc.DrawString(d.Title, marginLeft, 24)

	for _, f := range d.Frames {
		dc.SetColor(pngAccent)
		dc.DrawString(f.Breakpoint.String(), 10, f.Viewport.Y+14)
		dc.SetColor(pngSubtext)
		dc.DrawString(string(f.Variant), 10, f.Viewport.Y+30)
		dc.DrawString(fmt.Sprintf("%dpx", f.Width), 10, f.Viewport.Y+44)

		fillRect(dc, f.Viewport, pngViewport)
		strokeRect(dc, f.Viewport, pngFrame, nil)
		fillRect(dc, f.Header, pngHeader)

		drawer := pngDrawer
		var dash []float64
		switch f.Variant {
		case model.VariantTemporary:
			fillRect(dc, f.Viewport, pngBackdrop)
			dash = []float64{6, 3}
		case model.VariantPersistent:
			drawer = pngPersistent
		}
		fillRect(dc, f.Drawer, drawer)
		strokeRect(dc, f.Drawer, pngAccent, dash)

		if f.Collapsed.W > 0 {
			strokeRect(dc, f.Collapsed, pngCollapsed, []float64{4, 3})
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func fillRect(dc *gg.Context, r rect, c color.Color) {
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.SetColor(c)
	dc.Fill()
}

func strokeRect(dc *gg.Context, r rect, c color.Color, dash []float64) {
	dc.DrawRectangle(r.X+0.5, r.Y+0.5, r.W-1, r.H-1)
	dc.SetColor(c)
	dc.SetLineWidth(1)
	dc.SetDash(dash...)
	dc.Stroke()
}
