package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/navshell/pkg/model"
)

// WriteSVG draws the layout diagram for cfg as SVG.
func WriteSVG(w io.Writer, cfg model.Config, opts Options) error {
	d := layoutDiagram(cfg, opts)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Start(d.Width, d.Height)
	canvas.Title(d.Title)
	canvas.Rect(0, 0, d.Width, d.Height, "fill:#FFFFFF")
	canvas.Text(marginLeft, 24, d.Title, "font-family:monospace;font-size:14px;font-weight:bold;fill:#1E1F29")

	for _, f := range d.Frames {
		canvas.Group(fmt.Sprintf(`id="bp-%s"`, f.Breakpoint), fmt.Sprintf(`class="variant-%s"`, f.Variant))
		canvas.Text(10, int(f.Viewport.Y)+14, f.Breakpoint.String(), "font-family:monospace;font-size:13px;font-weight:bold;fill:#7D56F4")
		canvas.Text(10, int(f.Viewport.Y)+30, string(f.Variant), "font-family:monospace;font-size:11px;fill:#555555")
		canvas.Text(10, int(f.Viewport.Y)+44, fmt.Sprintf("%dpx", f.Width), "font-family:monospace;font-size:11px;fill:#555555")

		svgRect(canvas, f.Viewport, "fill:#F2F2F2;stroke:#8A8A8A")
		svgRect(canvas, f.Header, "fill:#E4E4E4")
		if f.Variant == model.VariantTemporary {
			// Backdrop behind an overlaying drawer.
			svgRect(canvas, f.Viewport, "fill:#1E1F29;fill-opacity:0.25")
		}
		svgRect(canvas, f.Drawer, drawerStyle(f.Variant))
		if f.Collapsed.W > 0 {
			svgRect(canvas, f.Collapsed, "fill:none;stroke:#C46A00;stroke-dasharray:4,3")
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

func svgRect(canvas *svg.SVG, r rect, style string) {
	canvas.Rect(int(r.X), int(r.Y), int(r.W), int(r.H), style)
}

func drawerStyle(v model.Variant) string {
	switch v {
	case model.VariantTemporary:
		return "fill:#BD93F9;stroke:#7D56F4;stroke-dasharray:6,3"
	case model.VariantPersistent:
		return "fill:#D6C8FA;stroke:#7D56F4"
	default:
		return "fill:#BD93F9;stroke:#7D56F4"
	}
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
