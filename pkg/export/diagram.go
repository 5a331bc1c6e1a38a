// Package export draws layout diagrams: one viewport frame per breakpoint
// showing where the drawer sits and how wide it is. Diagrams are written as
// SVG or PNG and can be served for preview.
package export

import (
	"fmt"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/nav"
)

// Diagram geometry, in output pixels.
const (
	defaultScale = 0.25
	marginLeft   = 130
	marginTop    = 40
	rowPitch     = 130
	frameHeight  = 100
	headerHeight = 12
	minViewport  = 400
)

// Options configures a diagram.
type Options struct {
	Title string
	// Scale is output pixels per layout pixel. Defaults to 0.25.
	Scale float64
	// Collapsed draws collapsible drawers at their collapsed width.
	Collapsed bool
}

type rect struct {
	X, Y, W, H float64
}

// frame is one breakpoint row of the diagram.
type frame struct {
	Breakpoint  model.Breakpoint
	Variant     model.Variant
	Width       int
	Collapsible bool
	Label       string

	Viewport  rect
	Header    rect
	Drawer    rect
	Collapsed rect // zero unless collapsible
}

type diagram struct {
	Title  string
	Width  int
	Height int
	Frames []frame
}

// viewportPixels is the sample viewport width drawn for bp.
func viewportPixels(bp model.Breakpoint) int {
	return max(bp.Min(), minViewport)
}

func layoutDiagram(cfg model.Config, opts Options) diagram {
	s := opts.Scale
	if s <= 0 {
		s = defaultScale
	}
	title := opts.Title
	if title == "" {
		title = "navshell layout"
	}

	d := diagram{Title: title}
	widest := 0.0
	for i, bp := range model.Breakpoints {
		ctx := model.FullConfig{Config: cfg, Breakpoint: bp, Collapsed: opts.Collapsed}
		dv := nav.Derive(ctx, nav.Props{})
		f := frame{
			Breakpoint:  bp,
			Variant:     dv.Variant,
			Width:       dv.NavWidth,
			Collapsible: dv.Collapsible,
		}
		vw := float64(viewportPixels(bp)) * s
		f.Viewport = rect{X: marginLeft, Y: float64(marginTop + i*rowPitch), W: vw, H: frameHeight}
		f.Header = rect{X: f.Viewport.X, Y: f.Viewport.Y, W: vw, H: headerHeight}

		width := dv.Width
		f.Drawer = place(f.Viewport, cfg, float64(width)*s)
		if f.Collapsible && !opts.Collapsed {
			f.Collapsed = place(f.Viewport, cfg, float64(cfg.CollapsedWidth)*s)
		}
		f.Label = fmt.Sprintf("%s ≥%dpx · %s · %dpx", bp, bp.Min(), f.Variant, width)

		widest = max(widest, f.Viewport.X+vw)
		d.Frames = append(d.Frames, f)
	}
	d.Width = int(widest) + 20
	d.Height = marginTop + len(model.Breakpoints)*rowPitch
	return d
}

// place positions a drawer w pixels wide inside vp. A clipped drawer starts
// below the header.
func place(vp rect, cfg model.Config, w float64) rect {
	w = min(w, vp.W)
	top := vp.Y
	if cfg.Clipped {
		top += headerHeight
	}
	h := vp.Y + vp.H - top

	switch cfg.NavAnchor {
	case model.AnchorRight:
		return rect{X: vp.X + vp.W - w, Y: top, W: w, H: h}
	case model.AnchorTop:
		return rect{X: vp.X, Y: vp.Y + headerHeight, W: w, H: vp.H / 3}
	case model.AnchorBottom:
		return rect{X: vp.X, Y: vp.Y + vp.H - vp.H/3, W: w, H: vp.H / 3}
	default:
		return rect{X: vp.X, Y: top, W: w, H: h}
	}
}
