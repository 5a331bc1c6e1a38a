package model

import (
	"fmt"
	"strings"
)

// Breakpoint is a named viewport-size threshold used to select responsive values.
type Breakpoint int

const (
	XS Breakpoint = iota
	SM
	MD
	LG
	XL
)

// Breakpoints lists every breakpoint, smallest first.
var Breakpoints = []Breakpoint{XS, SM, MD, LG, XL}

// breakpointMin holds the lower bound of each breakpoint in layout pixels.
var breakpointMin = map[Breakpoint]int{
	XS: 0,
	SM: 600,
	MD: 960,
	LG: 1280,
	XL: 1920,
}

func (b Breakpoint) String() string {
	switch b {
	case XS:
		return "xs"
	case SM:
		return "sm"
	case MD:
		return "md"
	case LG:
		return "lg"
	case XL:
		return "xl"
	default:
		return fmt.Sprintf("breakpoint(%d)", int(b))
	}
}

// Min returns the lower bound of the breakpoint in layout pixels.
func (b Breakpoint) Min() int {
	return breakpointMin[b]
}

// Valid reports whether b is one of the known breakpoints.
func (b Breakpoint) Valid() bool {
	return b >= XS && b <= XL
}

// ParseBreakpoint parses "xs", "sm", "md", "lg" or "xl".
func ParseBreakpoint(s string) (Breakpoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xs":
		return XS, nil
	case "sm":
		return SM, nil
	case "md":
		return MD, nil
	case "lg":
		return LG, nil
	case "xl":
		return XL, nil
	}
	return XS, fmt.Errorf("%w: unknown breakpoint %q", ErrInvalidValue, s)
}

// BreakpointFor returns the largest breakpoint whose lower bound does not
// exceed px.
func BreakpointFor(px int) Breakpoint {
	bp := XS
	for _, b := range Breakpoints {
		if px >= b.Min() {
			bp = b
		}
	}
	return bp
}

// MarshalText implements encoding.TextMarshaler.
func (b Breakpoint) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: breakpoint %d", ErrInvalidValue, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Breakpoint) UnmarshalText(text []byte) error {
	v, err := ParseBreakpoint(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Default terminal cell geometry in layout pixels.
const (
	DefaultCellPixels = 8
	DefaultRowPixels  = 16
)

// Scale converts layout pixels to terminal cells and back.
type Scale struct {
	CellPixels int
	RowPixels  int
}

func (s Scale) cell() int {
	if s.CellPixels <= 0 {
		return DefaultCellPixels
	}
	return s.CellPixels
}

func (s Scale) row() int {
	if s.RowPixels <= 0 {
		return DefaultRowPixels
	}
	return s.RowPixels
}

// Cells converts a horizontal pixel length to columns, rounding up.
func (s Scale) Cells(px int) int {
	if px <= 0 {
		return 0
	}
	c := s.cell()
	return (px + c - 1) / c
}

// Rows converts a vertical pixel length to rows, rounding up.
func (s Scale) Rows(px int) int {
	if px <= 0 {
		return 0
	}
	r := s.row()
	return (px + r - 1) / r
}

// Pixels converts a column count to layout pixels.
func (s Scale) Pixels(cols int) int {
	return cols * s.cell()
}

// BreakpointForColumns returns the breakpoint active for a terminal that is
// cols columns wide.
func (s Scale) BreakpointForColumns(cols int) Breakpoint {
	return BreakpointFor(s.Pixels(cols))
}
