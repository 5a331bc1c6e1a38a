package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of styled lines that blocks are painted onto,
// later blocks covering earlier ones.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// paint draws block with its top-left corner at (x, y), clipped to maxW
// columns and to the canvas.
func (c *canvas) paint(block string, x, y, maxW int) {
	if block == "" || x >= c.width {
		return
	}
	if x < 0 {
		x = 0
	}
	avail := c.width - x
	if maxW <= 0 || maxW > avail {
		maxW = avail
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		line = ansi.Truncate(line, maxW, "")
		lw := ansi.StringWidth(line)
		base := c.lines[row]

		left := ansi.Truncate(base, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(base, x+lw, "")
		if strings.Contains(left, "\x1b") {
			left += ansi.ResetStyle
		}
		c.lines[row] = left + line + right
	}
}

// fill paints a solid block of spaces in style st.
func (c *canvas) fill(st lipgloss.Style, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	row := st.Render(strings.Repeat(" ", w))
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	c.paint(strings.Join(rows, "\n"), x, y, w)
}

// dim re-renders every line without its own styling in st. Used behind an
// open temporary drawer.
func (c *canvas) dim(st lipgloss.Style) {
	for i, l := range c.lines {
		c.lines[i] = st.Render(ansi.Strip(l))
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
