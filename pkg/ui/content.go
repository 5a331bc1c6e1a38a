package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// Glamour standard style names accepted by MarkdownRenderer.
const (
	GlamourDark  = "dark"
	GlamourLight = "light"
	GlamourNoTTY = "notty"
)

type markdownKey struct {
	width int
	text  string
}

// MarkdownRenderer renders section bodies with glamour, caching by width
// and source. It falls back to plain word wrapping when glamour fails.
type MarkdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	cache     map[markdownKey]string
}

// NewMarkdownRenderer creates a renderer using a glamour standard style.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = GlamourDark
	}
	return &MarkdownRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[markdownKey]string),
	}
}

// Style returns the glamour style name.
func (r *MarkdownRenderer) Style() string {
	return r.style
}

// Render returns md rendered for the given column width.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if width < 1 {
		width = 1
	}
	key := markdownKey{width: width, text: md}
	if out, ok := r.cache[key]; ok {
		return out
	}

	out, err := r.render(md, width)
	if err != nil {
		out = wordwrap.String(md, width)
	}
	out = strings.Trim(out, "\n")
	r.cache[key] = out
	return out
}

func (r *MarkdownRenderer) render(md string, width int) (string, error) {
	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		r.renderers[width] = tr
	}
	return tr.Render(md)
}

// Len returns the number of cached renders.
func (r *MarkdownRenderer) Len() int {
	return len(r.cache)
}
