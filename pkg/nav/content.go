// Package nav implements the navigation drawer: a side panel whose width,
// anchor, variant and collapsibility come from a model.FullConfig passed in
// by the hosting shell.
package nav

import "github.com/Dicklesworthstone/navshell/pkg/model"

// Content is either static text or a function of the full layout context.
type Content interface {
	isContent()
}

// Text is static content.
type Text string

func (Text) isContent() {}

// Func renders content from the full layout context on every render.
type Func func(model.FullConfig) string

func (Func) isContent() {}

// Render resolves c against ctx. Nil content renders as "".
func Render(c Content, ctx model.FullConfig) string {
	switch v := c.(type) {
	case Text:
		return string(v)
	case Func:
		if v == nil {
			return ""
		}
		return v(ctx)
	}
	return ""
}

// IconRenderer produces the label of the collapse toggle and of the floating
// close button. setCollapsed is nil for the close button.
type IconRenderer func(collapsed bool, setCollapsed func(bool)) string
