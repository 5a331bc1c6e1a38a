package ui

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/nav"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// DefaultSections is the demo page set shown when the caller supplies none.
func DefaultSections() []Section {
	return []Section{
		{
			ID:    "overview",
			Title: "Overview",
			Icon:  "⌂",
			Body: nav.Text(`# navshell

A responsive application shell. The navigation drawer on the side of this
page takes its **width**, **anchor**, **variant** and **collapsibility** from
the active layout, resolved against the terminal's breakpoint.

Resize the terminal to watch the drawer switch between overlay and docked
modes. Press **p** to cycle presets and **?** for all shortcuts.`),
		},
		{
			ID:    "layout",
			Title: "Layout",
			Icon:  "▤",
			Body:  nav.Func(layoutPage),
		},
		{
			ID:    "presets",
			Title: "Presets",
			Icon:  "◈",
			Body:  nav.Func(presetsPage),
		},
		{
			ID:    "breakpoints",
			Title: "Breakpoints",
			Icon:  "↔",
			Body:  nav.Func(breakpointsPage),
		},
		{
			ID:    "variants",
			Title: "Variants",
			Icon:  "◧",
			Body: nav.Text(`# Variants

| variant | behavior |
|---|---|
| temporary | overlays the content with a backdrop; closes on outside click |
| persistent | docked beside the content; can be opened and closed |
| permanent | always docked; ignores open and close |

A **collapsible** drawer shrinks to its collapsed width with the toggle at
its foot, or with **[**.`),
		},
	}
}

func layoutPage(ctx model.FullConfig) string {
	var b strings.Builder
	b.WriteString("# Active layout\n\n")
	fmt.Fprintf(&b, "Breakpoint **%s**, variant **%s**, width **%dpx**.\n\n",
		ctx.Breakpoint, ctx.Variant(), ctx.Width())
	b.WriteString("| key | value |\n|---|---|\n")
	m := ctx.Config.Map()
	for _, k := range []string{
		model.KeyNavWidth, model.KeyNavAnchor, model.KeyNavVariant,
		model.KeyCollapsible, model.KeyCollapsedWidth, model.KeyClipped,
		model.KeyHeaderPosition, model.KeySqueezed, model.KeyFooterShrink,
	} {
		fmt.Fprintf(&b, "| %s | `%v` |\n", k, m[k])
	}
	fmt.Fprintf(&b, "\nopened: `%t`, collapsed: `%t`\n", ctx.Opened, ctx.Collapsed)
	return b.String()
}

func presetsPage(ctx model.FullConfig) string {
	var b strings.Builder
	b.WriteString("# Presets\n\n")
	for _, name := range preset.Names() {
		cfg, err := preset.Build(name, model.Overrides{})
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s at %s, width %dpx\n",
			name, cfg.NavVariant.Resolve(ctx.Breakpoint), cfg.NavAnchor,
			cfg.NavWidth.Resolve(ctx.Breakpoint))
	}
	return b.String()
}

func breakpointsPage(ctx model.FullConfig) string {
	var b strings.Builder
	b.WriteString("# Breakpoints\n\n| name | min px | variant | width |\n|---|---|---|---|\n")
	for _, bp := range model.Breakpoints {
		marker := ""
		if bp == ctx.Breakpoint {
			marker = " ◀"
		}
		fmt.Fprintf(&b, "| %s%s | %d | %s | %d |\n", bp, marker, bp.Min(),
			ctx.NavVariant.Resolve(bp), ctx.NavWidth.Resolve(bp))
	}
	return b.String()
}
