package ui

// Shell chrome dimensions, in terminal cells.
const (
	// HeaderHeight is the height of the title bar.
	HeaderHeight = 1

	// FooterHeight is the height of the status line.
	FooterHeight = 1

	// MinShellWidth and MinShellHeight are the smallest sizes the shell draws
	// a layout for; below them it shows a resize hint.
	MinShellWidth  = 20
	MinShellHeight = 6

	// MenuIconWidth is the width of the header's menu affordance ("≡ ").
	MenuIconWidth = 2

	// PageScroll is the number of lines PgUp/PgDn move the content.
	PageScroll = 10
)
