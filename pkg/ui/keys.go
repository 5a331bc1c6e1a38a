package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the shell bindings. It implements help.KeyMap.
type KeyMap struct {
	Menu     key.Binding
	Dismiss  key.Binding
	Collapse key.Binding
	Close    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Filter   key.Binding
	Preset   key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Menu: key.NewBinding(
			key.WithKeys("m", "ctrl+b"),
			key.WithHelp("m", "toggle menu"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "collapse"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close drawer"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open section"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Preset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next preset"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Collapse, k.Preset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Filter, k.PageUp, k.PageDown},
		{k.Menu, k.Dismiss, k.Collapse, k.Close},
		{k.Preset, k.Copy, k.Help, k.Quit},
	}
}
