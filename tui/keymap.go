package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer keybindings.
type KeyMap struct {
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	ToggleAlign key.Binding
	TogglePer   key.Binding
	Commit      key.Binding
	Remove      key.Binding
	Target      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first item"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last item"),
		),
		ToggleAlign: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "align (pending)"),
		),
		TogglePer: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "one per line (pending)"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "commit options"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove first"),
		),
		Target: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "smooth +20"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.ScrollDown, k.PageDown, k.Top, k.Bottom, k.ToggleAlign,
		k.TogglePer, k.Commit, k.Remove, k.Target, k.Quit,
	}
}
