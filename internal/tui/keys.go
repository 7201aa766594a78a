package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the desktop-level bindings. Keys not bound here go to the
// active window's widget.
type keyMap struct {
	Tools      key.Binding
	Cycle      key.Binding
	Minimize   key.Binding
	Close      key.Binding
	CancelDrag key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tools: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle tool"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next window"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "minimize"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		CancelDrag: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "drop drag"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tools, k.Cycle, k.Minimize, k.Close, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tools, k.Cycle},
		{k.Minimize, k.Close, k.CancelDrag},
		{k.Quit},
	}
}
