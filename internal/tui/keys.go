package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause key.Binding
	Stop  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	Stop: key.NewBinding(
		key.WithKeys("x", "s"),
		key.WithHelp("x", "stop & save"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit & save"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Stop, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Stop},
		{k.Help, k.Quit},
	}
}
