package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Main   key.Binding
	Snooze key.Binding
	Skip   key.Binding
	Reset  key.Binding
	Talk   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Main: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze"),
		),
		Skip: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "skip"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Talk: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "talk"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Main, k.Snooze, k.Skip, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Main, k.Snooze, k.Skip},
		{k.Reset, k.Talk, k.Help, k.Quit},
	}
}
