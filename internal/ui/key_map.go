package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the dialogs.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	skip  key.Binding
	yes   key.Binding
	no    key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		skip:  key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc/s", "skip")),
		yes:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		no:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.skip, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.skip, k.yes, k.no},
		{k.quit},
	}
}
