package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the sky view key bindings.
type keyMap struct {
	PanUp       key.Binding
	PanDown     key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Center      key.Binding
	Forward     key.Binding
	Back        key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Now         key.Binding
	Labels      key.Binding
	Asterisms   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PanUp:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓/←/→", "pan")),
		PanDown:     key.NewBinding(key.WithKeys("down")),
		PanLeft:     key.NewBinding(key.WithKeys("left")),
		PanRight:    key.NewBinding(key.WithKeys("right")),
		ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:     key.NewBinding(key.WithKeys("-", "_")),
		CursorUp:    key.NewBinding(key.WithKeys("k"), key.WithHelp("h/j/k/l", "cursor")),
		CursorDown:  key.NewBinding(key.WithKeys("j")),
		CursorLeft:  key.NewBinding(key.WithKeys("h")),
		CursorRight: key.NewBinding(key.WithKeys("l")),
		Center:      key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "center on cursor")),
		Forward:     key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "step time")),
		Back:        key.NewBinding(key.WithKeys("[")),
		Faster:      key.NewBinding(key.WithKeys("}"), key.WithHelp("{/}", "step size")),
		Slower:      key.NewBinding(key.WithKeys("{")),
		Now:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "now")),
		Labels:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "labels")),
		Asterisms:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "asterisms")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PanUp, k.CursorUp, k.Forward, k.Now, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanUp, k.ZoomIn, k.CursorUp, k.Center},
		{k.Forward, k.Faster, k.Now},
		{k.Labels, k.Asterisms, k.Help, k.Quit},
	}
}
