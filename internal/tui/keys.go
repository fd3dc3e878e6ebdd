package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the demo's key bindings
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Accept    key.Binding
	Dismiss   key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Newline   key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings. Up, Down and Accept only act
// while the popup is open.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "select")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Accept:    key.NewBinding(key.WithKeys("tab", "enter"), key.WithHelp("tab", "accept")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Left:      key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:     key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		Newline:   key.NewBinding(key.WithKeys("enter", "ctrl+j"), key.WithHelp("enter", "newline")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Up, k.Dismiss, k.Newline, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// bound reports whether the key name triggers b
func bound(b key.Binding, name string) bool {
	if !b.Enabled() {
		return false
	}
	for _, k := range b.Keys() {
		if k == name {
			return true
		}
	}
	return false
}
