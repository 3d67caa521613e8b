package input

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the key bindings of the page strip
type KeyMap struct {
	First     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Last      key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Activate  key.Binding
	GoTo      key.Binding
	Cancel    key.Binding
	Toggle    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "first page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "last page"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus next button"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "focus previous button"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press focused button"),
		),
		GoTo: key.NewBinding(
			key.WithKeys(":", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9/:", "go to page"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle input"),
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

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.GoTo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.First, k.Prev, k.Next, k.Last},
		{k.FocusNext, k.FocusPrev, k.Activate, k.GoTo},
		{k.Cancel, k.Toggle, k.Help, k.Quit},
	}
}
