// Package keymap defines keybindings for the transcript viewer.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the viewer.
type KeyMap struct {
	// Quit exits the viewer.
	Quit key.Binding

	// Help toggles the full help line.
	Help key.Binding

	// Up and Down scroll one line.
	Up   key.Binding
	Down key.Binding

	// PageUp and PageDown scroll one screen.
	PageUp   key.Binding
	PageDown key.Binding

	// Top and Bottom jump to either end.
	Top    key.Binding
	Bottom key.Binding

	// NextEntry and PrevEntry jump between entries.
	NextEntry key.Binding
	PrevEntry key.Binding

	// Filter cycles all speakers, interviewer only, participant only.
	Filter key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		NextEntry: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next entry"),
		),
		PrevEntry: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "prev entry"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter speaker"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextEntry, k.Filter, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.NextEntry, k.PrevEntry},
		{k.Filter, k.Help, k.Quit},
	}
}
