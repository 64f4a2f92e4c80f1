package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap feeds the help bar; the bindings themselves live in the input modes
type keyMap struct {
	Move    key.Binding
	Page    key.Binding
	Open    key.Binding
	Copy    key.Binding
	Clear   key.Binding
	Rebuild key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "ctrl+p", "ctrl+n"), key.WithHelp("↑/↓", "move")),
		Page:    key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+left", "ctrl+right"), key.WithHelp("pgup/pgdn", "page")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Rebuild: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "reindex")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Page, k.Open, k.Copy, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Page},
		{k.Open, k.Copy, k.Clear},
		{k.Rebuild, k.Help, k.Quit},
	}
}
