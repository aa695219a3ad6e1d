package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Quality  key.Binding
	Toggle   key.Binding
	Expand   key.Binding
	Delete   key.Binding
	Narrow   key.Binding
	Widen    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quality:  key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "quality")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start/stop")),
		Expand:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Narrow:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow window")),
		Widen:    key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "widen window")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
	}
}

// bindings is the help.KeyMap for one tab.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }

func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k keyMap) forTab(t tab, sleeping bool) bindings {
	switch t {
	case tabRecord:
		if sleeping {
			return bindings{k.Toggle, k.NextTab, k.Quit}
		}
		return bindings{k.Quality, k.Up, k.Down, k.Toggle, k.NextTab, k.Quit}
	case tabStats:
		return bindings{k.Up, k.Down, k.PageUp, k.PageDown, k.Narrow, k.Widen, k.NextTab, k.Quit}
	case tabHistory:
		return bindings{k.Up, k.Down, k.Expand, k.Delete, k.NextTab, k.Quit}
	}
	return bindings{k.NextTab, k.Quit}
}
