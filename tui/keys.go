package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Granted key.Binding
	Mixed   key.Binding
	Denied  key.Binding
	Cycle   key.Binding
	Denser  key.Binding
	Sparser key.Binding
	Reseed  key.Binding
	Motion  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Granted: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "granted")),
		Mixed:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "mixed")),
		Denied:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "denied")),
		Cycle:   key.NewBinding(key.WithKeys("c", "tab"), key.WithHelp("c", "cycle consent")),
		Denser:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "denser")),
		Sparser: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "sparser")),
		Reseed:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new seed")),
		Motion:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reduce motion")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Motion, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Granted, k.Mixed, k.Denied, k.Cycle},
		{k.Denser, k.Sparser, k.Reseed, k.Motion},
		{k.Help, k.Quit},
	}
}
