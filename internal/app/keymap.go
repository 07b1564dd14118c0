package app

import (
	"github.com/Akashdeep-Patra/twig/internal/config"
	"github.com/Akashdeep-Patra/twig/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the branch browser. Every action key
// comes from config.KeyBindings; the arrow/page aliases are fixed.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	FocusNext key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Enter     key.Binding
	Back      key.Binding
	Filter    key.Binding
	Refresh   key.Binding

	// Mutations. Disabled while another one is in flight.
	NewBranch   key.Binding
	Delete      key.Binding
	ForceDelete key.Binding
	Rename      key.Binding
	Fetch       key.Binding
}

// NewKeyMap builds the key map from configured bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit, "quit")),
		Help:      key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "help")),
		FocusNext: key.NewBinding(key.WithKeys(kb.FocusNext), key.WithHelp(kb.FocusNext, "next pane")),
		Up:        key.NewBinding(key.WithKeys("up", kb.Up), key.WithHelp(kb.Up+"/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", kb.Down), key.WithHelp(kb.Down+"/↓", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:       key.NewBinding(key.WithKeys("home", kb.Top), key.WithHelp(kb.Top, "first")),
		Bottom:    key.NewBinding(key.WithKeys("end", kb.Bottom), key.WithHelp(kb.Bottom, "last")),
		Enter:     key.NewBinding(key.WithKeys(kb.Enter), key.WithHelp(kb.Enter, "checkout / open diff")),
		Back:      key.NewBinding(key.WithKeys(kb.Back), key.WithHelp(kb.Back, "clear filter / back")),
		Filter:    key.NewBinding(key.WithKeys(kb.Filter), key.WithHelp(kb.Filter, "filter")),
		Refresh:   key.NewBinding(key.WithKeys(kb.Refresh, "ctrl+r"), key.WithHelp(kb.Refresh, "refresh")),

		NewBranch:   key.NewBinding(key.WithKeys(kb.NewBranch), key.WithHelp(kb.NewBranch, "new branch")),
		Delete:      key.NewBinding(key.WithKeys(kb.Delete), key.WithHelp(kb.Delete, "delete")),
		ForceDelete: key.NewBinding(key.WithKeys(kb.ForceDelete), key.WithHelp(kb.ForceDelete, "force delete")),
		Rename:      key.NewBinding(key.WithKeys(kb.Rename), key.WithHelp(kb.Rename, "rename")),
		Fetch:       key.NewBinding(key.WithKeys(kb.Fetch), key.WithHelp(kb.Fetch, "fetch")),
	}
}

// DefaultKeyMap returns the key map for the default bindings.
func DefaultKeyMap() KeyMap { return NewKeyMap(config.DefaultKeyBindings()) }

// setMutationsEnabled toggles every mutating binding at once.
func (k *KeyMap) setMutationsEnabled(on bool) {
	for _, b := range []*key.Binding{&k.NewBranch, &k.Delete, &k.ForceDelete, &k.Rename, &k.Fetch} {
		b.SetEnabled(on)
	}
}

// ShortHelp returns the bindings shown in the hint bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.NewBranch, k.Delete, k.Rename, k.Filter, k.Fetch, k.FocusNext, k.Help, k.Quit}
}

// HelpSections returns the grouped bindings for the help overlay.
func (k KeyMap) HelpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.FocusNext, k.Enter, k.Back}},
		{Title: "Branches", Bindings: []key.Binding{k.Filter, k.NewBranch, k.Rename, k.Delete, k.ForceDelete, k.Fetch}},
		{Title: "General", Bindings: []key.Binding{k.Refresh, k.Help, k.Quit}},
	}
}
