package config

import "github.com/spf13/viper"

// KeyBindings maps actions to keys. Each field may be overridden under the
// "keys" section of config.yaml, e.g. keys.new_branch: "c".
type KeyBindings struct {
	Quit        string `mapstructure:"quit"`
	Help        string `mapstructure:"help"`
	FocusNext   string `mapstructure:"focus_next"`
	Up          string `mapstructure:"up"`
	Down        string `mapstructure:"down"`
	Top         string `mapstructure:"top"`
	Bottom      string `mapstructure:"bottom"`
	Enter       string `mapstructure:"enter"`
	Back        string `mapstructure:"back"`
	Filter      string `mapstructure:"filter"`
	NewBranch   string `mapstructure:"new_branch"`
	Delete      string `mapstructure:"delete"`
	ForceDelete string `mapstructure:"force_delete"`
	Rename      string `mapstructure:"rename"`
	Fetch       string `mapstructure:"fetch"`
	Refresh     string `mapstructure:"refresh"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:        "q",
		Help:        "?",
		FocusNext:   "tab",
		Up:          "k",
		Down:        "j",
		Top:         "g",
		Bottom:      "G",
		Enter:       "enter",
		Back:        "esc",
		Filter:      "/",
		NewBranch:   "n",
		Delete:      "d",
		ForceDelete: "D",
		Rename:      "R",
		Fetch:       "f",
		Refresh:     "r",
	}
}

func setKeyDefaults(v *viper.Viper) {
	kb := DefaultKeyBindings()
	for name, val := range map[string]string{
		"quit":         kb.Quit,
		"help":         kb.Help,
		"focus_next":   kb.FocusNext,
		"up":           kb.Up,
		"down":         kb.Down,
		"top":          kb.Top,
		"bottom":       kb.Bottom,
		"enter":        kb.Enter,
		"back":         kb.Back,
		"filter":       kb.Filter,
		"new_branch":   kb.NewBranch,
		"delete":       kb.Delete,
		"force_delete": kb.ForceDelete,
		"rename":       kb.Rename,
		"fetch":        kb.Fetch,
		"refresh":      kb.Refresh,
	} {
		v.SetDefault("keys."+name, val)
	}
}
