package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// GitBinary is the git executable to run (resolved through $PATH).
	GitBinary string `mapstructure:"git_binary"`
	// CommandTimeout bounds every git invocation.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	// CacheTTL is how long branch listings are reused; 0 disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// WatchDebounce coalesces bursts of ref changes into one refresh.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// CommitLimit caps the commits loaded for the selected branch (0 = all).
	CommitLimit int `mapstructure:"commit_limit"`
	// ShowRemoteBranches also lists refs/remotes.
	ShowRemoteBranches bool `mapstructure:"show_remote_branches"`
	// ConfirmDestructive prompts before deleting branches.
	ConfirmDestructive bool `mapstructure:"confirm_destructive"`
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Keys overrides individual key bindings.
	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from ~/.config/twig/config.yaml (or
// $XDG_CONFIG_HOME/twig, or the working directory), then applies TWIG_*
// environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Directory())
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile reads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("TWIG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file means defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.GitBinary == "":
		return errors.New("config: git_binary must not be empty")
	case c.CommandTimeout <= 0:
		return fmt.Errorf("config: command_timeout must be positive, got %s", c.CommandTimeout)
	case c.CacheTTL < 0:
		return fmt.Errorf("config: cache_ttl must not be negative, got %s", c.CacheTTL)
	case c.WatchDebounce < 0:
		return fmt.Errorf("config: watch_debounce must not be negative, got %s", c.WatchDebounce)
	case c.CommitLimit < 0:
		return fmt.Errorf("config: commit_limit must not be negative, got %d", c.CommitLimit)
	case c.Theme != "dark" && c.Theme != "light":
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("git_binary", "git")
	v.SetDefault("command_timeout", 30*time.Second)
	v.SetDefault("cache_ttl", 2*time.Second)
	v.SetDefault("watch_debounce", 500*time.Millisecond)
	v.SetDefault("commit_limit", 200)
	v.SetDefault("show_remote_branches", false)
	v.SetDefault("confirm_destructive", true)
	v.SetDefault("theme", "dark")
	setKeyDefaults(v)
}

// Directory returns the directory config.yaml is looked up in first.
func Directory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "twig")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "twig")
}
