package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds promptgen configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Store     StoreCfg     `mapstructure:"store" yaml:"store" json:"store"`
	Clipboard ClipboardCfg `mapstructure:"clipboard" yaml:"clipboard" json:"clipboard"`
	UI        UICfg        `mapstructure:"ui" yaml:"ui" json:"ui"`
	Log       LogCfg       `mapstructure:"log" yaml:"log" json:"log"`
}

// StoreCfg configures the prompt collection file.
type StoreCfg struct {
	Path   string `mapstructure:"path" yaml:"path" json:"path"`       // Empty means {home}/saved_prompts.json (supports ${ENV_VAR} syntax)
	Indent int    `mapstructure:"indent" yaml:"indent" json:"indent"` // Spaces per JSON nesting level
}

// ClipboardCfg configures export of viewed prompts.
type ClipboardCfg struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// UICfg configures the interactive session.
type UICfg struct {
	// Pause is how long the empty-collection notice stays up, e.g. "5s".
	Pause       string `mapstructure:"pause" yaml:"pause" json:"pause"`
	ClearScreen bool   `mapstructure:"clear_screen" yaml:"clear_screen" json:"clear_screen"`
}

// LogCfg configures diagnostic logging to stderr.
type LogCfg struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"` // debug, info, warn, error
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreCfg{
			Path:   "",
			Indent: 4,
		},
		Clipboard: ClipboardCfg{
			Enabled: true,
		},
		UI: UICfg{
			Pause:       "5s",
			ClearScreen: true,
		},
		Log: LogCfg{
			Level: "warn",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Store.Indent < 1 {
		return fmt.Errorf("store.indent must be at least 1, got %d", c.Store.Indent)
	}
	if _, err := c.PauseDuration(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// PauseDuration parses ui.pause.
func (c *Config) PauseDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.UI.Pause)
	if err != nil {
		return 0, fmt.Errorf("invalid ui.pause %q: %w", c.UI.Pause, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ui.pause must not be negative, got %s", d)
	}
	return d, nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// StorePath returns the collection path with ${ENV_VAR} references resolved,
// or fallback when none is configured.
func (c *Config) StorePath(fallback string) string {
	if p := ResolveEnvVars(c.Store.Path); p != "" {
		return p
	}
	return fallback
}
