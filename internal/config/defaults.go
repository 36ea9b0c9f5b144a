package config

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// Entry is one config key with its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// Setting is the effective value of one key next to its default.
type Setting struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries.
// Every leaf of Config has exactly one entry, so each key can be set
// from the environment.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		// ===================
		// Store
		// ===================
		{
			Key:         "store.path",
			Value:       d.Store.Path,
			Description: "Prompt collection file; empty uses saved_prompts.json in the home directory",
		},
		{
			Key:         "store.indent",
			Value:       d.Store.Indent,
			Description: "Spaces per nesting level in the collection file and clipboard export",
		},

		// ===================
		// Clipboard
		// ===================
		{
			Key:         "clipboard.enabled",
			Value:       d.Clipboard.Enabled,
			Description: "Copy the viewed prompt to the system clipboard",
		},

		// ===================
		// Interactive session
		// ===================
		{
			Key:         "ui.pause",
			Value:       d.UI.Pause,
			Description: "How long the empty-collection notice stays on screen",
		},
		{
			Key:         "ui.clear_screen",
			Value:       d.UI.ClearScreen,
			Description: "Clear the terminal between screens",
		},

		// ===================
		// Logging
		// ===================
		{
			Key:         "log.level",
			Value:       d.Log.Level,
			Description: "Diagnostic log level written to stderr (debug, info, warn, error)",
		},
	}
}

// GetDefault returns the default entry for a config key.
func GetDefault(key string) (*Entry, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("%w for key %q", ErrNoDefault, key)
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d in key %q", ErrInvalidKey, r, i, key)
		}
	}
	return nil
}
