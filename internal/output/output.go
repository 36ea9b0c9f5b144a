// Package output renders command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format defines the output format for CLI commands.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// globalFormat is set by the root command's --output flag.
var globalFormat = FormatYAML

// SetFormat sets the global output format. Names other than yaml and json
// are rejected and leave the format unchanged.
func SetFormat(format string) error {
	switch Format(format) {
	case FormatYAML, FormatJSON:
		globalFormat = Format(format)
		return nil
	}
	return fmt.Errorf("unknown output format: %s (want yaml or json)", format)
}

// GetFormat returns the current global output format.
func GetFormat() Format {
	return globalFormat
}

// To writes data to the given writer in the specified format.
func To(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
