// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (for example xclip/xsel/wl-copy on Linux).
var ErrUnsupported = errors.New("clipboard not available")

// Writer accepts text for the clipboard.
type Writer interface {
	Copy(text string) error
}

// Unsupported reports whether the platform has no usable clipboard utility.
func Unsupported() bool {
	return clipboard.Unsupported
}

// System writes to the operating system clipboard.
type System struct{}

// Copy replaces the clipboard contents with text.
func (System) Copy(text string) error {
	if Unsupported() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Discard drops everything.
type Discard struct{}

// Copy does nothing.
func (Discard) Copy(string) error { return nil }

// Memory keeps the last copied text. Useful in tests.
type Memory struct {
	Text   string
	Copies int
	Err    error
}

// Copy records text, or returns m.Err when set.
func (m *Memory) Copy(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Copies++
	return nil
}
