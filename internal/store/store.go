// Package store persists the prompt collection to a single JSON file.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jackzampolin/promptgen/internal/prompt"
	"github.com/jackzampolin/promptgen/internal/schema"
)

// DefaultIndent is the JSON indent width of the store file.
const DefaultIndent = 4

var (
	// ErrNotFound is returned by Load when the store file does not exist yet.
	// The returned collection is empty and usable.
	ErrNotFound = errors.New("no saved prompts file found")

	// ErrParse is returned by Load when the store file exists but is malformed.
	ErrParse = errors.New("malformed saved prompts file")

	// ErrIO is returned when the store file cannot be read or written.
	ErrIO = errors.New("saved prompts file i/o failure")
)

// Store loads and saves the full prompt collection.
type Store interface {
	// Load returns the saved collection.
	Load(ctx context.Context) ([]prompt.Record, error)

	// Save replaces the saved collection with records.
	Save(ctx context.Context, records []prompt.Record) error

	// Path names the backing location, for messages.
	Path() string
}

// File is a Store backed by a JSON file.
type File struct {
	path   string
	indent int
	logger *slog.Logger
}

// NewFile creates a file store. indent <= 0 uses DefaultIndent.
func NewFile(path string, indent int, logger *slog.Logger) *File {
	if indent <= 0 {
		indent = DefaultIndent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &File{path: path, indent: indent, logger: logger}
}

// Path returns the store file path.
func (f *File) Path() string {
	return f.path
}

// Load reads and validates the store file.
func (f *File) Load(ctx context.Context) ([]prompt.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Info("store file not found, starting empty", "path", f.path)
		return []prompt.Record{}, fmt.Errorf("%w: %s", ErrNotFound, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := schema.Validate(schema.Prompts, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f.path, err)
	}

	var records []prompt.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f.path, err)
	}
	if records == nil {
		records = []prompt.Record{}
	}

	f.logger.Debug("loaded prompts", "path", f.path, "count", len(records))
	return records, nil
}

// Save writes the whole collection to a temporary file beside the target and
// renames it into place, so readers never see a partial file. It runs to
// completion even when ctx is already cancelled: callers have changed the
// collection in memory by the time they save.
func (f *File) Save(_ context.Context, records []prompt.Record) error {
	if records == nil {
		records = []prompt.Record{}
	}

	data, err := prompt.EncodeIndent(records, f.indent)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal prompts: %w", ErrIO, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create store directory: %w", ErrIO, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(f.path), uuid.NewString()))
	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: failed to replace store file: %w", ErrIO, err)
	}

	f.logger.Debug("saved prompts", "path", f.path, "count", len(records))
	return nil
}

func writeSynced(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return nil
}
