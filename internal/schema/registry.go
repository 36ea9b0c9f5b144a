// Package schema holds the JSON schemas for files promptgen reads from disk.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Prompts is the schema of the saved prompts file.
const Prompts = "prompts"

// ErrInvalid is returned when a document does not match its schema.
var ErrInvalid = errors.New("document does not match schema")

// registry lists the known schemas. Each has schemas/<name>.json.
var registry = []string{Prompts}

var (
	compiledMu sync.Mutex
	compiled   = make(map[string]*jsonschema.Schema)
)

// load returns the raw schema document for name.
func load(name string) ([]byte, error) {
	for _, n := range registry {
		if n != name {
			continue
		}
		content, err := schemaFS.ReadFile(fileName(name))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("schema not found: %s", name)
}

// Validate checks raw JSON data against the named schema.
// Data that is not JSON at all is reported as ErrInvalid too.
func Validate(name string, data []byte) error {
	s, err := compile(name)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// compile loads and compiles a schema once per process.
func compile(name string) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	raw, err := load(name)
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(fileName(name), bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	s, err := compiler.Compile(fileName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	compiled[name] = s
	return s, nil
}

func fileName(name string) string {
	return fmt.Sprintf("schemas/%s.json", name)
}
