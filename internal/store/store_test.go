package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jackzampolin/promptgen/internal/prompt"
)

func TestFile_Load_NotFound(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), "saved_prompts.json"), 0, nil)

	records, err := s.Load(t.Context())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty collection, got %v", records)
	}
}

func TestFile_Load_Malformed(t *testing.T) {
	tests := map[string]string{
		"truncated":     `[{"base_question": "q"`,
		"empty file":    ``,
		"wrong shape":   `{"base_question": "q"}`,
		"unknown field": `[{"base_question": "q", "extra": "x"}]`,
		"null value":    `[{"base_question": null}]`,
		"blank value":   `[{"base_question": ""}]`,
		"empty steps":   `[{"base_question": "q", "steps": []}]`,
		"blank step":    `[{"steps": ["a", ""]}]`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "saved_prompts.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("failed to write store file: %v", err)
			}

			_, err := NewFile(path, 0, nil).Load(t.Context())
			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestFile_RoundTrip(t *testing.T) {
	collections := map[string][]prompt.Record{
		"empty": {},
		"sparse": {
			{BaseQuestion: "Explain recursion", OutputPreference: "brief"},
		},
		"full": {
			{
				BaseQuestion:     "Write a parser",
				CharacterRole:    "Compiler engineer",
				Steps:            []string{"tokenize", "parse"},
				ExampleOutput:    "AST",
				StructureFormat:  "Go",
				AdditionalNotes:  "no regex",
				OutputPreference: "summarize",
			},
			{CharacterRole: "only a role"},
			{Steps: []string{"one"}},
		},
	}

	for name, records := range collections {
		t.Run(name, func(t *testing.T) {
			s := NewFile(filepath.Join(t.TempDir(), "saved_prompts.json"), 0, nil)

			if err := s.Save(t.Context(), records); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			loaded, err := s.Load(t.Context())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(loaded, records) {
				t.Errorf("expected %+v, got %+v", records, loaded)
			}
		})
	}
}

func TestFile_Save_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_prompts.json")
	s := NewFile(path, 0, nil)

	records := []prompt.Record{{BaseQuestion: "q", OutputPreference: "brief"}}
	if err := s.Save(t.Context(), records); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	want := "[\n    {\n        \"base_question\": \"q\",\n        \"output_preference\": \"brief\"\n    }\n]"
	if string(data) != want {
		t.Errorf("expected\n%s\ngot\n%s", want, data)
	}
}

func TestFile_Save_KeepsMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_prompts.json")
	s := NewFile(path, 0, nil)

	records := []prompt.Record{{ExampleOutput: "<a> & b"}}
	if err := s.Save(t.Context(), records); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	if !strings.Contains(string(data), `"example_output": "<a> & b"`) {
		t.Errorf("expected literal markup, got %s", data)
	}

	loaded, err := s.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Errorf("expected %+v, got %+v", records, loaded)
	}
}

func TestFile_Save_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_prompts.json")
	s := NewFile(path, 0, nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	records := []prompt.Record{{BaseQuestion: "q"}}
	if err := s.Save(ctx, records); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := s.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Errorf("expected %+v, got %+v", records, loaded)
	}
}

func TestFile_Save_NilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_prompts.json")
	if err := NewFile(path, 0, nil).Save(t.Context(), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestFile_Save_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFile(filepath.Join(dir, "saved_prompts.json"), 0, nil)

	for i := 0; i < 3; i++ {
		if err := s.Save(t.Context(), []prompt.Record{{BaseQuestion: "q"}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file, got %d", len(entries))
	}
}

func TestFile_Save_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "saved_prompts.json")
	if err := NewFile(path, 0, nil).Save(t.Context(), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected store file to exist: %v", err)
	}
}

func TestFile_Save_IOFailure(t *testing.T) {
	// A regular file where the parent directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write blocker: %v", err)
	}

	err := NewFile(filepath.Join(blocker, "saved_prompts.json"), 0, nil).Save(t.Context(), nil)
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestFile_Path(t *testing.T) {
	s := NewFile("/tmp/prompts.json", 2, nil)
	if s.Path() != "/tmp/prompts.json" {
		t.Errorf("expected /tmp/prompts.json, got %s", s.Path())
	}
}
