package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/promptgen/internal/home"
)

// execute runs the root command with fresh flag state against a temp home.
func execute(t *testing.T, homePath, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile, homeDir, storePath, outputFormat = "", "", "", "yaml"
	deleteYes, configForce = false, false

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--home", homePath}, args...))

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func quietSession(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PROMPTGEN_CLIPBOARD_ENABLED", "false")
	t.Setenv("PROMPTGEN_UI_CLEAR_SCREEN", "false")
	t.Setenv("PROMPTGEN_UI_PAUSE", "0s")
	return t.TempDir()
}

func TestInteractive_CreateThenInspect(t *testing.T) {
	dir := quietSession(t)

	script := strings.Join([]string{
		"1",
		"Explain recursion", "", "n", "", "n", "", "",
		"3",
	}, "\n") + "\n"

	out, err := execute(t, dir, script)
	if err != nil {
		t.Fatalf("interactive session error = %v", err)
	}
	if !strings.Contains(out, "No saved prompts file found. Starting fresh.") {
		t.Error("expected fresh start notice")
	}
	if !strings.Contains(out, "Exiting the application. Goodbye!") {
		t.Error("expected farewell")
	}

	h, _ := home.New(dir)
	if _, err := os.Stat(h.StorePath()); err != nil {
		t.Fatalf("expected store file in home directory: %v", err)
	}

	out, err = execute(t, dir, "", "list", "-o", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var rows []summary
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].ID != 1 || rows[0].BaseQuestion != "Explain recursion" {
		t.Errorf("expected one row for Explain recursion, got %+v", rows)
	}

	out, err = execute(t, dir, "", "show", "1")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	want := "base_question: Explain recursion\noutput_preference: brief\n"
	if out != want {
		t.Errorf("expected\n%s\ngot\n%s", want, out)
	}

	if _, err := execute(t, dir, "", "show", "2"); err == nil {
		t.Error("expected error for missing ID")
	}

	// Second session reports the loaded file.
	out, err = execute(t, dir, "3\n")
	if err != nil {
		t.Fatalf("interactive session error = %v", err)
	}
	if !strings.Contains(out, "Prompts loaded from "+h.StorePath()+" successfully!") {
		t.Errorf("expected loaded notice, got %q", out)
	}
}

func TestInteractive_EndOfInput(t *testing.T) {
	dir := quietSession(t)

	if _, err := execute(t, dir, ""); err != nil {
		t.Errorf("expected clean exit on end of input, got %v", err)
	}
}

func TestInteractive_MalformedStore(t *testing.T) {
	dir := quietSession(t)

	h, _ := home.New(dir)
	if err := os.WriteFile(h.StorePath(), []byte(`{"base_question": 1}`), 0o644); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}

	if _, err := execute(t, dir, "3\n"); err == nil {
		t.Error("expected error for malformed store")
	}
}

func TestDelete(t *testing.T) {
	dir := quietSession(t)
	storeFile := filepath.Join(t.TempDir(), "prompts.json")
	seed := `[{"base_question": "one"}, {"base_question": "two"}]`
	if err := os.WriteFile(storeFile, []byte(seed), 0o644); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}

	t.Run("declined", func(t *testing.T) {
		out, err := execute(t, dir, "n\n", "--store", storeFile, "delete", "1")
		if err != nil {
			t.Fatalf("delete error = %v", err)
		}
		if !strings.Contains(out, "Prompt was not deleted.") {
			t.Errorf("expected cancel message, got %q", out)
		}
	})

	t.Run("confirmed by flag", func(t *testing.T) {
		out, err := execute(t, dir, "", "--store", storeFile, "delete", "1", "--yes")
		if err != nil {
			t.Fatalf("delete error = %v", err)
		}
		if !strings.Contains(out, "Prompt deleted successfully!") {
			t.Errorf("expected delete message, got %q", out)
		}

		out, err = execute(t, dir, "", "--store", storeFile, "list")
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		if out != "- id: 1\n  base_question: two\n" {
			t.Errorf("expected only two at ID 1, got %q", out)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		if _, err := execute(t, dir, "", "--store", storeFile, "delete", "abc", "--yes"); err == nil {
			t.Error("expected error for non-numeric ID")
		}
	})
}

func TestConfigCommands(t *testing.T) {
	dir := quietSession(t)
	h, _ := home.New(dir)

	if _, err := execute(t, dir, "", "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !h.ConfigExists() {
		t.Fatal("expected config file in home directory")
	}
	if _, err := execute(t, dir, "", "config", "init"); err == nil {
		t.Error("expected error when config exists")
	}
	if _, err := execute(t, dir, "", "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	out, err := execute(t, dir, "", "config", "show", "-o", "json")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	var shown map[string]map[string]any
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("config show output is not JSON: %v", err)
	}
	// Set by quietSession through the environment.
	if shown["clipboard"]["enabled"] != false {
		t.Errorf("expected clipboard.enabled false, got %v", shown["clipboard"]["enabled"])
	}

	out, err = execute(t, dir, "", "config", "show", "clipboard.enabled")
	if err != nil {
		t.Fatalf("config show <key> error = %v", err)
	}
	if !strings.Contains(out, "key: clipboard.enabled\n") || !strings.Contains(out, "default: true\n") {
		t.Errorf("expected clipboard.enabled with its default, got %q", out)
	}
	if _, err := execute(t, dir, "", "config", "show", "clipboard.colour"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := execute(t, dir, "", "config", "show", "clipboard enabled"); err == nil {
		t.Error("expected error for malformed key")
	}

	out, err = execute(t, dir, "", "config", "defaults")
	if err != nil {
		t.Fatalf("config defaults error = %v", err)
	}
	if !strings.Contains(out, "key: store.indent") {
		t.Errorf("expected store.indent in defaults, got %q", out)
	}
}

func TestOutputFlag(t *testing.T) {
	dir := quietSession(t)
	if _, err := execute(t, dir, "", "list", "-o", "xml"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "promptgen dev\n") {
		t.Errorf("expected version banner, got %q", out)
	}
}
