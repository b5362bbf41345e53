package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Dir != DefaultStoreDir {
		t.Errorf("Store.Dir = %q, want %q", cfg.Store.Dir, DefaultStoreDir)
	}
	if cfg.Task.DefaultPriority != 0 {
		t.Errorf("DefaultPriority = %d, want 0 (unset)", cfg.Task.DefaultPriority)
	}
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	writeConfig(t, filepath.Join(homeDir, ".config", "ordino"), "config.toml", `
[store]
dir = "global-dir"

[task]
default-priority = 5
default-hours = 4
`)

	projectDir := t.TempDir()
	writeConfig(t, projectDir, "ordino.toml", `
[store]
dir = "project-dir"

[task]
default-priority = 2
`)

	cfg, err := Load(projectDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Dir != "project-dir" {
		t.Errorf("Store.Dir = %q, want project-dir", cfg.Store.Dir)
	}
	if cfg.Task.DefaultPriority != 2 {
		t.Errorf("DefaultPriority = %d, want 2", cfg.Task.DefaultPriority)
	}
	if cfg.Task.DefaultHours != 4 {
		t.Errorf("DefaultHours = %d, want 4 (from global)", cfg.Task.DefaultHours)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	projectDir := t.TempDir()
	writeConfig(t, projectDir, "ordino.toml", "not [valid")

	if _, err := Load(projectDir); err == nil {
		t.Fatal("Load succeeded on invalid TOML")
	}
}
