package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "azimuth.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AutosaveDelay() != time.Second {
		t.Fatalf("expected 1s autosave delay, got %v", cfg.AutosaveDelay())
	}
	if cfg.MaxNotebooks() != 50 || cfg.MaxEntriesToScan() != 200 {
		t.Fatalf("unexpected scan caps: %d/%d", cfg.MaxNotebooks(), cfg.MaxEntriesToScan())
	}
	if cfg.StoreBackend() != "file" {
		t.Fatalf("expected file backend, got %q", cfg.StoreBackend())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("expected info level, got %q", cfg.LogLevel())
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "azimuth.toml")
	body := `
[workspace]
notes_dir = "/tmp/azimuth-test-notes"

[autosave]
delay_ms = 250

[store]
backend = "bbolt"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workspace.NotesDir != "/tmp/azimuth-test-notes" {
		t.Fatalf("unexpected notes dir: %q", cfg.Workspace.NotesDir)
	}
	if cfg.AutosaveDelay() != 250*time.Millisecond {
		t.Fatalf("unexpected delay: %v", cfg.AutosaveDelay())
	}
	if cfg.StoreBackend() != "bbolt" {
		t.Fatalf("unexpected backend: %q", cfg.StoreBackend())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected level: %q", cfg.LogLevel())
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "azimuth.toml")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AutosaveDelay() != time.Second {
		t.Fatalf("expected default delay, got %v", cfg.AutosaveDelay())
	}
}

func TestNotesDirExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	cfg := Default()
	cfg.Workspace.NotesDir = "~/azimuth-test-tilde"
	dir, err := cfg.NotesDir()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	defer os.RemoveAll(dir)
	if dir != filepath.Join(home, "azimuth-test-tilde") {
		t.Fatalf("unexpected dir: %q", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected dir to be created: %v", err)
	}
}
