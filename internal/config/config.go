package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultNotesDirName  = "Azimuth"
	defaultAutosaveDelay = 1000
	defaultMaxNotebooks  = 50
	defaultMaxScan       = 200
)

type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Autosave  AutosaveConfig  `toml:"autosave"`
	Scan      ScanConfig      `toml:"scan"`
	Store     StoreConfig     `toml:"store"`
	Logging   LoggingConfig   `toml:"logging"`
}

type WorkspaceConfig struct {
	// NotesDir overrides the workspace root. Empty means ~/Azimuth.
	NotesDir string `toml:"notes_dir"`
}

type AutosaveConfig struct {
	DelayMS int `toml:"delay_ms"`
}

type ScanConfig struct {
	MaxNotebooks     int `toml:"max_notebooks"`
	MaxEntriesToScan int `toml:"max_entries_to_scan"`
}

type StoreConfig struct {
	// Backend selects session-state persistence: "file" or "bbolt".
	Backend string `toml:"backend"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Autosave: AutosaveConfig{DelayMS: defaultAutosaveDelay},
		Scan: ScanConfig{
			MaxNotebooks:     defaultMaxNotebooks,
			MaxEntriesToScan: defaultMaxScan,
		},
		Store:   StoreConfig{Backend: "file"},
		Logging: LoggingConfig{Level: "info"},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// NotesDir resolves the workspace root directory, creating it if missing.
func (c Config) NotesDir() (string, error) {
	dir := strings.TrimSpace(c.Workspace.NotesDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, defaultNotesDirName)
	} else if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, dir[2:])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (c Config) AutosaveDelay() time.Duration {
	delay := c.Autosave.DelayMS
	if delay <= 0 {
		delay = defaultAutosaveDelay
	}
	return time.Duration(delay) * time.Millisecond
}

func (c Config) MaxNotebooks() int {
	if c.Scan.MaxNotebooks <= 0 {
		return defaultMaxNotebooks
	}
	return c.Scan.MaxNotebooks
}

func (c Config) MaxEntriesToScan() int {
	if c.Scan.MaxEntriesToScan <= 0 {
		return defaultMaxScan
	}
	return c.Scan.MaxEntriesToScan
}

func (c Config) StoreBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if backend != "bbolt" {
		return "file"
	}
	return backend
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}
