package config

import (
	"os"
	"path/filepath"
)

const appDirName = "azimuth"

// ConfigDir returns the base configuration directory for Azimuth,
// e.g. ~/.config/azimuth on Linux.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// ConfigPath returns the path to the main TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "azimuth.toml"), nil
}

// SessionStatePath returns the path to the persisted UI session state.
// The extension depends on the configured store backend.
func SessionStatePath(backend string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if backend == "bbolt" {
		return filepath.Join(dir, "state.db"), nil
	}
	return filepath.Join(dir, "state.json"), nil
}

// LogPath returns the path to the log file. The terminal UI owns stdout, so
// interactive runs log here.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "azimuth.log"), nil
}
