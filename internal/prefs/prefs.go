// Package prefs handles per-console user preferences persistence.
// Preferences are stored in ~/.config/<app>/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences shared by both consoles. PageSize only
// matters to the flag console; LastSearch only to the movie console.
type Prefs struct {
	PageSize   int    `toml:"page_size"`
	LastSearch string `toml:"last_search"`
}

const defaultPageSize = 20

// DefaultPath returns the preferences path for the named app.
func DefaultPath(app string) string {
	return "~/.config/" + app + "/prefs.toml"
}

// Load reads preferences from the given path. Any failure degrades to
// defaults; preferences are never worth aborting startup over.
func Load(path string) Prefs {
	prefs := Prefs{PageSize: defaultPageSize}

	resolved, err := expandPath(path)
	if err != nil {
		return prefs
	}
	file, err := os.Open(resolved)
	if err != nil {
		return prefs
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{PageSize: defaultPageSize}
	}
	if prefs.PageSize <= 0 {
		prefs.PageSize = defaultPageSize
	}
	return prefs
}

// Save writes preferences to the given path, creating directories as
// needed.
func Save(path string, p Prefs) error {
	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
