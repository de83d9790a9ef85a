// Package config loads per-console settings from a TOML file, falling
// back to documented defaults when the file is missing.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields a console needs to reach its backend.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	LogPath      string
}

// App describes one console's defaults. The base URL can also come from
// the app's environment variable, which wins over the file.
type App struct {
	Name       string
	ConfigPath string
	BaseURL    string
	Timeout    time.Duration
	EnvVar     string
}

// FlagConsole is the feature-flag admin console.
var FlagConsole = App{
	Name:       "flagdeck",
	ConfigPath: "~/.config/flagdeck/config.toml",
	BaseURL:    "http://localhost:8080/feature",
	Timeout:    10 * time.Second,
	EnvVar:     "FLAGDECK_API_BASE_URL",
}

// MovieConsole is the movie-search console.
var MovieConsole = App{
	Name:       "marquee",
	ConfigPath: "~/.config/marquee/config.toml",
	BaseURL:    "http://localhost:8081/movie",
	Timeout:    15 * time.Second,
	EnvVar:     "MARQUEE_API_BASE_URL",
}

const defaultPollInterval = 30 * time.Second

// Load locates and parses the app's config, falling back to defaults
// when the file is missing.
func Load(path string, app App) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = app.ConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:      app.BaseURL,
		Timeout:      app.Timeout,
		PollInterval: defaultPollInterval,
		LogPath:      defaultLogPath(app.Name),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg, app)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		PollSeconds    int    `toml:"poll_seconds"`
		LogPath        string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.BaseURL); base != "" {
		cfg.BaseURL = base
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	applyEnv(&cfg, app)
	return cfg, nil
}

// applyEnv lets the environment override the base URL, matching the
// deploy-time injection both web frontends used.
func applyEnv(cfg *Config, app App) {
	if app.EnvVar == "" {
		return
	}
	if base := strings.TrimSpace(os.Getenv(app.EnvVar)); base != "" {
		cfg.BaseURL = base
	}
}

func defaultLogPath(name string) string {
	return mustExpand(filepath.Join("~/.local/share", name, name+".log"))
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
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
