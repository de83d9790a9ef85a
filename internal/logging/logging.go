// Package logging builds the file-backed zerolog logger the consoles
// use. The terminal belongs to the TUI, so diagnostics go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New opens (or creates) the log file at path and returns a logger
// writing to it plus a close function. An empty path yields a no-op
// logger.
func New(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(file).With().Timestamp().Logger()
	return log, func() { _ = file.Close() }, nil
}
