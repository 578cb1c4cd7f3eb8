// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global logger. level is a zerolog level name and falls back
// to info. Output is a console writer when LOG_FORMAT=console or stderr is a
// terminal, JSON otherwise.
func Init(level string) {
	log.Logger = New(os.Stderr, level, consoleWanted())
}

// New builds a logger writing to w.
func New(w io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func consoleWanted() bool {
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "console":
		return true
	case "json":
		return false
	}
	fi, err := os.Stderr.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// ToFile redirects the global logger to a JSON log file under the user
// cache directory, for use while a terminal UI owns the screen. The
// returned func restores stderr logging and closes the file.
func ToFile(level string) (func(), error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	prev := log.Logger
	log.Logger = New(f, level, false)
	return func() {
		log.Logger = prev
		_ = f.Close()
	}, nil
}

// FilePath is where ToFile writes.
func FilePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "wikiquiz", "wikiquiz.log"), nil
}
