package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// resolveConfigPath returns the config file to use. Priority:
// 1. Explicit --config flag (non-empty)
// 2. .askgemini/config.yaml (if it exists)
// 3. askgemini.yaml
func resolveConfigPath(explicit, appDirPath string) string {
	if explicit != "" {
		return explicit
	}

	dirConfig := filepath.Join(appDirPath, "config.yaml")
	if _, err := os.Stat(dirConfig); err == nil {
		return dirConfig
	}

	return "askgemini.yaml"
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger returns a console logger on stderr. Debug level when
// verbose, warnings only otherwise.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
