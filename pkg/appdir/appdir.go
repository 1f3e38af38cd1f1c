// Package appdir encapsulates path knowledge for the .askgemini/
// directory. It provides a Dir value object with accessors for the
// config and .env files, and a bootstrap that writes a starter layout.
package appdir

import (
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within a .askgemini/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to
// an absolute path. No I/O is performed; use Bootstrap to create the
// directory layout.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .askgemini/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the main config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// EnvPath returns the path to the .env file inside the directory.
func (d Dir) EnvPath() string { return filepath.Join(d.root, ".env") }

// GitignorePath returns the path to the .gitignore file inside the directory.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// Exists reports whether the .askgemini/ root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}
