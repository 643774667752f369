// Package platform answers the questions the ranking engine asks about the
// machine it runs on: where we are, what exists, where home is.
package platform

import (
	"os"
	"path/filepath"
)

// Platform is the OS collaborator used by the history and search packages.
type Platform interface {
	// Getwd returns the current working directory.
	Getwd() (string, error)
	// Exists reports whether path is present on the filesystem.
	Exists(path string) bool
	// Home returns the user's home directory, or "" if unknown.
	Home() string
	// Separator returns the path separator of the running platform.
	Separator() rune
	// Realpath resolves symlinks in path. It returns path unchanged on failure.
	Realpath(path string) string
}

// Host is the Platform backed by the real operating system.
type Host struct{}

func (Host) Getwd() (string, error) {
	return os.Getwd()
}

func (Host) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (Host) Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (Host) Separator() rune {
	return filepath.Separator
}

func (Host) Realpath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
