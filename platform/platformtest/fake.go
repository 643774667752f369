// Package platformtest provides an in-memory platform for tests.
package platformtest

import "errors"

// ErrNoWorkingDirectory is returned by Getwd when Wd is empty.
var ErrNoWorkingDirectory = errors.New("working directory unavailable")

// Fake is a Platform whose answers come from its fields.
type Fake struct {
	Wd       string
	HomeDir  string
	Sep      rune
	Existing map[string]bool
	Links    map[string]string // path -> resolved path

	// ExistsCalls counts Exists lookups.
	ExistsCalls int
}

// New returns a Fake with a "/" separator and the given existing paths.
func New(existing ...string) *Fake {
	f := &Fake{
		Sep:      '/',
		Existing: make(map[string]bool),
		Links:    make(map[string]string),
	}
	for _, p := range existing {
		f.Existing[p] = true
	}
	return f
}

func (f *Fake) Getwd() (string, error) {
	if f.Wd == "" {
		return "", ErrNoWorkingDirectory
	}
	return f.Wd, nil
}

func (f *Fake) Exists(path string) bool {
	f.ExistsCalls++
	return f.Existing[path]
}

func (f *Fake) Home() string {
	return f.HomeDir
}

func (f *Fake) Separator() rune {
	if f.Sep == 0 {
		return '/'
	}
	return f.Sep
}

func (f *Fake) Realpath(path string) string {
	if resolved, ok := f.Links[path]; ok {
		return resolved
	}
	return path
}
