package history

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/monochromegane/go-gitignore"

	"github.com/montrey/jump/platform"
)

const (
	// DefaultVisitWeight is the boost applied by a plain visit.
	DefaultVisitWeight = 10.0
	// DefaultPenaltyWeight is subtracted by a plain penalty.
	DefaultPenaltyWeight = 15.0
)

// Model applies visits and penalties to a PathStore.
type Model struct {
	Home      string
	Separator rune

	exclude gitignore.IgnoreMatcher
}

// NewModel returns a Model for the given platform. Paths matching any of the
// gitignore-style exclude patterns are never boosted.
func NewModel(p platform.Platform, exclude []string) Model {
	m := Model{
		Home:      Normalize(p.Home(), p.Separator()),
		Separator: p.Separator(),
	}
	if len(exclude) > 0 {
		patterns := strings.Join(exclude, "\n")
		m.exclude = gitignore.NewGitIgnoreFromReader(string(p.Separator()), strings.NewReader(patterns))
	}
	return m
}

// Visit grows the weight of path by quadratic accumulation:
// sqrt(old² + weight²). The home directory and excluded paths are left alone.
func (m Model) Visit(s *PathStore, path string, weight float64) Entry {
	path = Normalize(path, m.Separator)
	if m.Home != "" && path == m.Home {
		return Entry{Path: path, Weight: 0}
	}
	old, _ := s.Get(path)
	if m.Excluded(path) {
		return Entry{Path: path, Weight: old}
	}
	s.Set(path, math.Sqrt(old*old+weight*weight))
	w, _ := s.Get(path)
	return Entry{Path: path, Weight: w}
}

// Penalize lowers the weight of path by weight, never below zero.
func (m Model) Penalize(s *PathStore, path string, weight float64) Entry {
	path = Normalize(path, m.Separator)
	old, _ := s.Get(path)
	s.Set(path, math.Max(0, old-weight))
	w, _ := s.Get(path)
	return Entry{Path: path, Weight: w}
}

// Excluded reports whether path or one of its ancestors matches an
// exclude pattern.
func (m Model) Excluded(path string) bool {
	if m.exclude == nil {
		return false
	}
	for p := path; ; {
		if m.exclude.Match(p, true) {
			return true
		}
		parent := filepath.Dir(p)
		if parent == p || parent == "." {
			return false
		}
		p = parent
	}
}
