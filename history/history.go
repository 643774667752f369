// Package history holds the weighted record of visited directories and the
// rules that grow, shrink and summarize it.
package history

import (
	"strings"
)

// Entry is a path paired with its weight.
type Entry struct {
	Path   string
	Weight float64
}

// PathStore maps paths to non-negative weights.
// It remembers the order in which paths were first added so that
// equal weights always rank the same way.
type PathStore struct {
	order   []string
	weights map[string]float64
}

// NewPathStore returns an empty store.
func NewPathStore() *PathStore {
	return &PathStore{weights: make(map[string]float64)}
}

// FromEntries builds a store from entries in their given order.
// A repeated path keeps its first position and its last weight.
func FromEntries(entries []Entry) *PathStore {
	s := NewPathStore()
	for _, e := range entries {
		s.Set(e.Path, e.Weight)
	}
	return s
}

// Get returns the weight stored for path.
func (s *PathStore) Get(path string) (float64, bool) {
	w, ok := s.weights[path]
	return w, ok
}

// Set stores weight for path. Negative weights are stored as zero.
func (s *PathStore) Set(path string, weight float64) {
	if weight < 0 {
		weight = 0
	}
	if _, ok := s.weights[path]; !ok {
		s.order = append(s.order, path)
	}
	s.weights[path] = weight
}

// Delete removes path from the store.
func (s *PathStore) Delete(path string) {
	if _, ok := s.weights[path]; !ok {
		return
	}
	delete(s.weights, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored paths.
func (s *PathStore) Len() int {
	return len(s.weights)
}

// Entries returns every stored path in insertion order.
func (s *PathStore) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, p := range s.order {
		entries = append(entries, Entry{Path: p, Weight: s.weights[p]})
	}
	return entries
}

// Normalize strips trailing separators from path.
// The root path is kept as a single separator.
func Normalize(path string, sep rune) string {
	trimmed := strings.TrimRight(path, string(sep))
	if trimmed == "" && path != "" {
		return string(sep)
	}
	return trimmed
}
