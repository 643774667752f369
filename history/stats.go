package history

import (
	"sort"

	"github.com/montrey/jump/platform"
)

// Stats is a read-only summary of a PathStore.
type Stats struct {
	Entries []Entry // ascending by weight
	Total   float64
	Count   int

	CurrentPath   string
	CurrentWeight float64
	HasCurrent    bool
}

// Summarize collects Stats for s. The current directory line is filled in
// only when the working directory resolves and is present in the store.
func Summarize(s *PathStore, p platform.Platform) Stats {
	entries := s.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weight < entries[j].Weight
	})

	st := Stats{Entries: entries, Count: len(entries)}
	for _, e := range entries {
		st.Total += e.Weight
	}

	wd, err := p.Getwd()
	if err != nil {
		return st
	}
	wd = Normalize(wd, p.Separator())
	for _, candidate := range []string{wd, p.Realpath(wd)} {
		if w, ok := s.Get(candidate); ok {
			st.CurrentPath = candidate
			st.CurrentWeight = w
			st.HasCurrent = true
			break
		}
	}
	return st
}
