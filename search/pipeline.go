// Package search ranks history entries against user needles and resolves
// shell completions on top of the same ranking.
package search

import (
	"cmp"
	"iter"
	"slices"
	"strings"
	"unicode"

	"github.com/montrey/jump/history"
	"github.com/montrey/jump/platform"
)

// DefaultFuzzyThreshold is the minimum similarity ratio for the fuzzy stage.
const DefaultFuzzyThreshold = 0.6

// Pipeline ranks history entries against needles.
type Pipeline struct {
	platform  platform.Platform
	threshold float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFuzzyThreshold sets the similarity ratio the fuzzy stage requires.
func WithFuzzyThreshold(threshold float64) Option {
	return func(p *Pipeline) {
		p.threshold = threshold
	}
}

// New returns a Pipeline that asks p about the filesystem.
func New(p platform.Platform, opts ...Option) *Pipeline {
	pl := &Pipeline{platform: p, threshold: DefaultFuzzyThreshold}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// FindMatches yields entries matching needles, heaviest first, from three
// stages in order: consecutive, fuzzy, anywhere. The sequence is lazy, so a
// consumer that stops early never evaluates the later stages. An entry may be
// yielded by more than one stage; see Distinct.
//
// The current working directory is never yielded. With checkExistence set,
// paths missing from the filesystem are skipped too.
func (pl *Pipeline) FindMatches(entries []history.Entry, needles []string, checkExistence bool) iter.Seq[history.Entry] {
	ignoreCase := !caseSensitive(needles)
	sep := pl.platform.Separator()

	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b history.Entry) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	// An unresolvable working directory disables the filter.
	cwd := ""
	if wd, err := pl.platform.Getwd(); err == nil {
		cwd = pl.platform.Realpath(wd)
	}

	keep := func(e history.Entry) bool {
		if cwd != "" && pl.platform.Realpath(e.Path) == cwd {
			return false
		}
		return !checkExistence || pl.platform.Exists(e.Path)
	}

	return filter(chain(
		matchConsecutive(needles, ranked, ignoreCase, sep),
		matchFuzzy(needles, ranked, ignoreCase, sep, pl.threshold),
		matchAnywhere(needles, ranked, ignoreCase),
	), keep)
}

// caseSensitive reports whether any needle holds an uppercase rune.
func caseSensitive(needles []string) bool {
	for _, n := range needles {
		if strings.IndexFunc(n, unicode.IsUpper) >= 0 {
			return true
		}
	}
	return false
}

// Sanitize strips trailing separators from each needle. A needle that is
// only the separator is kept.
func Sanitize(needles []string, sep rune) []string {
	out := make([]string, len(needles))
	for i, n := range needles {
		if n == string(sep) {
			out[i] = n
			continue
		}
		out[i] = strings.TrimRight(n, string(sep))
	}
	return out
}
