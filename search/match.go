package search

import (
	"iter"
	"regexp"
	"strings"

	"github.com/montrey/jump/history"
)

// matchConsecutive yields entries whose trailing path components hold the
// needles in order, one component per needle, the last one in the basename.
func matchConsecutive(needles []string, entries []history.Entry, ignoreCase bool, sep rune) iter.Seq[history.Entry] {
	return matchRegexp(consecutivePattern(needles, sep, ignoreCase), entries)
}

// matchAnywhere yields entries containing the needles in order, anywhere.
func matchAnywhere(needles []string, entries []history.Entry, ignoreCase bool) iter.Seq[history.Entry] {
	return matchRegexp(anywherePattern(needles, ignoreCase), entries)
}

// matchFuzzy yields entries whose basename resembles the last needle.
func matchFuzzy(needles []string, entries []history.Entry, ignoreCase bool, sep rune, threshold float64) iter.Seq[history.Entry] {
	return func(yield func(history.Entry) bool) {
		if len(needles) == 0 {
			return
		}
		needle := needles[len(needles)-1]
		if ignoreCase {
			needle = strings.ToLower(needle)
		}
		for _, e := range entries {
			base := basename(e.Path, sep)
			if ignoreCase {
				base = strings.ToLower(base)
			}
			if Ratio(needle, base) < threshold {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func matchRegexp(pattern string, entries []history.Entry) iter.Seq[history.Entry] {
	return func(yield func(history.Entry) bool) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return
		}
		for _, e := range entries {
			if !re.MatchString(e.Path) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// consecutivePattern builds n0[^s]*s[^s]*n1 ... s[^s]*nk[^s]*$ where s is
// the separator. Needles are always quoted, separators inside them included.
func consecutivePattern(needles []string, sep rune, ignoreCase bool) string {
	s := regexp.QuoteMeta(string(sep))
	noSep := "[^" + s + "]*"
	oneSep := noSep + s + noSep

	pattern := strings.Join(quoteAll(needles), oneSep) + noSep + "$"
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return pattern
}

func anywherePattern(needles []string, ignoreCase bool) string {
	pattern := ".*" + strings.Join(quoteAll(needles), ".*") + ".*"
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return pattern
}

func quoteAll(needles []string) []string {
	quoted := make([]string, len(needles))
	for i, n := range needles {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return quoted
}

func basename(path string, sep rune) string {
	if i := strings.LastIndex(path, string(sep)); i >= 0 {
		return path[i+len(string(sep)):]
	}
	return path
}
