package search

import (
	"errors"
	"strconv"
	"strings"

	"github.com/montrey/jump/history"
)

const (
	// DefaultTabSeparator splits a completion needle from its index and path.
	DefaultTabSeparator = "__"
	// DefaultTabEntries caps the completion menu.
	DefaultTabEntries = 9
	// CurrentDirectory is printed when nothing matches so the shell stays put.
	CurrentDirectory = "."
)

// ErrIndexOutOfRange is returned when a completion index selects past the
// last match.
var ErrIndexOutOfRange = errors.New("tab completion index out of range")

// TabEntry is a decoded completion needle: <needle>SEP<index>SEP<path>.
type TabEntry struct {
	Needle    string
	HasNeedle bool
	Index     int // 1-9, zero when absent
	Path      string
}

// ParseTabEntry decodes s. The needle is the text before the first separator;
// the index is the digit after the first separator followed by a digit; the
// path is whatever follows the first separator, digit, separator run. The
// index and the path are located independently.
func ParseTabEntry(s, sep string) TabEntry {
	var t TabEntry
	if sep == "" {
		return t
	}
	i := strings.Index(s, sep)
	if i < 0 {
		return t
	}
	t.Needle, t.HasNeedle = s[:i], true

	indexFound := false
	for off := i; off < len(s); {
		j := strings.Index(s[off:], sep)
		if j < 0 {
			break
		}
		digit := off + j + len(sep)
		if digit < len(s) && isDigit(s[digit]) {
			if !indexFound {
				t.Index = int(s[digit] - '0')
				indexFound = true
			}
			if rest := s[digit+1:]; strings.HasPrefix(rest, sep) {
				t.Path = rest[len(sep):]
				break
			}
		}
		off += j + 1
	}
	return t
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Completer turns needles into shell completions and jump targets.
type Completer struct {
	pipeline  *Pipeline
	separator string
	entries   int
}

// NewCompleter returns a Completer over pipeline. Zero values pick the defaults.
func NewCompleter(pipeline *Pipeline, separator string, entries int) *Completer {
	if separator == "" {
		separator = DefaultTabSeparator
	}
	if entries <= 0 {
		entries = DefaultTabEntries
	}
	return &Completer{pipeline: pipeline, separator: separator, entries: entries}
}

// Complete answers a shell completion request. A needle carrying a literal
// path yields that path; one carrying an index yields the index-th match;
// anything else yields a menu of numbered candidates formatted as
// needle SEP i SEP path so the shell can hand a choice straight back.
// Paths need not exist for completion.
func (c *Completer) Complete(input string, entries []history.Entry) ([]string, error) {
	tab := ParseTabEntry(input, c.separator)
	switch {
	case tab.Path != "":
		return []string{tab.Path}, nil
	case tab.Index > 0:
		matches := Distinct(c.pipeline.FindMatches(entries, []string{tab.Needle}, false))
		e, ok := Nth(matches, tab.Index)
		if !ok {
			return nil, ErrIndexOutOfRange
		}
		return []string{e.Path}, nil
	case tab.Needle != "":
		return c.menu(tab.Needle, entries), nil
	default:
		return c.menu(input, entries), nil
	}
}

func (c *Completer) menu(needle string, entries []history.Entry) []string {
	matches := Take(c.entries, Distinct(c.pipeline.FindMatches(entries, []string{needle}, false)))
	lines := make([]string, len(matches))
	for i, e := range matches {
		lines[i] = needle + c.separator + strconv.Itoa(i+1) + c.separator + e.Path
	}
	return lines
}

// Resolve picks the directory to jump to for needles, falling back to
// CurrentDirectory. A first needle ending in a bare separator ("foo__")
// selects the first match for its text.
func (c *Completer) Resolve(needles []string, entries []history.Entry) string {
	first := ""
	if len(needles) > 0 {
		first = needles[0]
	}
	tab := ParseTabEntry(first, c.separator)
	if tab.Path == "" && tab.Index == 0 && tab.Needle != "" && first == tab.Needle+c.separator {
		tab.Index = 1
	}

	switch {
	case tab.Path != "":
		return tab.Path
	case tab.Index > 0:
		matches := Distinct(c.pipeline.FindMatches(entries, []string{tab.Needle}, true))
		if e, ok := Nth(matches, tab.Index); ok {
			return e.Path
		}
		return CurrentDirectory
	}

	if e, ok := First(c.pipeline.FindMatches(entries, needles, true)); ok {
		return e.Path
	}
	return CurrentDirectory
}
