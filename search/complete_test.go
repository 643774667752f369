package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montrey/jump/history"
	"github.com/montrey/jump/platform/platformtest"
)

func TestParseTabEntry(t *testing.T) {
	tests := []struct {
		in   string
		want TabEntry
	}{
		{"foo", TabEntry{}},
		{"foo__", TabEntry{Needle: "foo", HasNeedle: true}},
		{"foo__2", TabEntry{Needle: "foo", HasNeedle: true, Index: 2}},
		{"foo__27", TabEntry{Needle: "foo", HasNeedle: true, Index: 2}},
		{"foo__3__/src/foo", TabEntry{Needle: "foo", HasNeedle: true, Index: 3, Path: "/src/foo"}},
		{"foo__x", TabEntry{Needle: "foo", HasNeedle: true}},
		{"foo__x__4", TabEntry{Needle: "foo", HasNeedle: true, Index: 4}},
		{"a___1", TabEntry{Needle: "a", HasNeedle: true, Index: 1}},
		{"__1", TabEntry{Needle: "", HasNeedle: true, Index: 1}},
		{"a__1x__2__/p", TabEntry{Needle: "a", HasNeedle: true, Index: 1, Path: "/p"}},
		{"a__1__/p__2__/q", TabEntry{Needle: "a", HasNeedle: true, Index: 1, Path: "/p__2__/q"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTabEntry(tt.in, "__"))
		})
	}
}

func newTestCompleter(fake *platformtest.Fake) *Completer {
	return NewCompleter(New(fake), "", 0)
}

func completionEntries() []history.Entry {
	return []history.Entry{
		{Path: "/src/foo", Weight: 30},
		{Path: "/tmp/foo", Weight: 10},
		{Path: "/opt/bar", Weight: 50},
	}
}

func TestComplete_Menu(t *testing.T) {
	c := newTestCompleter(platformtest.New())

	lines, err := c.Complete("foo", completionEntries())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"foo__1__/src/foo",
		"foo__2__/tmp/foo",
	}, lines)

	// malformed encoding falls back to the menu for the text
	lines, err = c.Complete("foo__x", completionEntries())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"foo__1__/src/foo",
		"foo__2__/tmp/foo",
	}, lines)
}

func TestComplete_MenuIsCapped(t *testing.T) {
	var entries []history.Entry
	for i := 0; i < 20; i++ {
		entries = append(entries, history.Entry{Path: "/d/" + string(rune('a'+i)) + "x", Weight: float64(i)})
	}
	c := NewCompleter(New(platformtest.New()), "", 0)
	lines, err := c.Complete("x", entries)
	require.NoError(t, err)
	assert.Len(t, lines, DefaultTabEntries)
	assert.Equal(t, "x__1__/d/tx", lines[0])
}

func TestComplete_Index(t *testing.T) {
	c := newTestCompleter(platformtest.New())

	lines, err := c.Complete("foo__2", completionEntries())
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/foo"}, lines)

	lines, err = c.Complete("foo__5", completionEntries())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Empty(t, lines)
}

func TestComplete_LiteralPath(t *testing.T) {
	c := newTestCompleter(platformtest.New())
	lines, err := c.Complete("foo__1__/some/where else", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/some/where else"}, lines)
}

func TestComplete_CustomSeparator(t *testing.T) {
	c := NewCompleter(New(platformtest.New()), "::", 1)
	lines, err := c.Complete("foo", completionEntries())
	require.NoError(t, err)
	assert.Equal(t, []string{"foo::1::/src/foo"}, lines)
}

func TestResolve(t *testing.T) {
	fake := platformtest.New("/src/foo", "/tmp/foo", "/opt/bar")
	c := newTestCompleter(fake)
	entries := completionEntries()

	tests := []struct {
		name    string
		needles []string
		want    string
	}{
		{"best match", []string{"foo"}, "/src/foo"},
		{"bare separator selects first", []string{"foo__"}, "/src/foo"},
		{"index", []string{"foo__2"}, "/tmp/foo"},
		{"index out of range", []string{"foo__7"}, CurrentDirectory},
		{"literal path", []string{"foo__1__/any/path"}, "/any/path"},
		{"no match", []string{"nothing"}, CurrentDirectory},
		{"no needles", nil, "/opt/bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Resolve(tt.needles, entries))
		})
	}
}

func TestResolve_SkipsMissing(t *testing.T) {
	fake := platformtest.New("/tmp/foo")
	c := newTestCompleter(fake)
	assert.Equal(t, "/tmp/foo", c.Resolve([]string{"foo"}, completionEntries()))
}
