package history

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/montrey/jump/platform/platformtest"
)

func TestPathStore_Order(t *testing.T) {
	s := NewPathStore()
	s.Set("/b", 1)
	s.Set("/a", 2)
	s.Set("/c", 3)
	s.Set("/a", 5)
	s.Set("/neg", -4)

	assert.Equal(t, []Entry{
		{Path: "/b", Weight: 1},
		{Path: "/a", Weight: 5},
		{Path: "/c", Weight: 3},
		{Path: "/neg", Weight: 0},
	}, s.Entries())

	s.Delete("/a")
	s.Delete("/missing")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []Entry{
		{Path: "/b", Weight: 1},
		{Path: "/c", Weight: 3},
		{Path: "/neg", Weight: 0},
	}, s.Entries())
}

func TestPurge(t *testing.T) {
	fake := platformtest.New("/keep/one", "/keep/two")
	entries := []Entry{
		{Path: "/keep/one", Weight: 1},
		{Path: "/gone", Weight: 50},
		{Path: "/keep/two", Weight: 2},
		{Path: "/gone/too", Weight: 3},
	}

	got := slices.Collect(Purge(entries, fake.Exists))
	assert.Equal(t, []Entry{
		{Path: "/keep/one", Weight: 1},
		{Path: "/keep/two", Weight: 2},
	}, got)
}

func TestSummarize(t *testing.T) {
	s := FromEntries([]Entry{
		{Path: "/a", Weight: 30},
		{Path: "/b", Weight: 10},
		{Path: "/c", Weight: 20},
	})

	t.Run("with current directory", func(t *testing.T) {
		fake := platformtest.New()
		fake.Wd = "/c"
		st := Summarize(s, fake)

		assert.Equal(t, []string{"/b", "/c", "/a"}, paths(st.Entries))
		assert.Equal(t, 60.0, st.Total)
		assert.Equal(t, 3, st.Count)
		assert.True(t, st.HasCurrent)
		assert.Equal(t, 20.0, st.CurrentWeight)
	})

	t.Run("through symlink", func(t *testing.T) {
		fake := platformtest.New()
		fake.Wd = "/link"
		fake.Links["/link"] = "/a"
		st := Summarize(s, fake)
		assert.True(t, st.HasCurrent)
		assert.Equal(t, "/a", st.CurrentPath)
	})

	t.Run("unresolvable working directory", func(t *testing.T) {
		st := Summarize(s, platformtest.New())
		assert.False(t, st.HasCurrent)
		assert.Equal(t, 3, st.Count)
	})

	t.Run("working directory not stored", func(t *testing.T) {
		fake := platformtest.New()
		fake.Wd = "/elsewhere"
		st := Summarize(s, fake)
		assert.False(t, st.HasCurrent)
	})
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
