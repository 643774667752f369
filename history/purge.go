package history

import "iter"

// Purge yields the entries whose path still exists, in their original order.
func Purge(entries []Entry, exists func(string) bool) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range entries {
			if !exists(e.Path) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
