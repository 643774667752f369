package search

import (
	"iter"

	"github.com/montrey/jump/history"
)

// Take collects at most n entries from seq.
func Take(n int, seq iter.Seq[history.Entry]) []history.Entry {
	if n <= 0 {
		return nil
	}
	out := make([]history.Entry, 0, n)
	for e := range seq {
		out = append(out, e)
		if len(out) == n {
			break
		}
	}
	return out
}

// First returns the first entry of seq.
func First(seq iter.Seq[history.Entry]) (history.Entry, bool) {
	for e := range seq {
		return e, true
	}
	return history.Entry{}, false
}

// Nth returns the i-th (1-based) entry of seq.
func Nth(seq iter.Seq[history.Entry], i int) (history.Entry, bool) {
	if i <= 0 {
		return history.Entry{}, false
	}
	n := 0
	for e := range seq {
		n++
		if n == i {
			return e, true
		}
	}
	return history.Entry{}, false
}

// Distinct drops entries whose path was already yielded.
func Distinct(seq iter.Seq[history.Entry]) iter.Seq[history.Entry] {
	return func(yield func(history.Entry) bool) {
		seen := make(map[string]bool)
		for e := range seq {
			if seen[e.Path] {
				continue
			}
			seen[e.Path] = true
			if !yield(e) {
				return
			}
		}
	}
}

func chain(seqs ...iter.Seq[history.Entry]) iter.Seq[history.Entry] {
	return func(yield func(history.Entry) bool) {
		for _, seq := range seqs {
			for e := range seq {
				if !yield(e) {
					return
				}
			}
		}
	}
}

func filter(seq iter.Seq[history.Entry], keep func(history.Entry) bool) iter.Seq[history.Entry] {
	return func(yield func(history.Entry) bool) {
		for e := range seq {
			if !keep(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
