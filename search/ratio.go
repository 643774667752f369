package search

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio measures the similarity of a and b as 2*M/T, where M counts the runes
// in matching blocks and T is the rune length of both strings. Two empty
// strings are identical.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
