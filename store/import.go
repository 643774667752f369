package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/montrey/jump/history"
)

// ErrBadImportLine marks a line of an autojump data file that could not be read.
var ErrBadImportLine = errors.New("bad import line")

// ParseAutojump reads autojump's text data file: one "weight<TAB>path" per line.
// Good lines are returned even when some lines fail; the failures are joined
// into the returned error, each wrapping ErrBadImportLine.
func ParseAutojump(r io.Reader) ([]history.Entry, error) {
	var (
		entries []history.Entry
		errs    []error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		weight, path, ok := strings.Cut(text, "\t")
		if !ok || path == "" {
			errs = append(errs, fmt.Errorf("%w %d: missing tab-separated path", ErrBadImportLine, line))
			continue
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			errs = append(errs, fmt.Errorf("%w %d: invalid weight %q", ErrBadImportLine, line, weight))
			continue
		}
		entries = append(entries, history.Entry{Path: path, Weight: w})
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read import data: %w", err)
	}
	return entries, errors.Join(errs...)
}
