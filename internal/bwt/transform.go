package bwt

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Transform returns the Burrows-Wheeler Transform of s. The result is one
// symbol longer than s and always contains exactly one Terminator.
//
// Rotations are compared lazily as suffixes of s+"$", which is equivalent to
// cyclic rotation order because the terminator is unique and minimal. Sorting
// is O(n² log n) in the worst case.
func Transform(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("bwt: %w: sequence is not valid UTF-8", ErrMalformedInput)
	}
	if i := strings.IndexRune(s, Terminator); i >= 0 {
		return "", fmt.Errorf("bwt: %w: sequence contains terminator %q at byte %d", ErrMalformedInput, Terminator, i)
	}

	w := append([]rune(s), Terminator)
	n := len(w)

	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = i
	}

	slices.SortFunc(offsets, func(i, j int) int {
		if c := compareSuffixes(w, i, j); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})

	out := &strings.Builder{}
	out.Grow(len(s) + 1)
	for _, i := range offsets {
		if i == 0 {
			out.WriteRune(w[n-1])
		} else {
			out.WriteRune(w[i-1])
		}
	}
	return out.String(), nil
}

// compareSuffixes compares w[i:] and w[j:] symbol by symbol. Since w ends with
// the only terminator, two distinct suffixes always differ before either runs
// out.
func compareSuffixes(w []rune, i, j int) int {
	for i < len(w) && j < len(w) {
		if c := compareSymbols(w[i], w[j]); c != 0 {
			return c
		}
		i++
		j++
	}
	// Only reached for i == j.
	return cmp.Compare(len(w)-i, len(w)-j)
}
