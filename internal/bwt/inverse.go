package bwt

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"
)

// Inverse reconstructs the sequence whose transform is s. It fails with
// ErrMalformedInput, without producing any output, when s has no terminator,
// more than one terminator, or is not the transform of any sequence.
func Inverse(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("bwt: %w: transform is not valid UTF-8", ErrMalformedInput)
	}

	last := []rune(s)
	n := len(last)

	term := -1
	for i, r := range last {
		if r != Terminator {
			continue
		}
		if term >= 0 {
			return "", fmt.Errorf("bwt: %w: terminator %q appears more than once (positions %d and %d)", ErrMalformedInput, Terminator, term, i)
		}
		term = i
	}
	if term < 0 {
		return "", fmt.Errorf("bwt: %w: transform must contain the terminator %q", ErrMalformedInput, Terminator)
	}

	// first[k] is the position in last of the k-th smallest symbol.
	first := make([]int, n)
	for i := range first {
		first[i] = i
	}
	slices.SortStableFunc(first, func(i, j int) int {
		if c := compareSymbols(last[i], last[j]); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})

	// The row ending in the terminator is the rotation starting at offset 0.
	// Each step through first moves one symbol forward in the sequence.
	out := make([]rune, 0, n-1)
	cur := term
	for range n - 1 {
		cur = first[cur]
		if cur == term {
			return "", fmt.Errorf("bwt: %w: transform does not describe a single sequence", ErrMalformedInput)
		}
		out = append(out, last[cur])
	}
	if first[cur] != term {
		return "", fmt.Errorf("bwt: %w: transform does not describe a single sequence", ErrMalformedInput)
	}

	return string(out), nil
}
