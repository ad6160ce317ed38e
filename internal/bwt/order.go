// Package bwt implements the Burrows-Wheeler Transform of a symbol sequence
// and its exact inverse.
//
// Symbols are ordered by case-folded code point, with the terminator '$'
// placed below every other symbol. Case only affects rendering: "acgt" and
// "ACGT" sort identically but each transforms and inverts to its own casing.
package bwt

import (
	"errors"
	"unicode"
)

// Terminator is appended by Transform and consumed by Inverse.
const Terminator = '$'

// ErrMalformedInput is wrapped by every error returned from this package.
var ErrMalformedInput = errors.New("malformed input")

// key maps a symbol to its sort key. The terminator gets -1, which is below
// any code point, so it sorts first regardless of the alphabet in use.
func key(r rune) rune {
	if r == Terminator {
		return -1
	}
	return unicode.ToLower(r)
}

// compareSymbols orders two symbols by key only; callers break ties by
// position.
func compareSymbols(a, b rune) int {
	ka, kb := key(a), key(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return 0
}
