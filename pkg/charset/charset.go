// Package charset provides Unicode scalar-value helpers used throughout
// the trie and search packages, so that positions into a word always mean
// "the n-th code point" rather than "the n-th byte".
package charset

import (
	"errors"
	"unicode/utf8"
)

// ErrIndexRange is returned by ScalarOffset when i is negative or past the
// scalar count of s.
var ErrIndexRange = errors.New("charset: scalar index out of range")

// ScalarCount returns the number of Unicode scalar values (runes) in s.
func ScalarCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ScalarOffset returns the byte offset of the i-th Unicode scalar value in
// s. i == ScalarCount(s) is valid and returns len(s), so callers can use it
// as a half-open range bound.
func ScalarOffset(s string, i int) (int, error) {
	if i < 0 {
		return 0, ErrIndexRange
	}
	if i == 0 {
		return 0, nil
	}
	n := 0
	for offset := range s {
		if n == i {
			return offset, nil
		}
		n++
	}
	if n == i {
		return len(s), nil
	}
	return 0, ErrIndexRange
}

// FirstRune returns the first Unicode scalar value of s and its width in
// bytes. If s is empty it returns utf8.RuneError and a width of 0, so
// callers are expected to check length first.
func FirstRune(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size
}

// Runes returns s decoded into a slice of Unicode scalar values.
func Runes(s string) []rune {
	return []rune(s)
}
