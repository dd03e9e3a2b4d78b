// Package wordlist provides word list loading and token cleaning.
package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinWordLength is the shortest token Clean accepts.
const MinWordLength = 3

var lower = cases.Lower(language.Und)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Clean normalizes a raw token and reports whether it is a usable word.
// Accepted words are lowercase, trimmed, purely alphabetic and at least
// MinWordLength runes long.
func Clean(raw string) (string, bool) {
	word := strings.TrimSpace(lower.String(norm.NFC.String(raw)))
	if utf8.RuneCountInString(word) < MinWordLength {
		return "", false
	}
	if !IsAlpha(word) {
		return "", false
	}
	return word, true
}

// IsAlpha reports whether word is non-empty and made only of letters.
func IsAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Lower applies full Unicode lowercasing.
func Lower(word string) string {
	return lower.String(word)
}

// LengthFilter keeps words whose rune length lies in [min, max]. A max of
// zero disables the upper bound.
func LengthFilter(min, max int) FilterFunc {
	return func(word string) bool {
		n := utf8.RuneCountInString(word)
		if n < min {
			return false
		}
		return max <= 0 || n <= max
	}
}

// ExactLength keeps words with exactly n runes.
func ExactLength(n int) FilterFunc {
	return func(word string) bool {
		return utf8.RuneCountInString(word) == n
	}
}
