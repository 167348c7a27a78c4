// Package textmatch implements the case-insensitive search used by list
// filters across the API.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold normalizes a string for case-insensitive comparison. A Caser holds
// state, so each call builds its own.
func Fold(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// Equal compares two strings after folding.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Contains reports whether needle occurs in any haystack, ignoring case.
// An empty needle matches.
func Contains(needle string, haystacks ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(Fold(h), n) {
			return true
		}
	}
	return false
}
