package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes free text for matching: lowercase, accents removed,
// whitespace collapsed. "  Bogotá " and "bogota" fold to the same value.
func Fold(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	return strings.Join(strings.Fields(s), " ")
}

// ContainsFold reports whether substr occurs in s after folding both.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// ContainsAnyFold reports whether any of the candidates occurs in s.
func ContainsAnyFold(s string, candidates []string) bool {
	folded := Fold(s)
	for _, c := range candidates {
		if strings.Contains(folded, Fold(c)) {
			return true
		}
	}
	return false
}
