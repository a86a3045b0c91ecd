// Package normalize folds free text into a comparable token: diacritics
// stripped, lowercased, and trimmed. Every header and status matcher goes
// through Text so they all agree on what "equal" means.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text returns s decomposed (NFD) with combining marks removed, lowercased
// and trimmed. It never fails; input that cannot be transformed is only
// lowercased and trimmed.
func Text(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Lower(language.Und))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.TrimSpace(out)
}

// ContainsAny reports whether the normalized text contains any of tokens.
// Tokens are expected to be normalized already.
func ContainsAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(text, tok) {
			return true
		}
	}
	return false
}
