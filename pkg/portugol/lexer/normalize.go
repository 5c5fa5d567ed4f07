package lexer

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes each character (NFD) and drops the combining marks,
// so "ç" becomes "c" and "ã" becomes "a".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares raw source text for scanning: accents are stripped
// first, then everything is lowercased with the locale-independent Unicode
// mapping. The scanner only ever sees normalized text, so the pattern table
// and the reserved word set are written in this form too.
//
// Normalize is total over valid input and idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		// runes.Remove cannot fail and norm accepts arbitrary bytes;
		// fall back to the input untouched rather than dropping text.
		stripped = s
	}
	// cases.Caser is stateful, so build one per call.
	return cases.Lower(language.Und).String(stripped)
}
