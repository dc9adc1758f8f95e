package transcript

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize turns recognizer text into a comparable token.
// Whitespace is trimmed, the text is lower-cased, and every rune that is not
// a word character (letter, number, underscore) or whitespace is dropped.
// Combining marks are not word characters, so a decomposed "cafe\u0301"
// becomes "cafe" while a precomposed "café" is kept.
func Normalize(text string) string {
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(text))
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lowered)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
