package ipa

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

var (
	delimiterPattern = regexp.MustCompile(`[/\[\]]`)
	diacriticPattern = regexp.MustCompile(`[\x{0300}-\x{036F}]`)
)

// StripDelimiters removes every '/', '[' and ']' from text.
func StripDelimiters(text string) string {
	return delimiterPattern.ReplaceAllString(text, "")
}

// RemoveDiacritics removes all combining diacritical marks (U+0300-U+036F)
// from text. When stripFirst is set, delimiters are removed beforehand.
func RemoveDiacritics(text string, stripFirst bool) string {
	if stripFirst {
		text = StripDelimiters(text)
	}

	return diacriticPattern.ReplaceAllString(text, "")
}

// Decompose returns the canonical decomposition (NFD) of text, splitting
// precomposed letters such as "ã" into a base letter and combining marks.
func Decompose(text string) string {
	return norm.NFD.String(text)
}
