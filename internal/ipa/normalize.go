package ipa

import "strings"

type substitution struct {
	from string
	to   string
}

// Order matters: each entry is applied to the output of the previous one.
var genericSubstitutions = []substitution{
	{"'", "ˈ"},
	{":", "ː"},
	{",", "ˌ"},
}

var speechSynthesisSubstitutions = []substitution{
	{"(", ""},
	{")", ""},
	{"'", "ˈ"},
	{":", "ː"},
	{",", "ˌ"},
	{"ⁿ", "n"}, // U+207F
	{"ʰ", "h"}, // U+02B0
	{"ɫ", "l"}, // U+026B
	{"ˡ", "l"}, // U+02E1
	{"ʲ", "j"}, // U+02B2
}

// Normalize rewrites shorthand notation into canonical IPA symbols.
//
// In generic mode only the stress and length shorthand (' : ,) is replaced.
// With speechSynthesis set, optional-segment parentheses are dropped,
// superscript modifiers are flattened to plain letters and all combining
// diacritics are removed, leaving a symbol set speech engines accept.
func Normalize(text string, stripFirst, speechSynthesis bool) string {
	if stripFirst {
		text = StripDelimiters(text)
	}

	if !speechSynthesis {
		return substitute(text, genericSubstitutions)
	}

	text = substitute(text, speechSynthesisSubstitutions)

	// Delimiters are already gone at this point
	return RemoveDiacritics(text, false)
}

func substitute(text string, table []substitution) string {
	for _, s := range table {
		text = strings.ReplaceAll(text, s.from, s.to)
	}
	return text
}
