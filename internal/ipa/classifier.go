package ipa

import "regexp"

// inventory is the body of the character class every transcription
// character has to belong to.
const inventory = `().a-z|` +
	// æ ç ð ø ħ ŋ œ
	`\x{00E6}\x{00E7}\x{00F0}\x{00F8}\x{0127}\x{014B}\x{0153}` +
	// clicks ǀ ǁ ǂ ǃ
	`\x{01C0}-\x{01C3}` +
	// IPA extensions block
	`\x{0250}-\x{027B}\x{027D}\x{027E}\x{0280}-\x{0284}\x{0288}-\x{0292}` +
	`\x{0294}\x{0295}\x{0298}\x{0299}\x{029B}-\x{029D}\x{029F}\x{02A1}\x{02A2}` +
	// modifier letters: ʰ ʲ ʷ ʼ ˀ ˈ ˌ ː ˑ ˞ ˠ ˡ ˤ and the tone letters
	`\x{02B0}\x{02B2}\x{02B7}\x{02BC}\x{02C0}\x{02C8}\x{02CC}\x{02D0}\x{02D1}` +
	`\x{02DE}\x{02E0}\x{02E1}\x{02E4}-\x{02E9}` +
	// combining diacritics
	`\x{0300}-\x{0304}\x{0306}\x{0308}\x{030A}-\x{030C}\x{030F}` +
	`\x{0318}-\x{031A}\x{031C}-\x{0320}\x{0324}\x{0325}\x{0329}\x{032A}` +
	`\x{032C}\x{032F}\x{0330}\x{0334}\x{0339}-\x{033D}\x{035C}\x{0361}` +
	// β θ χ
	`\x{03B2}\x{03B8}\x{03C7}` +
	// combining tone contours
	`\x{1DC4}\x{1DC5}\x{1DC8}` +
	// ‖ ‿ ⁿ ⱱ
	`\x{2016}\x{203F}\x{207F}\x{2C71}`

var (
	ipaPattern  = regexp.MustCompile(`(?i)^[` + inventory + `]+$`)
	runePattern = regexp.MustCompile(`(?i)^[` + inventory + `]$`)
)

// IsValid reports whether text consists solely of characters from the IPA
// inventory. The empty string is not a valid transcription.
func IsValid(text string) bool {
	return ipaPattern.MatchString(text)
}

// InvalidRunes returns the distinct runes of text that are not part of the
// IPA inventory, in order of first appearance.
func InvalidRunes(text string) []rune {
	var invalid []rune
	seen := make(map[rune]bool)

	for _, r := range text {
		if seen[r] {
			continue
		}
		seen[r] = true

		if !runePattern.MatchString(string(r)) {
			invalid = append(invalid, r)
		}
	}

	return invalid
}
