// Package ipa validates and normalizes International Phonetic Alphabet
// transcriptions. It strips transcription delimiters, rewrites ASCII
// shorthand into IPA symbols and checks the result against a fixed IPA
// character inventory.
package ipa
