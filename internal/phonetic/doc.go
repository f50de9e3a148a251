// Package phonetic looks up IPA transcriptions for words using OpenAI's GPT
// models, so dictionary words can be validated like hand-written
// transcriptions.
package phonetic
