// Package store keeps a SQLite history of transcription validation results
// so earlier runs can be listed again.
package store
