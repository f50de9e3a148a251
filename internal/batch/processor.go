package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one transcription read from a batch file
type Entry struct {
	// Line is the 1-based line number in the batch file
	Line          int
	Label         string
	Transcription string
}

// ReadBatchFile reads transcriptions from a file, one per line.
// Supports formats:
// - Transcription only: "/ˈkæt/"
// - With label: "cat = /ˈkæt/"
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return ParseBatch(string(content)), nil
}

// ParseBatch parses batch file content
func ParseBatch(content string) []Entry {
	var entries []Entry

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Line: i + 1, Transcription: line}

		// '=' is not an IPA symbol, so it can only separate a label
		if label, transcription, ok := strings.Cut(line, "="); ok {
			entry.Label = strings.TrimSpace(label)
			entry.Transcription = strings.TrimSpace(transcription)
		}

		if entry.Transcription == "" {
			// Ignore lines with an empty transcription part
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}
