// Package report renders validation results as aligned terminal tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"codeberg.org/snonux/ipacheck/internal/ipa"
	"codeberg.org/snonux/ipacheck/internal/store"
)

const columnGap = "  "

// Row is one line of a result report
type Row struct {
	Label  string
	Result ipa.Result
}

// Status returns the textual validity of a result
func Status(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// FormatRunes describes runes as "x U+0078", comma separated
func FormatRunes(runes []rune) string {
	parts := make([]string, 0, len(runes))
	for _, r := range runes {
		parts = append(parts, fmt.Sprintf("%s U+%04X", printable(r), r))
	}
	return strings.Join(parts, ", ")
}

// printable quotes runes that would be invisible or ambiguous on a terminal
func printable(r rune) string {
	if r == ' ' || r == '\t' || runewidth.RuneWidth(r) == 0 {
		return fmt.Sprintf("%q", r)
	}
	return string(r)
}

// WriteResults writes a table of results followed by a summary line
func WriteResults(w io.Writer, rows []Row) error {
	withLabels := false
	for _, row := range rows {
		if row.Label != "" {
			withLabels = true
			break
		}
	}

	header := []string{"STATUS"}
	if withLabels {
		header = append(header, "LABEL")
	}
	header = append(header, "ORIGINAL", "NORMALIZED", "REJECTED")

	table := [][]string{header}
	valid := 0

	for _, row := range rows {
		cells := []string{Status(row.Result.Valid)}
		if withLabels {
			cells = append(cells, row.Label)
		}

		rejected := ""
		if row.Result.Valid {
			valid++
		} else {
			rejected = FormatRunes(ipa.InvalidRunes(row.Result.Normalized))
		}

		cells = append(cells, row.Result.Original, row.Result.Normalized, rejected)
		table = append(table, cells)
	}

	if err := writeTable(w, table); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d transcriptions: %d valid, %d invalid\n", len(rows), valid, len(rows)-valid)
	return err
}

// WriteHistory writes stored records, newest first
func WriteHistory(w io.Writer, records []store.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results recorded yet")
		return err
	}

	table := [][]string{{"TIME", "SOURCE", "STATUS", "LABEL", "ORIGINAL", "NORMALIZED", "OPTIONS"}}

	for _, rec := range records {
		table = append(table, []string{
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Source,
			Status(rec.Result.Valid),
			rec.Label,
			rec.Result.Original,
			rec.Result.Normalized,
			FormatOptions(rec.Options),
		})
	}

	return writeTable(w, table)
}

// FormatOptions lists the enabled options, or "-" when none is
func FormatOptions(opts ipa.Options) string {
	var enabled []string
	if opts.Strip {
		enabled = append(enabled, "strip")
	}
	if opts.Normalize {
		enabled = append(enabled, "normalize")
	}
	if opts.SpeechSynthesis {
		enabled = append(enabled, "speech-synthesis")
	}

	if len(enabled) == 0 {
		return "-"
	}
	return strings.Join(enabled, ",")
}

// writeTable pads every column to its widest cell. Widths are display
// widths, so combining diacritics do not push columns apart.
func writeTable(w io.Writer, table [][]string) error {
	if len(table) == 0 {
		return nil
	}

	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	for _, row := range table {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString(columnGap)
			}
			if i == len(row)-1 {
				line.WriteString(cell)
			} else {
				line.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}

		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}

	return nil
}
