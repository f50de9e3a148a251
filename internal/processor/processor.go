package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/ipacheck/internal/archive"
	"codeberg.org/snonux/ipacheck/internal/batch"
	"codeberg.org/snonux/ipacheck/internal/cli"
	"codeberg.org/snonux/ipacheck/internal/ipa"
	"codeberg.org/snonux/ipacheck/internal/logger"
	"codeberg.org/snonux/ipacheck/internal/phonetic"
	"codeberg.org/snonux/ipacheck/internal/report"
	"codeberg.org/snonux/ipacheck/internal/store"
)

// Run errors
var (
	ErrInvalidTranscriptions = errors.New("invalid transcriptions found")
	ErrLookupFailed          = errors.New("word lookup failed")
	ErrNoInput               = errors.New("no transcriptions given")
)

// Config holds everything a Processor needs, already resolved from flags,
// config file and environment.
type Config struct {
	Options   ipa.Options
	Decompose bool

	BatchFile string
	Lookup    bool

	Record       bool
	DatabasePath string

	Fetcher phonetic.Lookuper
}

// ConfigFromFlags resolves a Config from the command-line flags and viper.
// The lookup provider is only created in lookup mode.
func ConfigFromFlags(flags *cli.Flags) (Config, error) {
	config := Config{
		Options:      cli.GetOptions(),
		Decompose:    cli.GetDecompose(),
		BatchFile:    flags.BatchFile,
		Lookup:       flags.Lookup,
		Record:       cli.GetRecord(),
		DatabasePath: cli.GetDatabasePath(),
	}
	if !config.Lookup {
		return config, nil
	}

	provider := cli.GetLookupProvider()
	fetcher, err := phonetic.NewProvider(provider, phonetic.Config{
		APIKey:   cli.GetLookupKey(provider),
		Model:    cli.GetLookupModel(),
		Language: cli.GetLookupLanguage(),
	})
	if err != nil {
		return Config{}, err
	}
	config.Fetcher = fetcher

	return config, nil
}

// Processor handles the main validation logic
type Processor struct {
	config Config
	log    *logger.Logger
	in     io.Reader
	out    io.Writer
	store  *store.Store
}

// NewProcessor creates a new processor reading standard input from in and
// writing reports to out
func NewProcessor(config Config, log *logger.Logger, in io.Reader, out io.Writer) *Processor {
	return &Processor{
		config: config,
		log:    log,
		in:     in,
		out:    out,
	}
}

// Close releases the history database if it was opened
func (p *Processor) Close() error {
	if p.store == nil {
		return nil
	}
	err := p.store.Close()
	p.store = nil
	return err
}

// Run validates the transcriptions selected by the configuration. Words are
// looked up first when lookup mode is on; otherwise args are transcriptions.
// Without args or a batch file, transcriptions are read from standard input.
func (p *Processor) Run(ctx context.Context, args []string) error {
	// Reject inconsistent options before touching any input
	if err := p.config.Options.Validate(); err != nil {
		return err
	}

	switch {
	case p.config.Lookup:
		return p.LookupWords(ctx, args)
	case p.config.BatchFile != "":
		return p.ProcessBatch()
	case len(args) > 0:
		return p.ProcessTranscriptions(args)
	default:
		return p.ProcessInput()
	}
}

// ProcessTranscriptions validates transcriptions given on the command line
func (p *Processor) ProcessTranscriptions(transcriptions []string) error {
	rows := make([]report.Row, 0, len(transcriptions))

	for _, transcription := range transcriptions {
		row, err := p.check("", transcription, store.SourceArgument)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return p.finish(rows)
}

// ProcessBatch validates every transcription of the configured batch file
func (p *Processor) ProcessBatch() error {
	entries, err := batch.ReadBatchFile(p.config.BatchFile)
	if err != nil {
		return err
	}

	p.log.Info("Processing batch file", "file", p.config.BatchFile, "entries", len(entries))
	return p.processEntries(entries, store.SourceBatch)
}

// ProcessInput validates transcriptions read from standard input, using the
// batch file format
func (p *Processor) ProcessInput() error {
	content, err := io.ReadAll(p.in)
	if err != nil {
		return fmt.Errorf("failed to read standard input: %w", err)
	}

	entries := batch.ParseBatch(string(content))
	if len(entries) == 0 {
		return ErrNoInput
	}

	return p.processEntries(entries, store.SourceBatch)
}

func (p *Processor) processEntries(entries []batch.Entry, source string) error {
	rows := make([]report.Row, 0, len(entries))

	for _, entry := range entries {
		p.log.Debug("Validating", "line", entry.Line, "transcription", entry.Transcription)

		row, err := p.check(entry.Label, entry.Transcription, source)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return p.finish(rows)
}

// LookupWords fetches the IPA transcription of every word and validates it.
// Failed lookups are logged and skipped.
func (p *Processor) LookupWords(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return ErrNoInput
	}

	rows := make([]report.Row, 0, len(words))
	failed := 0

	for i, word := range words {
		p.log.Info("Looking up word", "word", word, "progress", fmt.Sprintf("%d/%d", i+1, len(words)))

		transcription, err := p.config.Fetcher.FetchIPA(ctx, word)
		if errors.Is(err, phonetic.ErrProviderUnavailable) {
			p.log.Error("Lookup provider unavailable, skipping remaining words", "remaining", len(words)-i, "error", err)
			failed += len(words) - i
			break
		}
		if err != nil {
			p.log.Warn("Lookup failed", "word", word, "error", err)
			failed++
			continue
		}

		row, err := p.check(word, transcription, store.SourceLookup)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	var errs []error
	if len(rows) > 0 {
		if err := p.finish(rows); err != nil {
			errs = append(errs, err)
		}
	}

	if failed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d words", ErrLookupFailed, failed, len(words)))
	}

	return errors.Join(errs...)
}

// ShowHistory prints the last limit recorded results
func (p *Processor) ShowHistory(limit int) error {
	s, err := p.openStore()
	if err != nil {
		return err
	}

	records, err := s.Recent(limit)
	if err != nil {
		return err
	}

	return report.WriteHistory(p.out, records)
}

// ArchiveHistory moves the history database into the archive directory
func (p *Processor) ArchiveHistory() error {
	// The database must not be open while it is moved
	if err := p.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	archivedPath, err := archive.ArchiveDatabase(p.config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to archive history: %w", err)
	}

	fmt.Fprintf(p.out, "History archived to: %s\n", archivedPath)
	return nil
}

// check validates one transcription and records it when recording is on
func (p *Processor) check(label, transcription, source string) (report.Row, error) {
	input := transcription
	if p.config.Decompose {
		input = ipa.Decompose(transcription)
	}

	result, err := ipa.Process(input, p.config.Options)
	if err != nil {
		return report.Row{}, err
	}

	// Report what the user gave, not the decomposed form
	result.Original = transcription

	if !result.Valid {
		p.log.Debug("Invalid transcription", "transcription", transcription, "normalized", result.Normalized)
	}

	if p.config.Record {
		p.record(label, result, source)
	}

	return report.Row{Label: label, Result: result}, nil
}

// record stores a result. Failures are logged, never fatal.
func (p *Processor) record(label string, result ipa.Result, source string) {
	s, err := p.openStore()
	if err != nil {
		p.log.Warn("Failed to open history database", "path", p.config.DatabasePath, "error", err)
		return
	}

	rec := store.Record{
		Label:   label,
		Result:  result,
		Options: p.config.Options,
		Source:  source,
	}
	if _, err := s.Save(rec); err != nil {
		p.log.Warn("Failed to record result", "transcription", result.Original, "error", err)
	}
}

func (p *Processor) openStore() (*store.Store, error) {
	if p.store != nil {
		return p.store, nil
	}

	s, err := store.Open(p.config.DatabasePath)
	if err != nil {
		return nil, err
	}

	p.log.Debug("Opened history database", "path", s.Path())
	p.store = s
	return s, nil
}

// finish writes the report and signals invalid transcriptions
func (p *Processor) finish(rows []report.Row) error {
	if err := report.WriteResults(p.out, rows); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, row := range rows {
		if !row.Result.Valid {
			return ErrInvalidTranscriptions
		}
	}

	return nil
}

// Stdin returns standard input, or an empty reader when it is a terminal so
// that running without arguments does not block
func Stdin() io.Reader {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return strings.NewReader("")
	}
	return os.Stdin
}
