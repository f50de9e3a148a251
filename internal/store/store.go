package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/ipacheck/internal/ipa"
)

// Sources a record can come from
const (
	SourceArgument = "argument"
	SourceBatch    = "batch"
	SourceLookup   = "lookup"
)

// Record is one stored validation result
type Record struct {
	ID        int64
	Label     string
	Result    ipa.Result
	Options   ipa.Options
	Source    string
	CreatedAt time.Time
}

// Store is a SQLite backed result history
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the history database at path, creating it and its parent
// directory when needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id integer PRIMARY KEY AUTOINCREMENT,
			label text NOT NULL DEFAULT '',
			original text NOT NULL,
			normalized text NOT NULL,
			valid integer NOT NULL,
			strip integer NOT NULL,
			normalize integer NOT NULL,
			speech_synthesis integer NOT NULL,
			source text NOT NULL,
			created_at integer NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_results_created ON results (created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Save inserts a record and returns its ID. A zero CreatedAt is set to now.
func (s *Store) Save(rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(`INSERT INTO results
		(label, original, normalized, valid, strip, normalize, speech_synthesis, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Label,
		rec.Result.Original,
		rec.Result.Normalized,
		rec.Result.Valid,
		rec.Options.Strip,
		rec.Options.Normalize,
		rec.Options.SpeechSynthesis,
		rec.Source,
		rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert result: %w", err)
	}

	return res.LastInsertId()
}

// Recent returns up to limit records, newest first
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(`SELECT
		id, label, original, normalized, valid, strip, normalize, speech_synthesis, source, created_at
		FROM results ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt int64

		err := rows.Scan(
			&rec.ID,
			&rec.Label,
			&rec.Result.Original,
			&rec.Result.Normalized,
			&rec.Result.Valid,
			&rec.Options.Strip,
			&rec.Options.Normalize,
			&rec.Options.SpeechSynthesis,
			&rec.Source,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		rec.CreatedAt = time.UnixMilli(createdAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}
