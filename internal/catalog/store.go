// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps the candidates of past runs in a SQLite database
// so they can be searched across documents. Documents are keyed by the
// SHA-256 of the PDF, so re-running a document replaces its candidates.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/reqextract/pkg/types"
)

const (
	dbFile = "catalog.db"
	// timeLayout has fixed-width fractional seconds so stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates dir/catalog.db and its schema.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			candidate_count INTEGER NOT NULL,
			run_id TEXT NOT NULL,
			backend TEXT,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			page INTEGER NOT NULL,
			line INTEGER NOT NULL,
			UNIQUE(document_id, text)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_document ON candidates(document_id, position)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestStatus tells whether a document was new or replaced an earlier run.
type IngestStatus string

const (
	StatusIndexed IngestStatus = "indexed"
	StatusUpdated IngestStatus = "updated"
)

// Ingest records the candidates of one run. An earlier run of the same
// document (same SHA-256) is replaced.
func (s *Store) Ingest(ctx context.Context, report types.RunReport) (IngestStatus, error) {
	if report.SourceSHA256 == "" {
		return "", fmt.Errorf("run %s has no source checksum", report.RunID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM documents WHERE id = ?`, report.SourceSHA256,
	).Scan(&existing); err != nil {
		return "", fmt.Errorf("checking document: %w", err)
	}

	status := StatusIndexed
	if existing > 0 {
		status = StatusUpdated
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM candidates WHERE document_id = ?`, report.SourceSHA256,
		); err != nil {
			return "", fmt.Errorf("deleting old candidates: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source, page_count, candidate_count, run_id, backend, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source=excluded.source, page_count=excluded.page_count,
			candidate_count=excluded.candidate_count, run_id=excluded.run_id,
			backend=excluded.backend, extracted_at=excluded.extracted_at`,
		report.SourceSHA256, report.Source, report.PageCount, len(report.Candidates),
		report.RunID, string(report.Backend), report.ExtractedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO candidates (document_id, position, text, page, line) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range report.Candidates {
		if _, err := stmt.ExecContext(ctx, report.SourceSHA256, i+1, c.Text, c.Page, c.Line); err != nil {
			return "", fmt.Errorf("inserting candidate %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return status, nil
}
