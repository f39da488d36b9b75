// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/reqextract/pkg/types"
)

// QueryOptions holds parameters for catalog searches.
type QueryOptions struct {
	// Query is matched as a substring of the candidate text, ignoring
	// ASCII case.
	Query string

	// DocumentID restricts results to one document (SHA-256 or a prefix of it).
	DocumentID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == "" && q.DocumentID == ""
}

// Hit is a stored candidate with the document it came from.
type Hit struct {
	types.Candidate
	DocumentID string `json:"document_id" yaml:"document_id"`
	Source     string `json:"source" yaml:"source"`
	Position   int    `json:"position" yaml:"position"`
}

// Document is a catalog entry for one ingested PDF.
type Document struct {
	ID             string    `json:"id" yaml:"id"`
	Source         string    `json:"source" yaml:"source"`
	PageCount      int       `json:"page_count" yaml:"page_count"`
	CandidateCount int       `json:"candidate_count" yaml:"candidate_count"`
	RunID          string    `json:"run_id" yaml:"run_id"`
	Backend        string    `json:"backend" yaml:"backend"`
	ExtractedAt    time.Time `json:"extracted_at" yaml:"extracted_at"`
}

// Search returns candidates matching opts, ordered by document source
// then position within the document.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Hit, error) {
	if opts.IsEmpty() {
		return nil, fmt.Errorf("query or document filter required")
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT c.document_id, d.source, c.position, c.text, c.page, c.line
		FROM candidates c
		JOIN documents d ON d.id = c.document_id
		WHERE 1=1`)

	if q := strings.TrimSpace(opts.Query); q != "" {
		qb.WriteString(` AND c.text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q)+"%")
	}
	if opts.DocumentID != "" {
		qb.WriteString(` AND c.document_id LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(opts.DocumentID)+"%")
	}
	qb.WriteString(` ORDER BY d.source, c.document_id, c.position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.DocumentID, &h.Source, &h.Position, &h.Text, &h.Page, &h.Line); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Documents lists every ingested document, most recent first.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, page_count, candidate_count, run_id, backend, extracted_at
		FROM documents ORDER BY extracted_at DESC, source`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			d       Document
			backend *string
			at      string
		)
		if err := rows.Scan(&d.ID, &d.Source, &d.PageCount, &d.CandidateCount, &d.RunID, &backend, &at); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if backend != nil {
			d.Backend = *backend
		}
		if t, err := time.Parse(timeLayout, at); err == nil {
			d.ExtractedAt = t
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// escapeLike escapes the LIKE wildcards in s using backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
