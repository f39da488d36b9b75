// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one extraction end to end: check the input, read
// every page, write the candidate and full-text files, print the summary,
// then write the optional report and catalog entry.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/reqextract/internal/catalog"
	"github.com/pdiddy/reqextract/internal/output"
	"github.com/pdiddy/reqextract/internal/pdftext"
	"github.com/pdiddy/reqextract/internal/requirements"
	"github.com/pdiddy/reqextract/pkg/types"
)

// ErrPDFNotFound is returned when the input path does not exist.
var ErrPDFNotFound = errors.New("PDF not found")

// ErrNoInput is returned when no input path was given.
var ErrNoInput = errors.New("no input PDF: pass a path or set extract.input")

// Ingester records a finished run. *catalog.Store implements it.
type Ingester interface {
	Ingest(ctx context.Context, report types.RunReport) (catalog.IngestStatus, error)
}

// Options carries the collaborators of a run.
type Options struct {
	// Stdout receives the four-line summary.
	Stdout io.Writer

	// Log receives diagnostics. Nil discards them.
	Log *slog.Logger

	// Catalog, when set, receives the run after the outputs are written.
	Catalog Ingester

	// Now overrides the clock in tests.
	Now func() time.Time
}

// CheckInput fails with ErrPDFNotFound when path does not exist.
func CheckInput(path string) error {
	if path == "" {
		return ErrNoInput
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPDFNotFound, path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

// Run extracts candidates from cfg.Extract.Input using opener. Nothing is
// written unless every page was read. The returned report describes the run.
func Run(ctx context.Context, opener pdftext.Opener, cfg types.Config, opts Options) (*types.RunReport, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	input := cfg.Extract.Input
	if err := CheckInput(input); err != nil {
		return nil, err
	}

	extractor, err := requirements.NewExtractor(cfg.Match, cfg.Extract, log)
	if err != nil {
		return nil, err
	}
	paths, err := output.ResolvePaths(cfg.Output)
	if err != nil {
		return nil, err
	}

	log.Debug("opening document", "path", input, "backend", cfg.Extract.Backend)
	doc, err := opener.Open(input)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	result, err := extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", input, err)
	}

	if err := output.Write(paths, result); err != nil {
		return nil, err
	}
	if err := output.WriteSummary(stdout, paths, result); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	report := &types.RunReport{
		RunID:          uuid.NewString(),
		Source:         absPath(input),
		Backend:        cfg.Extract.Backend,
		ExtractedAt:    now().UTC(),
		PageCount:      result.PageCount,
		CandidateCount: len(result.Candidates),
		CandidatesFile: paths.Candidates,
		FullTextFile:   paths.FullText,
		SkippedPages:   result.SkippedPages,
		Candidates:     result.Candidates,
	}

	if cfg.Output.Report == "" && opts.Catalog == nil {
		return report, nil
	}

	sum, err := fileSHA256(input)
	if err != nil {
		return report, err
	}
	report.SourceSHA256 = sum

	if cfg.Output.Report != "" {
		if err := output.WriteReport(cfg.Output.Report, *report); err != nil {
			return report, fmt.Errorf("writing report: %w", err)
		}
		log.Info("report written", "path", cfg.Output.Report, "run_id", report.RunID)
	}

	if opts.Catalog != nil {
		status, err := opts.Catalog.Ingest(ctx, *report)
		if err != nil {
			return report, fmt.Errorf("recording run in catalog: %w", err)
		}
		log.Info("catalog updated", "status", status, "document", sum[:12], "candidates", len(report.Candidates))
	}

	return report, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
