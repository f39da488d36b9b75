// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes the artifacts of an extraction run: the candidate
// list, the full page text, the console summary, and the optional report.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/reqextract/pkg/types"
)

// PageBreak separates consecutive pages in the full-text file.
const PageBreak = "\n\n--- PAGE BREAK ---\n\n"

// Paths holds the absolute locations of the two text outputs.
type Paths struct {
	Candidates string
	FullText   string
}

// ResolvePaths joins the configured file names onto the output directory
// and makes them absolute.
func ResolvePaths(cfg types.OutputConfig) (Paths, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	cand, err := filepath.Abs(filepath.Join(dir, cfg.CandidatesFile))
	if err != nil {
		return Paths{}, fmt.Errorf("resolving candidates path: %w", err)
	}
	full, err := filepath.Abs(filepath.Join(dir, cfg.FullTextFile))
	if err != nil {
		return Paths{}, fmt.Errorf("resolving full-text path: %w", err)
	}
	return Paths{Candidates: cand, FullText: full}, nil
}

// CandidatesText joins candidates with single newlines and no trailing newline.
func CandidatesText(candidates []string) string {
	return strings.Join(candidates, "\n")
}

// FullText joins page texts with the page break marker.
func FullText(pages []string) string {
	return strings.Join(pages, PageBreak)
}

// Write writes the candidate file and then the full-text file, replacing
// any existing content. Parent directories are created as needed.
func Write(p Paths, result *types.ExtractionResult) error {
	if err := writeFile(p.Candidates, CandidatesText(result.CandidateTexts())); err != nil {
		return err
	}
	return writeFile(p.FullText, FullText(result.Pages))
}

// WriteSummary prints the four-line run summary.
func WriteSummary(w io.Writer, p Paths, result *types.ExtractionResult) error {
	_, err := fmt.Fprintf(w, "pages=%d\ncandidate_lines=%d\nwrote=%s\nwrote=%s\n",
		result.PageCount, len(result.Candidates), p.Candidates, p.FullText)
	return err
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
