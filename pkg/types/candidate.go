// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Candidate is a whitespace-normalized line that looks like an enumerated
// or bulleted requirement.
type Candidate struct {
	// Text is the normalized line. It is also the de-duplication key.
	Text string `json:"text" yaml:"text"`

	// Page is the 1-based page of the first occurrence.
	Page int `json:"page" yaml:"page"`

	// Line is the 1-based physical line within Page of the first
	// occurrence. Blank lines are counted.
	Line int `json:"line" yaml:"line"`
}

// ExtractionResult holds everything read from one document.
type ExtractionResult struct {
	// PageCount is the number of pages the document reports.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Pages holds the raw extracted text of every page, in order.
	// Pages that yield no text are present as empty strings.
	Pages []string `json:"-" yaml:"-"`

	// Candidates are unique in first-seen order.
	Candidates []Candidate `json:"candidates" yaml:"candidates"`

	// SkippedPages lists 1-based pages whose extraction failed under the
	// skip policy.
	SkippedPages []int `json:"skipped_pages,omitempty" yaml:"skipped_pages,omitempty"`
}

// CandidateTexts returns the candidate strings in order.
func (r *ExtractionResult) CandidateTexts() []string {
	out := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.Text
	}
	return out
}

// RunReport describes one extraction run. It is written as the optional
// report file and recorded in the catalog.
type RunReport struct {
	RunID          string      `json:"run_id" yaml:"run_id"`
	Source         string      `json:"source" yaml:"source"`
	SourceSHA256   string      `json:"source_sha256" yaml:"source_sha256"`
	Backend        Backend     `json:"backend" yaml:"backend"`
	ExtractedAt    time.Time   `json:"extracted_at" yaml:"extracted_at"`
	PageCount      int         `json:"page_count" yaml:"page_count"`
	CandidateCount int         `json:"candidate_count" yaml:"candidate_count"`
	CandidatesFile string      `json:"candidates_file" yaml:"candidates_file"`
	FullTextFile   string      `json:"fulltext_file" yaml:"fulltext_file"`
	SkippedPages   []int       `json:"skipped_pages,omitempty" yaml:"skipped_pages,omitempty"`
	Candidates     []Candidate `json:"candidates" yaml:"candidates"`
}
