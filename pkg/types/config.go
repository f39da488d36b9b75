// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Backend identifies the PDF text extraction backend.
type Backend string

const (
	// BackendNative reads pages in-process with github.com/ledongthuc/pdf.
	BackendNative Backend = "native"
	// BackendPdftotext shells out to poppler's pdftotext.
	BackendPdftotext Backend = "pdftotext"
)

// PageErrorPolicy decides what happens when a single page cannot be read.
type PageErrorPolicy string

const (
	// PageErrorFail aborts the run on the first page that cannot be read.
	PageErrorFail PageErrorPolicy = "fail"
	// PageErrorSkip logs a warning and records the page as empty.
	PageErrorSkip PageErrorPolicy = "skip"
)

// UnicodeForm selects an optional Unicode normalization applied to
// candidate lines before whitespace is collapsed.
type UnicodeForm string

const (
	UnicodeNone UnicodeForm = "none"
	UnicodeNFC  UnicodeForm = "nfc"
	UnicodeNFKC UnicodeForm = "nfkc"
)

// DefaultBullets is the bullet character set recognised when none is configured.
const DefaultBullets = "-•"

// DefaultMaxResults is the catalog search limit used when none is configured.
const DefaultMaxResults = 20

// ExtractConfig holds settings for reading the input document.
type ExtractConfig struct {
	// Input is the path of the PDF to read.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Backend selects the text extraction backend (default native).
	Backend Backend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// OnPageError selects the per-page failure policy (default fail).
	OnPageError PageErrorPolicy `json:"on_page_error" yaml:"on_page_error" mapstructure:"on_page_error"`
}

// MatchConfig holds settings for candidate line selection.
type MatchConfig struct {
	// Bullets lists every rune accepted as a bullet prefix.
	Bullets string `json:"bullets" yaml:"bullets" mapstructure:"bullets"`

	// UnicodeForm is none, nfc, or nfkc.
	UnicodeForm UnicodeForm `json:"unicode_form" yaml:"unicode_form" mapstructure:"unicode_form"`
}

// OutputConfig holds the locations of the files a run writes.
type OutputConfig struct {
	// Dir is the directory the candidate and full-text files are written to.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	CandidatesFile string `json:"candidates_file" yaml:"candidates_file" mapstructure:"candidates_file"`
	FullTextFile   string `json:"fulltext_file" yaml:"fulltext_file" mapstructure:"fulltext_file"`

	// Report is an optional path for the run report. A .json extension
	// selects JSON; anything else is written as YAML. Empty disables it.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`
}

// CatalogConfig holds settings for the SQLite candidate catalog.
type CatalogConfig struct {
	// Enabled ingests every successful run into the catalog.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir holds catalog.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default search result limit.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings for a run.
type Config struct {
	Extract ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Match   MatchConfig   `json:"match" yaml:"match" mapstructure:"match"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Extract: ExtractConfig{
			Backend:     BackendNative,
			OnPageError: PageErrorFail,
		},
		Match: MatchConfig{
			Bullets:     DefaultBullets,
			UnicodeForm: UnicodeNone,
		},
		Output: OutputConfig{
			Dir:            ".",
			CandidatesFile: "requirements_extracted.txt",
			FullTextFile:   "requirements_fulltext.txt",
		},
		Catalog: CatalogConfig{
			Dir:        ".reqextract",
			MaxResults: DefaultMaxResults,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Extract.Backend {
	case BackendNative, BackendPdftotext:
	default:
		return fmt.Errorf("extract.backend %q: use native or pdftotext", c.Extract.Backend)
	}
	switch c.Extract.OnPageError {
	case PageErrorFail, PageErrorSkip:
	default:
		return fmt.Errorf("extract.on_page_error %q: use fail or skip", c.Extract.OnPageError)
	}
	switch c.Match.UnicodeForm {
	case UnicodeNone, UnicodeNFC, UnicodeNFKC:
	default:
		return fmt.Errorf("match.unicode_form %q: use none, nfc, or nfkc", c.Match.UnicodeForm)
	}
	if c.Match.Bullets == "" {
		return fmt.Errorf("match.bullets must list at least one bullet character")
	}
	if strings.TrimSpace(c.Output.CandidatesFile) == "" {
		return fmt.Errorf("output.candidates_file is required")
	}
	if strings.TrimSpace(c.Output.FullTextFile) == "" {
		return fmt.Errorf("output.fulltext_file is required")
	}
	if c.Catalog.Enabled && strings.TrimSpace(c.Catalog.Dir) == "" {
		return fmt.Errorf("catalog.dir is required when the catalog is enabled")
	}
	return nil
}
