// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package requirements

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/reqextract/internal/pdftext"
	"github.com/pdiddy/reqextract/pkg/types"
)

// Extractor reads every page of a document and collects candidate lines.
type Extractor struct {
	matcher     *Matcher
	form        types.UnicodeForm
	onPageError types.PageErrorPolicy
	log         *slog.Logger
}

// NewExtractor builds an Extractor from the match and extract settings.
// A nil logger discards diagnostics.
func NewExtractor(match types.MatchConfig, extract types.ExtractConfig, log *slog.Logger) (*Extractor, error) {
	m, err := NewMatcher(match.Bullets)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	policy := extract.OnPageError
	if policy == "" {
		policy = types.PageErrorFail
	}
	form := match.UnicodeForm
	if form == "" {
		form = types.UnicodeNone
	}
	return &Extractor{matcher: m, form: form, onPageError: policy, log: log}, nil
}

// Extract reads the pages of doc in order. It returns the raw text of every
// page and the unique candidates in first-seen order. Under the fail
// policy the first unreadable page aborts extraction.
func (e *Extractor) Extract(doc pdftext.Document) (*types.ExtractionResult, error) {
	n := doc.NumPage()
	result := &types.ExtractionResult{
		PageCount: n,
		Pages:     make([]string, 0, n),
	}
	seen := make(map[string]bool)

	for page := 1; page <= n; page++ {
		text, err := doc.PageText(page)
		if err != nil {
			if e.onPageError != types.PageErrorSkip {
				return nil, pageError(page, err)
			}
			e.log.Warn("skipping unreadable page", "page", page, "error", err)
			result.SkippedPages = append(result.SkippedPages, page)
			text = ""
		}
		result.Pages = append(result.Pages, text)

		for i, ln := range SplitLines(text) {
			lineNo := i + 1
			ln = strings.TrimSpace(ln)
			if ln == "" || !e.matcher.Match(ln) {
				continue
			}
			key := Normalize(e.unicode(ln))
			if seen[key] {
				e.log.Debug("duplicate candidate", "page", page, "line", lineNo, "text", key)
				continue
			}
			seen[key] = true
			result.Candidates = append(result.Candidates, types.Candidate{Text: key, Page: page, Line: lineNo})
		}
		e.log.Debug("page extracted", "page", page, "chars", len(text))
	}

	return result, nil
}

func (e *Extractor) unicode(s string) string {
	switch e.form {
	case types.UnicodeNFC:
		return norm.NFC.String(s)
	case types.UnicodeNFKC:
		return norm.NFKC.String(s)
	default:
		return s
	}
}

func pageError(page int, err error) error {
	var pe *pdftext.PageError
	if errors.As(err, &pe) {
		return err
	}
	return &pdftext.PageError{Page: page, Err: err}
}
