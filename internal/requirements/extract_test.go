// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package requirements

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reqextract/internal/pdftext"
	"github.com/pdiddy/reqextract/pkg/types"
)

// fakeDocument implements pdftext.Document over canned page text. A page
// listed in errs fails with that error.
type fakeDocument struct {
	pages []string
	errs  map[int]error
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) (string, error) {
	if err := d.errs[n]; err != nil {
		return "", err
	}
	return d.pages[n-1], nil
}

func (d *fakeDocument) Close() error { return nil }

func newTestExtractor(t *testing.T, policy types.PageErrorPolicy) *Extractor {
	t.Helper()
	cfg := types.DefaultConfig()
	cfg.Extract.OnPageError = policy
	e, err := NewExtractor(cfg.Match, cfg.Extract, nil)
	require.NoError(t, err)
	return e
}

func TestExtractTwoPageScenario(t *testing.T) {
	doc := &fakeDocument{pages: []string{
		"1. Must support login\nSome narrative text\n2) Must log out",
		"- Bullet item\nNot a bullet",
	}}

	result, err := newTestExtractor(t, types.PageErrorFail).Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, 2, result.PageCount)
	assert.Equal(t, doc.pages, result.Pages)
	assert.Equal(t, []string{
		"1. Must support login",
		"2) Must log out",
		"- Bullet item",
	}, result.CandidateTexts())
	assert.Equal(t, []types.Candidate{
		{Text: "1. Must support login", Page: 1, Line: 1},
		{Text: "2) Must log out", Page: 1, Line: 3},
		{Text: "- Bullet item", Page: 2, Line: 1},
	}, result.Candidates)
}

func TestExtractEmptyPage(t *testing.T) {
	doc := &fakeDocument{pages: []string{"1. First", "", "   \n\n", "2. Last"}}

	result, err := newTestExtractor(t, types.PageErrorFail).Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, 4, result.PageCount)
	assert.Equal(t, []string{"1. First", "", "   \n\n", "2. Last"}, result.Pages)
	assert.Equal(t, []string{"1. First", "2. Last"}, result.CandidateTexts())
}

func TestExtractDeduplicatesAcrossPages(t *testing.T) {
	doc := &fakeDocument{pages: []string{
		"1. Must support login\n- Keep me",
		"1.   Must   support\tlogin\n3. New item\n- Keep me",
	}}

	result, err := newTestExtractor(t, types.PageErrorFail).Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, []types.Candidate{
		{Text: "1. Must support login", Page: 1, Line: 1},
		{Text: "- Keep me", Page: 1, Line: 2},
		{Text: "3. New item", Page: 2, Line: 2},
	}, result.Candidates)
}

func TestExtractLineCountsBlankLines(t *testing.T) {
	doc := &fakeDocument{pages: []string{"Intro\n\n   \n1. After blanks\r\n\r\n- Bullet"}}

	result, err := newTestExtractor(t, types.PageErrorFail).Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, []types.Candidate{
		{Text: "1. After blanks", Page: 1, Line: 4},
		{Text: "- Bullet", Page: 1, Line: 6},
	}, result.Candidates)
}

func TestExtractStoresNormalizedForm(t *testing.T) {
	doc := &fakeDocument{pages: []string{"   4)\t\tIndented   requirement   "}}

	result, err := newTestExtractor(t, types.PageErrorFail).Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"4) Indented requirement"}, result.CandidateTexts())
}

func TestExtractPageErrorFail(t *testing.T) {
	boom := errors.New("bad content stream")
	doc := &fakeDocument{
		pages: []string{"1. ok", "2. never read"},
		errs:  map[int]error{2: boom},
	}

	_, err := newTestExtractor(t, types.PageErrorFail).Extract(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var pe *pdftext.PageError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Page)
}

func TestExtractPageErrorSkip(t *testing.T) {
	doc := &fakeDocument{
		pages: []string{"1. ok", "2. unreadable", "3. also ok"},
		errs:  map[int]error{2: errors.New("bad content stream")},
	}

	result, err := newTestExtractor(t, types.PageErrorSkip).Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, []string{"1. ok", "", "3. also ok"}, result.Pages)
	assert.Equal(t, []string{"1. ok", "3. also ok"}, result.CandidateTexts())
	assert.Equal(t, []int{2}, result.SkippedPages)
}

func TestExtractUnicodeForm(t *testing.T) {
	// U+FB01 is the "fi" ligature PDF generators often emit.
	doc := &fakeDocument{pages: []string{"1. Con\ufb01gure the system"}}

	plain := newTestExtractor(t, types.PageErrorFail)
	result, err := plain.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"1. Con\ufb01gure the system"}, result.CandidateTexts())

	cfg := types.DefaultConfig()
	cfg.Match.UnicodeForm = types.UnicodeNFKC
	nfkc, err := NewExtractor(cfg.Match, cfg.Extract, nil)
	require.NoError(t, err)
	result, err = nfkc.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"1. Configure the system"}, result.CandidateTexts())
}

func TestExtractNoPages(t *testing.T) {
	result, err := newTestExtractor(t, types.PageErrorFail).Extract(&fakeDocument{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.PageCount)
	assert.Empty(t, result.Pages)
	assert.Empty(t, result.Candidates)
}

func TestNewExtractorRejectsEmptyBullets(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Match.Bullets = ""
	_, err := NewExtractor(cfg.Match, cfg.Extract, nil)
	require.Error(t, err)
}
