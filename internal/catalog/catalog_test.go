// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reqextract/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "catalog")
	store, err := Open(types.CatalogConfig{Dir: dir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func testReport(sha, source string, texts ...string) types.RunReport {
	r := types.RunReport{
		RunID:        "run-" + sha,
		Source:       source,
		SourceSHA256: sha,
		Backend:      types.BackendNative,
		ExtractedAt:  time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		PageCount:    len(texts),
	}
	for i, text := range texts {
		r.Candidates = append(r.Candidates, types.Candidate{Text: text, Page: i + 1, Line: 1})
	}
	r.CandidateCount = len(r.Candidates)
	return r
}

// --- tests ---

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	_, err := os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
}

func TestIngestAndSearch(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	status, err := store.Ingest(ctx, testReport("aaa111", "/docs/mobile.pdf",
		"1. Must support login", "2) Must log out", "- Offline mode"))
	require.NoError(t, err)
	assert.Equal(t, StatusIndexed, status)

	status, err = store.Ingest(ctx, testReport("bbb222", "/docs/web.pdf",
		"1. Must support LOGIN via SSO", "- Dark theme"))
	require.NoError(t, err)
	assert.Equal(t, StatusIndexed, status)

	hits, err := store.Search(ctx, QueryOptions{Query: "login"})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "/docs/mobile.pdf", hits[0].Source)
	assert.Equal(t, "1. Must support login", hits[0].Text)
	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, "/docs/web.pdf", hits[1].Source)

	hits, err = store.Search(ctx, QueryOptions{DocumentID: "aaa"})
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"1. Must support login", "2) Must log out", "- Offline mode"},
		[]string{hits[0].Text, hits[1].Text, hits[2].Text})
	assert.Equal(t, 2, hits[1].Page)
}

func TestIngestReplacesSameDocument(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	_, err := store.Ingest(ctx, testReport("aaa111", "/docs/v1.pdf", "1. Old item", "2. Dropped later"))
	require.NoError(t, err)

	status, err := store.Ingest(ctx, testReport("aaa111", "/docs/v1-copy.pdf", "1. Old item", "3. New item"))
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, status)

	hits, err := store.Search(ctx, QueryOptions{DocumentID: "aaa111"})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "3. New item", hits[1].Text)
	assert.Equal(t, "/docs/v1-copy.pdf", hits[1].Source)

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].CandidateCount)
}

func TestIngestRequiresChecksum(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Ingest(context.Background(), testReport("", "/docs/x.pdf", "1. Item"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestSearchEscapesWildcards(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	_, err := store.Ingest(ctx, testReport("ccc333", "/docs/perf.pdf",
		"1. Uptime of 99% or better", "2. Uptime of 99 percent"))
	require.NoError(t, err)

	hits, err := store.Search(ctx, QueryOptions{Query: "99%"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1. Uptime of 99% or better", hits[0].Text)

	hits, err = store.Search(ctx, QueryOptions{Query: "of_99"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchLimit(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	_, err := store.Ingest(ctx, testReport("ddd444", "/docs/many.pdf",
		"1. Item one", "2. Item two", "3. Item three"))
	require.NoError(t, err)

	hits, err := store.Search(ctx, QueryOptions{Query: "item", MaxResults: 2})
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestOpenDefaultsMaxResults(t *testing.T) {
	store, err := Open(types.CatalogConfig{Dir: filepath.Join(t.TempDir(), "catalog")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	assert.Equal(t, types.DefaultMaxResults, store.maxResults)
}

func TestSearchRequiresQuery(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Search(context.Background(), QueryOptions{Query: "   "})
	require.Error(t, err)
}

func TestDocuments(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	older := testReport("eee555", "/docs/old.pdf", "1. A")
	older.ExtractedAt = older.ExtractedAt.Add(-time.Hour)
	_, err := store.Ingest(ctx, older)
	require.NoError(t, err)
	_, err = store.Ingest(ctx, testReport("fff666", "/docs/new.pdf", "1. B", "2. C"))
	require.NoError(t, err)

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "/docs/new.pdf", docs[0].Source)
	assert.Equal(t, 2, docs[0].CandidateCount)
	assert.Equal(t, "native", docs[0].Backend)
	assert.True(t, docs[0].ExtractedAt.Equal(time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "/docs/old.pdf", docs[1].Source)
}
