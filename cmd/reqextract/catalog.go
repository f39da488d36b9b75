// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reqextract/internal/catalog"
	"github.com/pdiddy/reqextract/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Search candidates recorded by earlier runs",
	Long: `Catalog queries the SQLite database that "extract --catalog" fills.
Each PDF is keyed by its SHA-256, so re-running a document replaces its
candidates instead of adding duplicates.`,
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find candidates containing a phrase",
	Long: `Search returns candidates whose text contains the query (ASCII case is
ignored), optionally restricted to one document by checksum prefix.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	docID, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		DocumentID: docID,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search phrase or --document")
	}

	hits, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), hits, jsonOutput)
}

func formatSearchOutput(w io.Writer, hits []catalog.Hit, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-12s  %-4s  %-4s  %-60s  %s\n", "Document", "Page", "Line", "Candidate", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, h := range hits {
		fmt.Fprintf(w, "%-12s  %-4d  %-4d  %-60s  %s\n",
			shorten(h.DocumentID, 12), h.Page, h.Line, truncate(h.Text, 60), h.Source)
	}
	fmt.Fprintf(w, "\n%d results\n", len(hits))
	return nil
}

// --- documents subcommand ---

var catalogDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents recorded in the catalog",
	RunE:  runCatalogDocuments,
}

func runCatalogDocuments(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.Documents(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}
	if len(docs) == 0 {
		fmt.Fprintln(w, "Catalog is empty.")
		return nil
	}

	fmt.Fprintf(w, "%-12s  %-5s  %-10s  %-20s  %s\n", "Document", "Pages", "Candidates", "Extracted", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, d := range docs {
		fmt.Fprintf(w, "%-12s  %-5d  %-10d  %-20s  %s\n",
			shorten(d.ID, 12), d.PageCount, d.CandidateCount,
			d.ExtractedAt.Format("2006-01-02 15:04:05"), d.Source)
	}
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	if err := bindFlags(cmd, map[string]string{
		"catalog.dir":         "catalog-dir",
		"catalog.max_results": "max-results",
	}); err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.Catalog)
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	d := types.DefaultConfig()
	catalogCmd.PersistentFlags().String("catalog-dir", d.Catalog.Dir, "directory holding catalog.db")
	catalogCmd.PersistentFlags().Int("max-results", d.Catalog.MaxResults, "default maximum number of search results")
	catalogCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	catalogSearchCmd.Flags().String("document", "", "restrict results to a document checksum (prefix)")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")

	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogDocumentsCmd)

	rootCmd.AddCommand(catalogCmd)
}
