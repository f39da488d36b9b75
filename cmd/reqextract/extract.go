// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reqextract/internal/catalog"
	"github.com/pdiddy/reqextract/internal/pdftext"
	"github.com/pdiddy/reqextract/internal/pipeline"
	"github.com/pdiddy/reqextract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Extract candidate requirement lines from a PDF",
	Long: `Extract reads every page of the PDF, keeps the lines that start with a
list marker ("1.", "2)", "-", or another configured bullet followed by
whitespace), collapses their whitespace, drops duplicates, and writes:

  requirements_extracted.txt   one candidate per line, first-seen order
  requirements_fulltext.txt    every page's text, separated by page breaks

The PDF path may be given as an argument or as extract.input in the config.
A summary of four lines (pages, candidate_lines, and the two written paths)
is printed on success.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

// extractFlagKeys maps configuration keys to extract flags.
var extractFlagKeys = map[string]string{
	"extract.backend":        "backend",
	"extract.on_page_error":  "on-page-error",
	"match.bullets":          "bullets",
	"match.unicode_form":     "unicode-form",
	"output.dir":             "out-dir",
	"output.candidates_file": "candidates-file",
	"output.fulltext_file":   "fulltext-file",
	"output.report":          "report",
	"catalog.enabled":        "catalog",
	"catalog.dir":            "catalog-dir",
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, extractFlagKeys); err != nil {
		return err
	}
	if len(args) == 1 {
		viper.Set("extract.input", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := pipeline.CheckInput(cfg.Extract.Input); err != nil {
		return err
	}

	opener, err := pdftext.NewOpener(cfg.Extract.Backend)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Stdout: cmd.OutOrStdout(),
		Log:    logger,
	}
	if cfg.Catalog.Enabled {
		store, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Catalog = store
	}

	_, err = pipeline.Run(cmd.Context(), opener, cfg, opts)
	return err
}

func init() {
	d := types.DefaultConfig()
	extractCmd.Flags().String("backend", string(d.Extract.Backend), "text extraction backend: native or pdftotext")
	extractCmd.Flags().String("on-page-error", string(d.Extract.OnPageError), "unreadable page policy: fail or skip")
	extractCmd.Flags().String("bullets", d.Match.Bullets, "characters accepted as bullet markers")
	extractCmd.Flags().String("unicode-form", string(d.Match.UnicodeForm), "Unicode normalization for candidates: none, nfc, or nfkc")
	extractCmd.Flags().String("out-dir", d.Output.Dir, "directory for the candidate and full-text files")
	extractCmd.Flags().String("candidates-file", d.Output.CandidatesFile, "candidate list file name")
	extractCmd.Flags().String("fulltext-file", d.Output.FullTextFile, "full page text file name")
	extractCmd.Flags().String("report", "", "write a run report to this path (.json for JSON, otherwise YAML)")
	extractCmd.Flags().Bool("catalog", false, "record the run in the candidate catalog")
	extractCmd.Flags().String("catalog-dir", d.Catalog.Dir, "directory holding catalog.db")

	rootCmd.AddCommand(extractCmd)
}
