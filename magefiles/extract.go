//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and runs it on the PDF named by $PDF, writing the
// outputs into build/. Set $REPORT to also write a run report.
func Extract() error {
	mg.Deps(Build)

	pdf := os.Getenv("PDF")
	if pdf == "" {
		return fmt.Errorf("set PDF to the document to extract, e.g. PDF=docs/ProjectMobile.pdf mage extract")
	}
	args := []string{"extract", pdf, "--out-dir", outDir}
	if report := os.Getenv("REPORT"); report != "" {
		args = append(args, "--report", report)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
