// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

var defaultExec = &osExecutor{}

// PdftotextOpener extracts text by running poppler's pdftotext once per
// document. pdftotext terminates every page with a form feed, which is how
// the output is split back into pages.
type PdftotextOpener struct {
	exec executor
}

// NewPdftotextOpener verifies that pdftotext is on PATH.
func NewPdftotextOpener() (*PdftotextOpener, error) {
	return newPdftotextOpener(defaultExec)
}

func newPdftotextOpener(exec executor) (*PdftotextOpener, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not available on PATH: %w", binPdftotext, err)
	}
	return &PdftotextOpener{exec: exec}, nil
}

// Open runs pdftotext on path and buffers the text of every page.
func (o *PdftotextOpener) Open(path string) (Document, error) {
	out, err := o.exec.Output(binPdftotext, "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}
	return &bufferedDocument{pages: splitPages(string(out))}, nil
}

// splitPages splits pdftotext output on form feeds. The terminator after
// the last page does not start a new page.
func splitPages(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\f")
	return strings.Split(text, "\f")
}

// bufferedDocument serves pages that were extracted up front.
type bufferedDocument struct {
	pages []string
}

func (d *bufferedDocument) NumPage() int { return len(d.pages) }

func (d *bufferedDocument) PageText(n int) (string, error) {
	if n < 1 || n > len(d.pages) {
		return "", &PageError{Page: n, Err: fmt.Errorf("page out of range (1-%d)", len(d.pages))}
	}
	return d.pages[n-1], nil
}

func (d *bufferedDocument) Close() error { return nil }
