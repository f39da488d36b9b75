// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext opens PDF documents and yields the plain text of each
// page. Backends: the in-process github.com/ledongthuc/pdf reader and
// poppler's pdftotext binary.
package pdftext

import (
	"fmt"

	"github.com/pdiddy/reqextract/pkg/types"
)

// Document is an opened PDF. Pages are numbered from 1.
type Document interface {
	// NumPage returns the number of pages in the document.
	NumPage() int

	// PageText returns the plain text of page n. A page without text
	// returns the empty string and a nil error.
	PageText(n int) (string, error)

	// Close releases the underlying file.
	Close() error
}

// Opener opens a PDF file as a Document.
type Opener interface {
	Open(path string) (Document, error)
}

// PageError reports a page that could not be read.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("reading page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// NewOpener returns the Opener for the named backend.
func NewOpener(b types.Backend) (Opener, error) {
	switch b {
	case types.BackendNative, "":
		return NativeOpener{}, nil
	case types.BackendPdftotext:
		o, err := NewPdftotextOpener()
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: use native or pdftotext", b)
	}
}
