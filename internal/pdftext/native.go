// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"
)

// newReader is replaced in tests.
var newReader = pdflib.NewReader

// NativeOpener reads PDFs in-process with github.com/ledongthuc/pdf.
type NativeOpener struct{}

// Open parses the cross-reference table of the file at path. Page content
// is decoded lazily by PageText.
func (NativeOpener) Open(path string) (doc Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	// The parser panics on some malformed files instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("opening PDF %s: %v", path, r)
		}
		if err != nil {
			f.Close()
			doc = nil
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	reader, err := newReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &nativeDocument{file: f, reader: reader}, nil
}

type nativeDocument struct {
	file   *os.File
	reader *pdflib.Reader
}

func (d *nativeDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *nativeDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &PageError{Page: n, Err: fmt.Errorf("%v", r)}
		}
	}()

	if n < 1 || n > d.reader.NumPage() {
		return "", &PageError{Page: n, Err: errors.New("page out of range")}
	}

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return layoutText(page.Content().Text), nil
}

func (d *nativeDocument) Close() error {
	return d.file.Close()
}

// layoutText joins positioned glyphs, in drawing order, into lines. A glyph
// whose baseline is more than half a font size away from the previous one
// starts a new line. A horizontal gap wider than a fifth of the font size
// becomes a space.
func layoutText(glyphs []pdflib.Text) string {
	var b strings.Builder
	var prev pdflib.Text
	started := false

	for _, g := range glyphs {
		if strings.Trim(g.S, "\r\n") == "" {
			continue
		}
		if started {
			size := math.Max(math.Abs(prev.FontSize), math.Abs(g.FontSize))
			switch {
			case math.Abs(g.Y-prev.Y) > math.Max(size/2, 1):
				b.WriteByte('\n')
			case g.X-(prev.X+prev.W) > size/5 && !endsInSpace(b.String()) && !startsWithSpace(g.S):
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		prev = g
		started = true
	}
	return b.String()
}

func endsInSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
