// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext recovers the text layer of a PDF's leading pages.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds how many leading pages are read. Five pages give the
// model enough context without shipping whole documents over the wire.
const DefaultMaxPages = 5

// ExtractLeadingText reads up to maxPages pages from the PDF at path and
// returns their concatenated text. An intact PDF without an extractable text
// layer (scanned or image-only) yields an empty string and a nil error; that
// is an expected outcome, not a failure. Only a file that cannot be opened or
// parsed at all yields an error.
func ExtractLeadingText(path string, maxPages int) (text string, err error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	// The parser panics on some malformed xref tables and font dictionaries;
	// surface those as ordinary read errors.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parsing %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if n > maxPages {
		n = maxPages
	}

	var b strings.Builder
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A page whose text layer cannot be decoded contributes nothing.
			continue
		}
		b.WriteString(content)
	}

	return strings.TrimSpace(b.String()), nil
}
