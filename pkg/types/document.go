// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model and configuration for the
// PDF renaming pipeline.
package types

// Unknown is the placeholder marker for a field the model could not determine.
const Unknown = "Unknown"

// Document is one PDF file being processed in a run. Documents are discovered
// at directory scan time and carry no state beyond a single iteration.
type Document struct {
	// Path is the filesystem path to the PDF.
	Path string `json:"path" yaml:"path"`

	// OriginalName is the filename at discovery time.
	OriginalName string `json:"original_name" yaml:"original_name"`

	// Text is the extracted leading-page text. Empty for image-only PDFs.
	Text string `json:"-" yaml:"-"`
}

// GuessResult is the normalized title/author/year output of the model call
// for one Document. Fields the model could not determine hold the Unknown
// marker; a GuessResult is always well-formed even for empty input.
type GuessResult struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   string `json:"year" yaml:"year"`

	// Raw preserves the model output when structured parsing failed.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
}
