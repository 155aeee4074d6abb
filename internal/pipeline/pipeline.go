// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one renaming run over a directory of PDFs:
// extract leading text, guess metadata, filter unreliable guesses, pick a
// collision-free name, rename, and optionally rewrite embedded metadata.
// Every failure is contained at single-document granularity.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/sumergoconicio/openai-pdf-renamer/internal/guess"
	"github.com/sumergoconicio/openai-pdf-renamer/internal/pdftext"
	"github.com/sumergoconicio/openai-pdf-renamer/internal/reliability"
	"github.com/sumergoconicio/openai-pdf-renamer/internal/rename"
	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// Outcome describes what happened to one document.
type Outcome string

const (
	OutcomeRenamed Outcome = "renamed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Entry is the per-document record of a run.
type Entry struct {
	Original string  `json:"original" yaml:"original"`
	Final    string  `json:"final,omitempty" yaml:"final,omitempty"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Reason   string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Summary holds the outcome counts and per-document entries of one run.
type Summary struct {
	Renamed int     `json:"renamed" yaml:"renamed"`
	Skipped int     `json:"skipped" yaml:"skipped"`
	Failed  int     `json:"failed" yaml:"failed"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Renamed + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(e Entry) {
	switch e.Outcome {
	case OutcomeRenamed:
		s.Renamed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	s.Entries = append(s.Entries, e)
}

// Run processes every PDF in cfg.Rename.Dir in lexicographic order, writing
// progress to w. A per-document error leaves that document untouched and the
// run continues; only an unreadable directory aborts the whole run. The set
// of names claimed during the run is threaded through explicitly so that no
// two documents can end up with the same final name.
func Run(ctx context.Context, backend guess.Backend, cfg types.PipelineConfig, w io.Writer) (Summary, error) {
	dir := cfg.Rename.Dir
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var summary Summary
	claimed := make(map[string]bool)

	for _, name := range names {
		summary.add(processDocument(ctx, backend, cfg, dir, name, claimed, w))
	}

	return summary, nil
}

// processDocument runs the full pipeline for one document. Any error at any
// stage before the rename converts to a failed entry with the file unchanged;
// a metadata rewrite error after a completed rename is reported but the
// rename stands.
func processDocument(ctx context.Context, backend guess.Backend, cfg types.PipelineConfig, dir, name string, claimed map[string]bool, w io.Writer) Entry {
	doc := types.Document{
		Path:         filepath.Join(dir, name),
		OriginalName: name,
	}

	text, err := pdftext.ExtractLeadingText(doc.Path, cfg.Guess.MaxPages)
	if err != nil {
		return fail(w, name, fmt.Errorf("extracting text: %w", err))
	}
	doc.Text = text

	resp, err := backend.Guess(ctx, doc.Text)
	if err != nil {
		return fail(w, name, fmt.Errorf("guessing metadata: %w", err))
	}
	g := guess.Normalize(resp)

	if !reliability.Usable(g, cfg.Rename.RequireYear) {
		fmt.Fprintf(w, "skipped %s: guess unreliable\n", name)
		return Entry{Original: name, Outcome: OutcomeSkipped, Reason: "guess unreliable"}
	}

	target := rename.FormatName(g, cfg.Rename.MaxNameLength)
	final := rename.Claim(dir, target, name, claimed)

	if cfg.Rename.DryRun {
		fmt.Fprintf(w, "would rename %s -> %s\n", name, final)
		return Entry{Original: name, Final: final, Outcome: OutcomeSkipped, Reason: "dry run"}
	}

	newPath, err := rename.Move(doc.Path, final)
	if err != nil {
		return fail(w, name, err)
	}

	if cfg.Rename.RewriteMetadata {
		if err := rename.RewriteMetadata(newPath, g); err != nil {
			// The rename already happened and stands; only the embedded
			// metadata is stale.
			fmt.Fprintf(w, "renamed %s -> %s (metadata rewrite failed: %v)\n", name, final, err)
			return Entry{
				Original: name,
				Final:    final,
				Outcome:  OutcomeRenamed,
				Reason:   fmt.Sprintf("metadata rewrite failed: %v", err),
			}
		}
	}

	fmt.Fprintf(w, "renamed %s -> %s\n", name, final)
	return Entry{Original: name, Final: final, Outcome: OutcomeRenamed}
}

func fail(w io.Writer, name string, err error) Entry {
	fmt.Fprintf(w, "failed  %s: %v\n", name, err)
	return Entry{Original: name, Outcome: OutcomeFailed, Reason: err.Error()}
}

// WriteReport marshals the run summary to a YAML file.
func WriteReport(path string, s Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
