// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rename builds filesystem-safe target names for usable guesses and
// performs the on-disk mutation: an atomic rename plus an optional rewrite of
// the PDF's Info dictionary.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sumergoconicio/openai-pdf-renamer/internal/reliability"
	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// DefaultMaxNameLength bounds the filename component before ".pdf".
const DefaultMaxNameLength = 128

// illegalChars matches characters rejected by at least one common filesystem,
// plus control characters.
var illegalChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]`)

// FormatName renders `Author - Title (Year).pdf` for a guess. An unreliable
// year renders as the Unknown marker. Formatting is idempotent: applying it
// to an already-formatted guess yields the same string.
func FormatName(g types.GuessResult, maxLen int) string {
	year := g.Year
	if !reliability.FieldReliable(year) {
		year = types.Unknown
	}
	base := fmt.Sprintf("%s - %s (%s)", g.Author, g.Title, year)
	return Sanitize(base, maxLen) + ".pdf"
}

// Sanitize strips illegal filename characters, collapses whitespace runs, and
// truncates to maxLen runes. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}
	s = illegalChars.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > maxLen {
		s = strings.TrimSpace(string(runes[:maxLen]))
	}
	return s
}

// Claim picks the final name for a document: name itself when free, otherwise
// the first `base (N).pdf` variant that collides with neither the directory
// contents nor a name already claimed this run. The chosen name is recorded
// in claimed, so no two documents in one run can end up identical. self is
// the document's current filename; keeping it is not a collision.
func Claim(dir, name, self string, claimed map[string]bool) string {
	candidate := name
	base := strings.TrimSuffix(name, ".pdf")
	for n := 2; taken(dir, candidate, self, claimed); n++ {
		candidate = fmt.Sprintf("%s (%d).pdf", base, n)
	}
	claimed[candidate] = true
	return candidate
}

func taken(dir, name, self string, claimed map[string]bool) bool {
	if claimed[name] {
		return true
	}
	if name == self {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
