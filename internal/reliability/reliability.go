// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reliability classifies guess results as usable or unreliable.
// The verdict is a pure function of the result's field values against a
// fixed denylist of placeholder markers.
package reliability

import (
	"strings"

	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// placeholders is the denylist of marker values the model emits when unsure.
// Matching is case-insensitive after trimming.
var placeholders = map[string]bool{
	"":        true,
	"unknown": true,
	"various": true,
	"n/a":     true,
	"none":    true,
}

// FieldReliable reports whether a single field carries real information
// rather than a placeholder marker.
func FieldReliable(v string) bool {
	return !placeholders[strings.ToLower(strings.TrimSpace(v))]
}

// Usable is the verdict for a guess. Title and author must both be reliable;
// the year participates only when requireYear is set, so a document can still
// be renamed with an Unknown year placeholder.
func Usable(g types.GuessResult, requireYear bool) bool {
	if !FieldReliable(g.Title) || !FieldReliable(g.Author) {
		return false
	}
	if requireYear && !FieldReliable(g.Year) {
		return false
	}
	return true
}
