// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/sumergoconicio/openai-pdf-renamer/internal/reliability"
	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// Move renames the document within its directory and returns the new path.
// os.Rename is atomic when source and destination share a filesystem, so an
// observer sees the file either under its old name or its new one, never
// both and never neither. Renaming a file to its current name is a no-op.
func Move(oldPath, newName string) (string, error) {
	dir := filepath.Dir(oldPath)
	newPath := filepath.Join(dir, newName)
	if filepath.Base(oldPath) == newName {
		return newPath, nil
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("renaming %s: %w", oldPath, err)
	}
	return newPath, nil
}

// RewriteMetadata updates the PDF's embedded Title and Author from the guess,
// plus CreationDate when the year is usable (January 1st, midnight UTC of the
// guessed year; day and month are never known). The document is rewritten to
// a temporary sibling file and renamed over the original, so a crash leaves
// either the old bytes or the new ones. A failure here is reported per file
// and never reverts an already-completed rename.
func RewriteMetadata(path string, g types.GuessResult) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	ctx, err := api.ReadContext(f, conf)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}

	d, err := infoDict(ctx)
	if err != nil {
		return fmt.Errorf("resolving info dictionary: %w", err)
	}

	if err := insertString(d, "Title", g.Title); err != nil {
		return err
	}
	if err := insertString(d, "Author", g.Author); err != nil {
		return err
	}
	if reliability.FieldReliable(g.Year) {
		var year int
		fmt.Sscanf(g.Year, "%d", &year)
		created := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		d["CreationDate"] = pdftypes.StringLiteral(pdftypes.DateString(created))
	}

	return writeInPlace(ctx, path)
}

// infoDict returns the document's Info dictionary, creating one when absent.
func infoDict(ctx *model.Context) (pdftypes.Dict, error) {
	if ctx.Info != nil {
		return ctx.DereferenceDict(*ctx.Info)
	}
	d := pdftypes.NewDict()
	ir, err := ctx.IndRefForNewObject(d)
	if err != nil {
		return nil, err
	}
	ctx.Info = ir
	return d, nil
}

// insertString stores an escaped string literal under key.
func insertString(d pdftypes.Dict, key, value string) error {
	s, err := pdftypes.Escape(value)
	if err != nil {
		return fmt.Errorf("escaping %s: %w", key, err)
	}
	d[key] = pdftypes.StringLiteral(*s)
	return nil
}

// writeInPlace serializes ctx next to path and atomically replaces it.
func writeInPlace(ctx *model.Context, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdf-renamer-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := api.WriteContext(ctx, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
