// Package gridfile loads sheet seed files written in HCL. A seed file
// declares optional sheet dimensions and any number of cell blocks:
//
//	sheet {
//	  rows = 100
//	  cols = 26
//	}
//
//	cell "A1" { formula = "5" }
//	cell "B1" { formula = "A1+1" }
//
// Formulas are HCL expressions evaluated without a context, so both quoted
// strings and bare numbers are accepted.
package gridfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/ctxlog"
	"github.com/vk/gridcalc/internal/fsutil"
)

// hclSheetBlock carries the optional dimension override.
type hclSheetBlock struct {
	Rows int `hcl:"rows"`
	Cols int `hcl:"cols"`
}

// hclCellBlock is one cell assignment; the label is the coordinate.
type hclCellBlock struct {
	Ref     string         `hcl:"ref,label"`
	Formula hcl.Expression `hcl:"formula"`
}

// hclDocument is the top-level structure of a seed file.
type hclDocument struct {
	Sheet *hclSheetBlock  `hcl:"sheet,block"`
	Cells []*hclCellBlock `hcl:"cell,block"`
}

// Cell is one decoded cell assignment, in file order.
type Cell struct {
	Ref     coord.Ref
	Formula string
}

// File is a fully decoded seed file. Rows and Cols are zero when the file
// declares no sheet block, leaving dimensions to the caller.
type File struct {
	Rows  int
	Cols  int
	Cells []Cell
}

// Load decodes the seed at path. A directory loads every .hcl file under
// it in lexical walk order, merged into one File; the first sheet block
// found wins and cell blocks accumulate in file order.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat grid path: %w", err)
	}
	if !info.IsDir() {
		return loadFile(ctx, path, hclparse.NewParser())
	}

	paths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find grid files in %s: %w", path, err)
	}
	if len(paths) == 0 {
		logger.Warn("No .hcl grid files found in path, returning empty seed", "path", path)
		return &File{}, nil
	}

	merged := &File{}
	parser := hclparse.NewParser()
	for _, p := range paths {
		f, err := loadFile(ctx, p, parser)
		if err != nil {
			return nil, err
		}
		if merged.Rows == 0 && merged.Cols == 0 {
			merged.Rows, merged.Cols = f.Rows, f.Cols
		}
		merged.Cells = append(merged.Cells, f.Cells...)
	}
	return merged, nil
}

// loadFile parses and decodes one seed file.
func loadFile(ctx context.Context, path string, parser *hclparse.Parser) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading grid seed file", "path", path)

	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse grid file %s: %w", path, diags)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode grid file %s: %w", path, diags)
	}

	f := &File{}
	if doc.Sheet != nil {
		f.Rows = doc.Sheet.Rows
		f.Cols = doc.Sheet.Cols
	}

	for _, block := range doc.Cells {
		ref, err := coord.Parse(block.Ref)
		if err != nil {
			return nil, fmt.Errorf("cell block %q: %w", block.Ref, err)
		}
		text, err := formulaText(block.Formula)
		if err != nil {
			return nil, fmt.Errorf("cell block %q: %w", block.Ref, err)
		}
		f.Cells = append(f.Cells, Cell{Ref: ref, Formula: text})
	}

	logger.Debug("Decoded grid seed file", "path", path, "cells", len(f.Cells))
	return f, nil
}

// formulaText evaluates the formula expression and renders it as the text
// the formula parser consumes. Numbers convert through cty so `formula = 5`
// and `formula = "5"` mean the same thing.
func formulaText(expr hcl.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating formula: %w", diags)
	}
	if val.IsNull() {
		return "", fmt.Errorf("formula must not be null")
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("formula must be a string or number: %w", err)
	}
	return converted.AsString(), nil
}
