// Package export serializes a full grid snapshot to CSV, one record per
// row, every declared column included.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/sheet"
)

// Grid is the read surface the exporter needs.
type Grid interface {
	Dims() (rows, cols int)
	Value(ref coord.Ref) sheet.Value
}

// Write streams the grid's current values to w as CSV. Unwritten cells
// export as "0"; cells holding the error sentinel export its text.
func Write(w io.Writer, g Grid) error {
	rows, cols := g.Dims()
	cw := csv.NewWriter(w)
	record := make([]string, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			record[col] = g.Value(coord.Ref{Row: row, Col: col}).String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", row+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToFile writes the grid to path, truncating any existing file.
func ToFile(path string, g Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
