package gridfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("00_sheet.hcl", `
sheet {
  rows = 50
  cols = 10
}
`)
	write("10_cells.hcl", `cell "A1" { formula = "5" }`)
	write("20_more.hcl", `cell "B1" { formula = "A1+1" }`)
	write("notes.txt", `not a seed file`)

	f, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 50, f.Rows)
	assert.Equal(t, 10, f.Cols)
	require.Len(t, f.Cells, 2)
	assert.Equal(t, "5", f.Cells[0].Formula)
	assert.Equal(t, "A1+1", f.Cells[1].Formula)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	f, err := Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, f.Cells)
	assert.Zero(t, f.Rows)
}
