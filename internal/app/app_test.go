package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/eval"
	"github.com/vk/gridcalc/internal/sheet"
)

func testConfig() *Config {
	return &Config{
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		LogFormat: "text",
		LogLevel:  "error",
	}
}

// runScript feeds the given command lines through a fresh app and returns
// the app and everything it printed.
func runScript(t *testing.T, cfg *Config, lines ...string) (*App, string) {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	out := &bytes.Buffer{}

	a, err := newApp(in, out, cfg, eval.NoopSleeper{})
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
	return a, out.String()
}

func TestNewConfig_Validation(t *testing.T) {
	for _, cfg := range []Config{
		{Rows: 0, Cols: 26},
		{Rows: 1000, Cols: 26},
		{Rows: 100, Cols: 0},
		{Rows: 100, Cols: 18279},
	} {
		_, err := NewConfig(cfg)
		assert.Error(t, err, "rows=%d cols=%d", cfg.Rows, cfg.Cols)
	}

	cfg, err := NewConfig(Config{Rows: 999, Cols: 18278})
	require.NoError(t, err)
	assert.Equal(t, 999, cfg.Rows)
}

func TestRun_AssignAndQuit(t *testing.T) {
	a, out := runScript(t, testConfig(),
		"A1=5",
		"B1=A1*3",
		"q",
	)

	assert.Equal(t, sheet.IntValue(5), a.Engine().Value(coord.Ref{}))
	assert.Equal(t, sheet.IntValue(15), a.Engine().Value(coord.Ref{Row: 0, Col: 1}))
	assert.Contains(t, out, "(ok) > ")
	assert.Contains(t, out, "bye")
}

func TestRun_StatusReporting(t *testing.T) {
	_, out := runScript(t, testConfig(),
		"A1=gibberish",
		"A1=ZZZ9999",
		"A1=A1",
		"bogus command",
	)

	assert.Contains(t, out, "(unrecognized cmd) > ")
	assert.Contains(t, out, "(Invalid range) > ")
	assert.Contains(t, out, "(cycle detected) > ")
}

func TestRun_ScrollCommands(t *testing.T) {
	a, _ := runScript(t, testConfig(),
		"scroll_to A51",
		"w",
	)
	assert.Equal(t, coord.Ref{Row: 40, Col: 0}, a.view.Start())

	a, _ = runScript(t, testConfig(), "s", "d")
	assert.Equal(t, coord.Ref{Row: 10, Col: 10}, a.view.Start())

	// Out-of-bounds targets are rejected without moving the window.
	a, out := runScript(t, testConfig(), "scroll_to ZZ900")
	assert.Equal(t, coord.Ref{}, a.view.Start())
	assert.Contains(t, out, "(Invalid range) > ")
}

func TestRun_OutputToggle(t *testing.T) {
	_, out := runScript(t, testConfig(),
		"disable_output",
		"A1=123456789",
	)
	assert.NotContains(t, out, "123456789")

	_, out = runScript(t, testConfig(),
		"A1=123456789",
	)
	assert.Contains(t, out, "123456789")
}

func TestRun_Clear(t *testing.T) {
	a, _ := runScript(t, testConfig(),
		"A1=9",
		"clear A1",
	)
	assert.Equal(t, sheet.IntValue(0), a.Engine().Value(coord.Ref{}))
	assert.Equal(t, "", a.Engine().FormulaText(coord.Ref{}))
}

func TestRun_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	cfg := testConfig()
	cfg.Rows = 2
	cfg.Cols = 2

	_, out := runScript(t, cfg,
		"A1=1",
		"B2=A1+1",
		"export "+path,
	)
	assert.NotContains(t, out, "export failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,0\n0,2\n", string(data))
}

func TestNewApp_SeedFile(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.hcl")
	require.NoError(t, os.WriteFile(seed, []byte(`
sheet {
  rows = 20
  cols = 5
}

cell "A1" { formula = "5" }
cell "B1" { formula = "A1+1" }
`), 0o644))

	cfg := testConfig()
	cfg.GridPath = seed

	a, err := newApp(strings.NewReader(""), &bytes.Buffer{}, cfg, eval.NoopSleeper{})
	require.NoError(t, err)

	rows, cols := a.Engine().Dims()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, sheet.IntValue(6), a.Engine().Value(coord.Ref{Row: 0, Col: 1}))
}

func TestNewApp_SeedFileErrors(t *testing.T) {
	cfg := testConfig()
	cfg.GridPath = filepath.Join(t.TempDir(), "missing.hcl")

	_, err := newApp(strings.NewReader(""), &bytes.Buffer{}, cfg, eval.NoopSleeper{})
	assert.ErrorContains(t, err, "failed to load grid file")

	bad := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte(`cell "A1" { formula = "A1" }`), 0o644))
	cfg.GridPath = bad

	_, err = newApp(strings.NewReader(""), &bytes.Buffer{}, cfg, eval.NoopSleeper{})
	assert.ErrorContains(t, err, "seed cell A1")
}
