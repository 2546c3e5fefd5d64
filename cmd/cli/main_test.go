package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(strings.NewReader(""), out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(strings.NewReader(""), out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_BadSeedFile(t *testing.T) {
	t.Parallel()

	// A seed file with a syntax error must surface as a startup error, not
	// a crash.
	invalidHCL := `cell "A1" { formula = `
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "seed.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600))

	out := &bytes.Buffer{}
	err := run(strings.NewReader(""), out, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load grid file")
}

func TestRun_Console(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("A1=41\nB1=A1+1\nq\n")
	out := &bytes.Buffer{}

	err := run(in, out, []string{"-rows", "10", "-cols", "10"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "42")
	require.Contains(t, out.String(), "bye")
}
