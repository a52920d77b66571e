package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCSVToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-from", "2", "-to", "6", "-step", "2"}, &stdout, &stderr), stderr.String())
	require.Equal(t, "n,k,dgv,dgv_exact,w,w_exact\n2,1,2,2,3,3\n4,2,2,2,3,3\n6,3,3,3,4,4\n", stdout.String())
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "curve.csv")
	pngPath := filepath.Join(dir, "curve.png")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-from", "2", "-to", "40", "-csv", csvPath, "-png", pngPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Empty(t, stdout.String())

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, bytes.Split(bytes.TrimSpace(raw), []byte("\n")), 21)
	png, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 2, run([]string{"-from", "x"}, &stdout, &stderr))
	require.Equal(t, 1, run([]string{"-from", "10", "-to", "2"}, &stdout, &stderr))
	missing := filepath.Join(t.TempDir(), "nope", "curve.csv")
	require.Equal(t, 1, run([]string{"-to", "4", "-csv", missing}, &stdout, &stderr))
}
