package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	prom := filepath.Join(t.TempDir(), "sdgen.prom")
	var stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-dir", dir, "-n", "6,10", "-seeds", "0,42", "-workers", "2", "-metrics", prom, "-log", "error",
	}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for _, name := range []string{"SD_6_0", "SD_6_42", "SD_10_0", "SD_10_42", "index.csv"} {
		require.FileExists(t, filepath.Join(dir, name))
	}
	want, err := os.ReadFile(filepath.Join("..", "..", "sd", "testdata", "SD_6_0"))
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "SD_6_0"))
	require.NoError(t, err)
	require.Equal(t, string(want), string(got))

	raw, err := os.ReadFile(prom)
	require.NoError(t, err)
	require.Contains(t, string(raw), "sdgen_instances_total 4")
}

func TestRunBatchRange(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-dir", dir, "-from", "2", "-to", "6", "-step", "2", "-seeds", "1", "-no-index", "-log", "error"}, &stderr)
	require.Equal(t, 0, code, stderr.String())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestRunBatchErrors(t *testing.T) {
	var stderr bytes.Buffer
	require.Equal(t, 2, run(context.Background(), []string{"-seeds", "1"}, &stderr))
	require.Equal(t, 2, run(context.Background(), []string{"-n", "x"}, &stderr))
	require.Equal(t, 2, run(context.Background(), []string{"-n", "4", "extra"}, &stderr))
	missing := filepath.Join(t.TempDir(), "SD")
	require.Equal(t, 1, run(context.Background(), []string{"-dir", missing, "-n", "4"}, &stderr))
}
