package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSortsIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	require.NoError(t, os.WriteFile(path, []byte("n,k,w,seed,file,sha256\n"+
		"10,5,4,42,SD_10_42,aa\n"+
		"6,3,4,7,SD_6_7,bb\n"+
		"6,3,4,-1,SD_6_-1,cc\n"+
		"10,5,4,42,SD_10_42,dd\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-path", path}, &stdout, &stderr), stderr.String())
	require.Equal(t, "sorted "+path+" (3 rows) by n,seed\n", stdout.String())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "n,k,w,seed,file,sha256\n"+
		"6,3,4,-1,SD_6_-1,cc\n"+
		"6,3,4,7,SD_6_7,bb\n"+
		"10,5,4,42,SD_10_42,dd\n", string(raw))
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run([]string{"-path", filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
}
