package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdchallenge/sdgen/internal/batch"
)

func TestSummarize(t *testing.T) {
	recs, err := batch.ReadIndex(strings.NewReader(`n,k,w,seed,file,sha256
6,3,4,-1,SD_6_-1,aa
6,3,4,0,SD_6_0,bb
6,3,4,7,SD_6_7,cc
10,5,4,42,SD_10_42,dd
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "index.csv", summarize(recs)))
	out := buf.String()
	require.Contains(t, out, "| 6 | 3 | 4 | 3 | -1..7 |\n")
	require.Contains(t, out, "| 10 | 5 | 4 | 1 | 42 |\n")
	require.Less(t, strings.Index(out, "| 6 |"), strings.Index(out, "| 10 |"))
}
