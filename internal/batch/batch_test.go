package batch

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/sdchallenge/sdgen/internal/logging"
	"github.com/sdchallenge/sdgen/internal/memguard"
	"github.com/sdchallenge/sdgen/sd"
	"github.com/sdchallenge/sdgen/sdfile"
)

func TestRunMatchesSingleGeneration(t *testing.T) {
	dir := t.TempDir()
	seeds, err := ParseSeeds("0..3,42,-3")
	require.NoError(t, err)
	jobs := Jobs([]int{10, 16}, seeds)
	m := NewMetrics()

	recs, err := Run(context.Background(), Config{
		Dir: dir, Workers: 3, Metrics: m, Logger: logging.Discard(),
	}, jobs)
	require.NoError(t, err)
	require.Len(t, recs, len(jobs))

	for i, r := range recs {
		if i > 0 {
			prev := recs[i-1]
			require.True(t, prev.N < r.N || (prev.N == r.N && prev.Seed.Cmp(r.Seed) < 0), "records sorted")
		}
		want, err := sd.GenerateSeed(r.N, r.Seed, sd.SourceMT19937)
		require.NoError(t, err)
		got, err := sdfile.Load(filepath.Join(dir, r.File))
		require.NoError(t, err)
		require.Equal(t, []*sd.Instance{want}, got)
		_, sha := want.Fingerprint()
		require.Equal(t, sha, r.SHA256)
	}

	require.InDelta(t, float64(len(jobs)), testutil.ToFloat64(m.instances), 0)
	require.Zero(t, testutil.ToFloat64(m.errors))
	require.InDelta(t, 4, testutil.ToFloat64(m.weight.WithLabelValues("10")), 0)
	require.Equal(t, 2, testutil.CollectAndCount(m.weight))

	f, err := os.Open(filepath.Join(dir, IndexName))
	require.NoError(t, err)
	defer f.Close()
	idx, err := ReadIndex(f)
	require.NoError(t, err)
	require.Equal(t, rows(recs), rows(idx))
}

func rows(recs []Record) [][]string {
	out := make([][]string, len(recs))
	for i, r := range recs {
		out[i] = r.fields()
	}
	return out
}

func TestRunGoldenFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), Config{Dir: dir, Logger: logging.Discard()},
		[]Job{{N: 10, Seed: big.NewInt(42)}})
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "SD_10_42"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("..", "..", "sd", "testdata", "SD_10_42"))
	require.NoError(t, err)
	require.Equal(t, string(want), string(got))
}

func TestRunMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "SD")
	_, err := Run(context.Background(), Config{Dir: dir}, []Job{{N: 4, Seed: big.NewInt(1)}})
	require.ErrorIs(t, err, sdfile.ErrNoOutputDir)
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunFailureCounted(t *testing.T) {
	dir := t.TempDir()
	m := NewMetrics()
	_, err := Run(context.Background(), Config{
		Dir: dir, Workers: 1, Metrics: m, Logger: logging.Discard(),
		Guard: memguard.NewWithTotal(1000, 0.5),
	}, []Job{{N: 10, Seed: big.NewInt(1)}, {N: 64, Seed: big.NewInt(1)}})
	require.ErrorIs(t, err, memguard.ErrTooLarge)
	require.Equal(t, float64(1), testutil.ToFloat64(m.errors))
	require.Equal(t, float64(1), testutil.ToFloat64(m.instances))
	_, statErr := os.Stat(filepath.Join(dir, "SD_64_1"))
	require.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "SD_10_1"))
	require.NoError(t, statErr)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs, err := Run(ctx, Config{Dir: t.TempDir(), Logger: logging.Discard()},
		[]Job{{N: 4, Seed: big.NewInt(1)}, {N: 6, Seed: big.NewInt(1)}})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, recs)
}

func TestWriteIndexMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexName)
	a := Record{N: 10, K: 5, W: 4, Seed: big.NewInt(42), File: "SD_10_42", SHA256: "aa"}
	b := Record{N: 6, K: 3, W: 4, Seed: big.NewInt(0), File: "SD_6_0", SHA256: "bb"}
	require.NoError(t, WriteIndex(path, []Record{a}))
	a2 := a
	a2.SHA256 = "cc"
	require.NoError(t, WriteIndex(path, []Record{b, a2}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "n,k,w,seed,file,sha256\n6,3,4,0,SD_6_0,bb\n10,5,4,42,SD_10_42,cc\n", string(raw))
}

func TestSortIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexName)
	require.NoError(t, os.WriteFile(path, []byte("n,k,w,seed,file,sha256\n10,5,4,42,SD_10_42,old\n6,3,4,0,SD_6_0,bb\n10,5,4,42,SD_10_42,new\n"), 0o644))
	n, err := SortIndex(path)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "n,k,w,seed,file,sha256\n6,3,4,0,SD_6_0,bb\n10,5,4,42,SD_10_42,new\n", string(raw))

	_, err = SortIndex(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadIndexErrors(t *testing.T) {
	_, err := ReadIndex(strings.NewReader("n,k,w\n1,0,2\n"))
	require.Error(t, err)
	_, err = ReadIndex(strings.NewReader("n,k,w,seed,file,sha256\nx,0,2,1,f,s\n"))
	require.Error(t, err)
	recs, err := ReadIndex(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestMetricsTextfile(t *testing.T) {
	m := NewMetrics()
	m.observe(10, 4, 0.001)
	m.fail()
	path := filepath.Join(t.TempDir(), "sdgen.prom")
	require.NoError(t, m.WriteTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, name := range []string{"sdgen_instances_total 1", "sdgen_generate_errors_total 1", `sdgen_target_weight{n="10"} 4`, "sdgen_generate_seconds_count 1"} {
		require.Contains(t, string(raw), name)
	}
}
