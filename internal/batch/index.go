package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sdchallenge/sdgen/sdfile"
)

// IndexName is the index file written next to the instances.
const IndexName = "index.csv"

var indexHeader = []string{"n", "k", "w", "seed", "file", "sha256"}

// Record is one row of index.csv.
type Record struct {
	N, K, W int
	Seed    *big.Int
	File    string
	SHA256  string
}

func (r Record) fields() []string {
	return []string{
		strconv.Itoa(r.N), strconv.Itoa(r.K), strconv.Itoa(r.W),
		r.Seed.String(), r.File, r.SHA256,
	}
}

func sortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].N != recs[j].N {
			return recs[i].N < recs[j].N
		}
		return recs[i].Seed.Cmp(recs[j].Seed) < 0
	})
}

// ReadIndex parses an index file. Leading blank lines are skipped and short
// rows ignored.
func ReadIndex(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("batch: read index: %w", err)
	}
	i0 := 0
	for i0 < len(rows) && (len(rows[i0]) == 0 || (len(rows[i0]) == 1 && strings.TrimSpace(rows[i0][0]) == "")) {
		i0++
	}
	if i0 >= len(rows) {
		return nil, nil
	}
	col := map[string]int{}
	for i, v := range rows[i0] {
		col[strings.TrimSpace(v)] = i
	}
	for _, h := range indexHeader {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("batch: index header %v lacks %q", rows[i0], h)
		}
	}

	var out []Record
	for i := i0 + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < len(indexHeader) {
			continue
		}
		get := func(h string) string { return strings.TrimSpace(row[col[h]]) }
		n, err1 := strconv.Atoi(get("n"))
		k, err2 := strconv.Atoi(get("k"))
		w, err3 := strconv.Atoi(get("w"))
		seed, ok := new(big.Int).SetString(get("seed"), 10)
		if err := errors.Join(err1, err2, err3); err != nil || !ok {
			return nil, fmt.Errorf("batch: index line %d: bad row %v", i+1, row)
		}
		out = append(out, Record{N: n, K: k, W: w, Seed: seed, File: get("file"), SHA256: get("sha256")})
	}
	return out, nil
}

// WriteIndex merges recs into path, replacing rows with the same (n, seed),
// sorts by n then seed and rewrites the file atomically.
func WriteIndex(path string, recs []Record) error {
	existing, err := readIndexFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return writeIndexFile(path, merge(existing, recs))
}

// SortIndex rewrites path with duplicate (n, seed) rows collapsed, the last
// one winning, and rows sorted. It returns the number of rows kept.
func SortIndex(path string) (int, error) {
	recs, err := readIndexFile(path)
	if err != nil {
		return 0, err
	}
	recs = merge(nil, recs)
	return len(recs), writeIndexFile(path, recs)
}

func readIndexFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIndex(f)
}

func merge(base, recs []Record) []Record {
	pos := map[string]int{}
	for i, r := range base {
		pos[recordKey(r)] = i
	}
	for _, r := range recs {
		if i, ok := pos[recordKey(r)]; ok {
			base[i] = r
			continue
		}
		pos[recordKey(r)] = len(base)
		base = append(base, r)
	}
	sortRecords(base)
	return base
}

func writeIndexFile(path string, recs []Record) error {
	return sdfile.WriteAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(indexHeader); err != nil {
			return err
		}
		for _, r := range recs {
			if err := cw.Write(r.fields()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func recordKey(r Record) string { return strconv.Itoa(r.N) + "/" + r.Seed.String() }
