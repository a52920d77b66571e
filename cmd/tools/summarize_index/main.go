package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sdchallenge/sdgen/internal/batch"
	"github.com/sdchallenge/sdgen/sdfile"
)

type sizeSummary struct {
	N, K, W int
	count   int
	minSeed string
	maxSeed string
}

func main() {
	var indexPath, outPath string
	flag.StringVar(&indexPath, "index", "SD/index.csv", "path to index.csv written by sdgen-batch")
	flag.StringVar(&outPath, "out", "-", "output markdown path, - for stdout")
	flag.Parse()

	f, err := os.Open(indexPath)
	if err != nil {
		fatalf("open %s: %v", indexPath, err)
	}
	recs, err := batch.ReadIndex(f)
	_ = f.Close()
	if err != nil {
		fatalf("%v", err)
	}
	sums := summarize(recs)

	if outPath == "-" {
		err = writeReport(os.Stdout, indexPath, sums)
	} else {
		err = sdfile.WriteAtomic(outPath, func(w io.Writer) error { return writeReport(w, indexPath, sums) })
	}
	if err != nil {
		fatalf("write %s: %v", outPath, err)
	}
	if outPath != "-" {
		fmt.Printf("wrote %s\n", outPath)
	}
}

// summarize groups records by n. Records from ReadIndex after WriteIndex are
// already sorted by n then seed.
func summarize(recs []batch.Record) []sizeSummary {
	byN := map[int]*sizeSummary{}
	for _, r := range recs {
		s, ok := byN[r.N]
		if !ok {
			s = &sizeSummary{N: r.N, K: r.K, W: r.W, minSeed: r.Seed.String()}
			byN[r.N] = s
		}
		s.count++
		s.maxSeed = r.Seed.String()
	}
	out := make([]sizeSummary, 0, len(byN))
	for _, s := range byN {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].N < out[j].N })
	return out
}

func writeReport(out io.Writer, source string, sums []sizeSummary) error {
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "# Instance summary")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Source: %s. One row per matrix size; w is the target weight of every instance of that size.\n", source)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "| n | k | w | instances | seeds |")
	fmt.Fprintln(w, "|---:|---:|---:|---:|---|")
	for _, s := range sums {
		seeds := s.minSeed
		if s.count > 1 {
			seeds += ".." + s.maxSeed
		}
		fmt.Fprintf(w, "| %d | %d | %d | %d | %s |\n", s.N, s.K, s.W, s.count, seeds)
	}
	return w.Flush()
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
