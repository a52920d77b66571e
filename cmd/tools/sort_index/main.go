package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sdchallenge/sdgen/internal/batch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sort_index", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var path string
	fs.StringVar(&path, "path", "SD/index.csv", "path to index.csv")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	n, err := batch.SortIndex(path)
	if err != nil {
		fmt.Fprintf(stderr, "sort %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintf(stdout, "sorted %s (%d rows) by n,seed\n", path, n)
	return 0
}
