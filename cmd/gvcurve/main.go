// Command gvcurve tabulates d_GV and the target weight for a range of sizes
// and optionally plots w(n).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sdchallenge/sdgen/internal/gvplot"
	"github.com/sdchallenge/sdgen/sdfile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gvcurve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var from, to, step int
	var csvOut, pngOut string
	fs.IntVar(&from, "from", 2, "first n")
	fs.IntVar(&to, "to", 2048, "last n (inclusive)")
	fs.IntVar(&step, "step", 2, "n step")
	fs.StringVar(&csvOut, "csv", "-", "CSV output path, - for stdout")
	fs.StringVar(&pngOut, "png", "", "optional PNG plot path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	pts, err := gvplot.Curve(from, to, step)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if csvOut == "-" {
		err = gvplot.WriteCSV(stdout, pts)
	} else {
		err = sdfile.WriteAtomic(csvOut, func(w io.Writer) error { return gvplot.WriteCSV(w, pts) })
	}
	if err != nil {
		fmt.Fprintf(stderr, "write csv: %v\n", err)
		return 1
	}

	if pngOut != "" {
		if err := sdfile.WriteAtomic(pngOut, func(w io.Writer) error { return gvplot.PlotAndStore(pts, w) }); err != nil {
			fmt.Fprintf(stderr, "write png: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "wrote %s (%d points)\n", pngOut, len(pts))
	}
	return 0
}
