// Command sdcheck validates instance files (text, bundles or .sdb) and,
// optionally, candidate solutions against them.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sdchallenge/sdgen/internal/env"
	"github.com/sdchallenge/sdgen/internal/logging"
	"github.com/sdchallenge/sdgen/sd"
	"github.com/sdchallenge/sdgen/sdfile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := env.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fs := flag.NewFlagSet("sdcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		solution = fs.String("e", "", "file with one candidate error vector per test case")
		level    = fs.String("log", cfg.LogLevel, "log level")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sdcheck [-e solution] file [file ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 || (*solution != "" && fs.NArg() != 1) {
		fs.Usage()
		return 2
	}
	log, err := logging.New(stderr, *level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	for _, path := range fs.Args() {
		ins, err := check(path)
		if err != nil {
			log.Error("invalid instance file", "path", path, "err", err)
			return 1
		}
		if *solution != "" {
			if err := checkSolutions(*solution, ins); err != nil {
				log.Error("solution rejected", "path", path, "solution", *solution, "err", err)
				return 1
			}
		}
		for _, in := range ins {
			fmt.Fprintf(stdout, "ok %s case=%d k=%d n=%d w=%d\n", path, in.Case, in.K, in.N, in.W)
		}
	}
	return 0
}

func check(path string) ([]*sd.Instance, error) {
	ins, err := sdfile.Load(path)
	if err != nil {
		return nil, err
	}
	if len(ins) == 0 {
		return nil, sd.ErrNoInstance
	}
	for _, in := range ins {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("case %d: %w", in.Case, err)
		}
	}
	m, err := sdfile.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	if m != nil {
		if len(ins) != 1 {
			return nil, fmt.Errorf("manifest next to a bundle of %d cases", len(ins))
		}
		if err := m.Verify(ins[0]); err != nil {
			return nil, err
		}
	}
	return ins, nil
}

// checkSolutions reads one bit vector per non-blank line, in case order.
func checkSolutions(path string, ins []*sd.Instance) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64<<20)
	i := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if i >= len(ins) {
			return fmt.Errorf("more solutions than cases (%d)", len(ins))
		}
		e, err := sd.ParseBits(line)
		if err != nil {
			return fmt.Errorf("solution %d: %w", i+1, err)
		}
		if err := ins[i].CheckSolution(e); err != nil {
			return fmt.Errorf("case %d: %w", ins[i].Case, err)
		}
		i++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if i != len(ins) {
		return fmt.Errorf("%d solutions for %d cases", i, len(ins))
	}
	return nil
}
