// Command sdgen-bundle writes several instances into one file as test cases
// 1..m followed by "### END ###".
package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
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
	fs := flag.NewFlagSet("sdgen-bundle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		out   = fs.String("o", "-", "output file, - for stdout")
		rng   = fs.String("rng", cfg.RNG, "bit source: mt19937 or go")
		exact = fs.Bool("exact", cfg.Weight == string(sd.WeightExact), "compute the target weight with exact integers")
		level = fs.String("log", cfg.LogLevel, "log level")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sdgen-bundle [flags] n:seed [n:seed ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	log, err := logging.New(stderr, *level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	kind, err := sd.ParseSourceKind(*rng)
	if err != nil {
		log.Error("bad -rng", "err", err)
		return 2
	}
	mode := sd.WeightFloat
	if *exact {
		mode = sd.WeightExact
	}

	ins := make([]*sd.Instance, 0, fs.NArg())
	for i, a := range fs.Args() {
		n, seed, err := parsePair(a)
		if err != nil {
			log.Error("bad argument", "arg", a, "err", err)
			return 2
		}
		in, err := sd.GenerateSeed(n, seed, kind, sd.WithCase(i+1), sd.WithWeightMode(mode))
		if err != nil {
			log.Error("generate failed", "n", n, "seed", seed, "err", err)
			return 1
		}
		ins = append(ins, in)
	}

	if *out == "-" {
		err = sd.WriteBundle(stdout, ins)
	} else {
		err = sdfile.WriteAtomic(*out, func(w io.Writer) error { return sd.WriteBundle(w, ins) })
	}
	if err != nil {
		log.Error("write bundle", "out", *out, "err", err)
		return 1
	}
	log.Info("wrote bundle", "out", *out, "cases", len(ins))
	return 0
}

func parsePair(s string) (int, *big.Int, error) {
	ns, ss, ok := strings.Cut(s, ":")
	if !ok {
		return 0, nil, fmt.Errorf("want n:seed")
	}
	n, err := strconv.Atoi(ns)
	if err != nil {
		return 0, nil, err
	}
	seed, ok := new(big.Int).SetString(ss, 10)
	if !ok {
		return 0, nil, fmt.Errorf("seed %q is not an integer", ss)
	}
	return n, seed, nil
}
