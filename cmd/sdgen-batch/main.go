// Command sdgen-batch generates instances for many (n, seed) pairs in parallel
// and maintains index.csv in the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sdchallenge/sdgen/internal/batch"
	"github.com/sdchallenge/sdgen/internal/env"
	"github.com/sdchallenge/sdgen/internal/logging"
	"github.com/sdchallenge/sdgen/internal/memguard"
	"github.com/sdchallenge/sdgen/sd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := env.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fs := flag.NewFlagSet("sdgen-batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		sizes    = fs.String("n", "", "sizes, e.g. 10,20,100..110")
		from     = fs.Int("from", 0, "first size (with -to/-step, instead of -n)")
		to       = fs.Int("to", 0, "last size, inclusive")
		step     = fs.Int("step", 2, "size step")
		seeds    = fs.String("seeds", "0", "seeds, e.g. 0..9,42,-3")
		dir      = fs.String("dir", cfg.Dir, "existing output directory")
		workers  = fs.Int("workers", cfg.Workers, "parallel jobs")
		rng      = fs.String("rng", cfg.RNG, "bit source: mt19937 or go")
		exact    = fs.Bool("exact", cfg.Weight == string(sd.WeightExact), "compute the target weight with exact integers")
		manifest = fs.Bool("manifest", false, "write JSON manifests")
		binary   = fs.Bool("binary", false, "write packed binary copies (.sdb)")
		noIndex  = fs.Bool("no-index", false, "do not update index.csv")
		metrics  = fs.String("metrics", cfg.MetricsFile, "write Prometheus metrics to this textfile")
		level    = fs.String("log", cfg.LogLevel, "log level")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	log, err := logging.New(stderr, *level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var ns []int
	switch {
	case *sizes != "":
		ns, err = batch.ParseSizes(*sizes)
	case *to > 0:
		ns, err = batch.SizeRange(*from, *to, *step)
	default:
		err = fmt.Errorf("one of -n or -to is required")
	}
	if err != nil {
		log.Error("bad sizes", "err", err)
		return 2
	}
	ss, err := batch.ParseSeeds(*seeds)
	if err != nil {
		log.Error("bad seeds", "err", err)
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

	m := batch.NewMetrics()
	jobs := batch.Jobs(ns, ss)
	log.Info("starting batch", "dir", *dir, "jobs", len(jobs), "workers", *workers)
	_, runErr := batch.Run(ctx, batch.Config{
		Dir:      *dir,
		Workers:  *workers,
		Source:   kind,
		Weight:   mode,
		Manifest: *manifest,
		Binary:   *binary,
		NoIndex:  *noIndex,
		Guard:    memguard.New(cfg.MaxMemFraction),
		Metrics:  m,
		Logger:   log,
	}, jobs)
	if *metrics != "" {
		if err := m.WriteTextfile(*metrics); err != nil {
			log.Error("write metrics", "path", *metrics, "err", err)
			return 1
		}
	}
	if runErr != nil {
		log.Error("batch failed", "err", runErr)
		return 1
	}
	return 0
}
