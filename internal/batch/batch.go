// Package batch generates many instances into one directory with a bounded
// worker pool, keeps an index of what was written and counts it in
// Prometheus metrics.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sdchallenge/sdgen/internal/memguard"
	"github.com/sdchallenge/sdgen/sd"
	"github.com/sdchallenge/sdgen/sdfile"
)

// Job is one (n, seed) pair.
type Job struct {
	N    int
	Seed *big.Int
}

func (j Job) String() string { return sdfile.FileName(j.N, j.Seed) }

// Config controls Run.
type Config struct {
	Dir      string
	Workers  int
	Source   sd.SourceKind
	Weight   sd.WeightMode
	Manifest bool
	Binary   bool
	NoIndex  bool

	Guard   *memguard.Guard // nil: no memory check
	Metrics *Metrics        // nil: no metrics
	Logger  *slog.Logger    // nil: slog.Default()
}

// Run generates every job. Each job owns its own bit source, so results do not
// depend on scheduling. The first failure cancels jobs not yet started and is
// returned; records of the jobs that did complete are still indexed.
func Run(ctx context.Context, cfg Config, jobs []Job) ([]Record, error) {
	if err := sdfile.CheckDir(cfg.Dir); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu   sync.Mutex
		recs []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := runJob(cfg, job)
			if err != nil {
				cfg.Metrics.fail()
				log.Error("generate failed", "job", job, "err", err)
				return fmt.Errorf("%s: %w", job, err)
			}
			log.Debug("generated", "file", rec.File, "n", rec.N, "k", rec.K, "w", rec.W)
			mu.Lock()
			recs = append(recs, rec)
			mu.Unlock()
			return nil
		})
	}
	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	sortRecords(recs)
	if !cfg.NoIndex && len(recs) > 0 {
		if err := WriteIndex(filepath.Join(cfg.Dir, IndexName), recs); err != nil && runErr == nil {
			runErr = err
		}
	}
	log.Info("batch done", "written", len(recs), "jobs", len(jobs))
	return recs, runErr
}

func runJob(cfg Config, job Job) (Record, error) {
	if err := cfg.Guard.Check(job.N); err != nil {
		return Record{}, err
	}
	start := time.Now()
	res, err := sdfile.Generate(job.N, job.Seed, sdfile.Options{
		Dir:      cfg.Dir,
		Source:   cfg.Source,
		Weight:   cfg.Weight,
		Manifest: cfg.Manifest,
		Binary:   cfg.Binary,
	})
	if err != nil {
		return Record{}, err
	}
	in := res.Instance
	cfg.Metrics.observe(in.N, in.W, time.Since(start).Seconds())
	seed := job.Seed
	if seed == nil {
		seed = new(big.Int)
	}
	return Record{
		N: in.N, K: in.K, W: in.W, Seed: seed,
		File: filepath.Base(res.Path), SHA256: res.SHA256,
	}, nil
}
