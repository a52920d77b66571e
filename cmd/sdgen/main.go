// Command sdgen writes one Syndrome Decoding instance to SD/SD_<n>_<seed>.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/sdchallenge/sdgen/internal/env"
	"github.com/sdchallenge/sdgen/internal/logging"
	"github.com/sdchallenge/sdgen/internal/memguard"
	"github.com/sdchallenge/sdgen/sd"
	"github.com/sdchallenge/sdgen/sdfile"
)

const usageText = `ERROR the program expects 2 integer arguments: 'n' and 'seed'.
 - 'n' is an integer corresponding to the size of the matrix: H will be of size n/2 * n
 - 'seed' is an integer corresponding to the initial value of the random seed
This program generates an instance of the syndrome decoding problem.
This matrix H is given in systematic form.
The instance is stored in 'SD/SD_n_seed'.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := env.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fs := flag.NewFlagSet("sdgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir      = fs.String("dir", cfg.Dir, "existing output directory")
		caseNum  = fs.Int("case", 1, "number printed in the TEST CASE header")
		rng      = fs.String("rng", cfg.RNG, "bit source: mt19937 or go")
		exact    = fs.Bool("exact", cfg.Weight == string(sd.WeightExact), "compute the target weight with exact integers")
		manifest = fs.Bool("manifest", false, "also write a JSON manifest next to the instance")
		binary   = fs.Bool("binary", false, "also write the packed binary form (.sdb)")
		level    = fs.String("log", cfg.LogLevel, "log level")
	)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	n, seed, ok := parseArgs(fs.Args())
	if !ok {
		fmt.Fprint(stderr, usageText)
		return 1
	}

	log, err := logging.New(stderr, *level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	kind, err := sd.ParseSourceKind(*rng)
	if err != nil {
		log.Error("bad -rng", "err", err)
		return 1
	}
	mode := sd.WeightFloat
	if *exact {
		mode = sd.WeightExact
	}
	if err := memguard.New(cfg.MaxMemFraction).Check(n); err != nil {
		log.Error("refusing size", "n", n, "err", err)
		return 1
	}

	res, err := sdfile.Generate(n, seed, sdfile.Options{
		Dir:      *dir,
		Case:     *caseNum,
		Source:   kind,
		Weight:   mode,
		Manifest: *manifest,
		Binary:   *binary,
	})
	if err != nil {
		log.Error("generate failed", "n", n, "seed", seed, "err", err)
		return 1
	}
	log.Debug("wrote instance", "path", res.Path, "k", res.Instance.K, "w", res.Instance.W, "sha256", res.SHA256)
	return 0
}

// parseArgs reads "<n> <seed>". Both must be base-10 integers; the seed may be
// arbitrarily large.
func parseArgs(args []string) (int, *big.Int, bool) {
	if len(args) != 2 {
		return 0, nil, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, nil, false
	}
	seed, ok := new(big.Int).SetString(strings.TrimSpace(args[1]), 10)
	if !ok {
		return 0, nil, false
	}
	return n, seed, true
}
