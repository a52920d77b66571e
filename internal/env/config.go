// Package env loads generator settings from SDGEN_* environment variables.
// Command-line flags override whatever is loaded here.
package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/sdchallenge/sdgen/sd"
	"github.com/sdchallenge/sdgen/sdfile"
)

// Config is the environment-level configuration shared by the commands.
type Config struct {
	Dir            string  `env:"SDGEN_DIR"`
	RNG            string  `env:"SDGEN_RNG" envDefault:"mt19937"`
	Weight         string  `env:"SDGEN_WEIGHT" envDefault:"float"`
	Workers        int     `env:"SDGEN_WORKERS" envDefault:"4"`
	LogLevel       string  `env:"SDGEN_LOG_LEVEL" envDefault:"info"`
	MaxMemFraction float64 `env:"SDGEN_MAX_MEM_FRACTION" envDefault:"0.5"`
	MetricsFile    string  `env:"SDGEN_METRICS_FILE"`
}

// Load parses the environment and fills defaults that depend on the process
// (the output directory).
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Dir == "" {
		d, err := sdfile.DefaultDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Dir = d
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("parse env: SDGEN_WORKERS must be positive, got %d", cfg.Workers)
	}
	if cfg.MaxMemFraction < 0 || cfg.MaxMemFraction > 1 {
		return Config{}, fmt.Errorf("parse env: SDGEN_MAX_MEM_FRACTION must be in [0,1], got %g", cfg.MaxMemFraction)
	}
	if _, err := cfg.SourceKind(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.WeightMode(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SourceKind resolves RNG.
func (c Config) SourceKind() (sd.SourceKind, error) { return sd.ParseSourceKind(c.RNG) }

// WeightMode resolves Weight.
func (c Config) WeightMode() (sd.WeightMode, error) { return sd.ParseWeightMode(c.Weight) }
