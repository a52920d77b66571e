package batch

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// maxRange bounds how many values one "a..b" term may expand to.
const maxRange = 1 << 20

// ParseSizes parses a comma separated list of sizes and inclusive ranges,
// e.g. "10,20,100..104".
func ParseSizes(s string) ([]int, error) {
	var out []int
	for _, term := range splitTerms(s) {
		lo, hi, isRange := strings.Cut(term, "..")
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("batch: size %q: %w", term, err)
		}
		if !isRange {
			out = append(out, a)
			continue
		}
		b, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("batch: size %q: %w", term, err)
		}
		// b-a is exact as an unsigned difference even when the int subtraction wraps.
		if b < a || uint(b-a) >= maxRange {
			return nil, fmt.Errorf("batch: bad size range %q", term)
		}
		for v := a; ; v++ {
			out = append(out, v)
			if v == b {
				break
			}
		}
	}
	return out, nil
}

// SizeRange returns from, from+step, ... up to and including to.
func SizeRange(from, to, step int) ([]int, error) {
	if step <= 0 || to < from {
		return nil, fmt.Errorf("batch: bad range %d..%d step %d", from, to, step)
	}
	var out []int
	for v := from; ; v += step {
		out = append(out, v)
		if uint(to-v) < uint(step) {
			break
		}
	}
	return out, nil
}

// ParseSeeds is ParseSizes for arbitrary precision seeds, e.g. "0..9,42,-3".
func ParseSeeds(s string) ([]*big.Int, error) {
	var out []*big.Int
	for _, term := range splitTerms(s) {
		lo, hi, isRange := strings.Cut(term, "..")
		a, ok := new(big.Int).SetString(lo, 10)
		if !ok {
			return nil, fmt.Errorf("batch: seed %q is not an integer", term)
		}
		if !isRange {
			out = append(out, a)
			continue
		}
		b, ok := new(big.Int).SetString(hi, 10)
		if !ok {
			return nil, fmt.Errorf("batch: seed %q is not an integer", term)
		}
		span := new(big.Int).Sub(b, a)
		if span.Sign() < 0 || span.Cmp(big.NewInt(maxRange)) >= 0 {
			return nil, fmt.Errorf("batch: bad seed range %q", term)
		}
		for v := new(big.Int).Set(a); v.Cmp(b) <= 0; v = new(big.Int).Add(v, big.NewInt(1)) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Jobs is the cross product of sizes and seeds, sizes outermost.
func Jobs(sizes []int, seeds []*big.Int) []Job {
	out := make([]Job, 0, len(sizes)*len(seeds))
	for _, n := range sizes {
		for _, s := range seeds {
			out = append(out, Job{N: n, Seed: s})
		}
	}
	return out
}

func splitTerms(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
