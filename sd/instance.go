// Package sd generates Syndrome Decoding instances over GF(2): a parity-check
// matrix in systematic form [I_k | H], a syndrome s and a target weight w.
package sd

import (
	"errors"
	"fmt"
	"math/big"
)

// Instance is one generated SD instance. Rows holds the k x n matrix [I_k | H],
// one bit per byte.
type Instance struct {
	Case int
	K, N int
	Rows [][]uint8
	S    []uint8
	W    int
}

// R is the number of columns of the random block H.
func (in *Instance) R() int { return in.N - in.K }

var ErrInvalidCase = errors.New("sd: case number must be positive")

type genConfig struct {
	caseNumber int
	weight     WeightMode
}

// Option configures Generate.
type Option func(*genConfig)

// WithCase sets the number printed in the "### TEST CASE" header. Default 1.
func WithCase(c int) Option { return func(g *genConfig) { g.caseNumber = c } }

// WithWeightMode selects float (default) or exact dGV arithmetic.
func WithWeightMode(m WeightMode) Option { return func(g *genConfig) { g.weight = m } }

// Generate builds the instance for size n from src. Bits are drawn in a fixed
// order: (n-k)*k bits filling H^T row by row, then k bits of s.
func Generate(n int, src BitSource, opts ...Option) (*Instance, error) {
	cfg := genConfig{caseNumber: 1, weight: WeightFloat}
	for _, o := range opts {
		o(&cfg)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, n)
	}
	if cfg.caseNumber < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCase, cfg.caseNumber)
	}
	k := n / 2
	r := n - k
	w, err := TargetWeight(n, k, cfg.weight)
	if err != nil {
		return nil, err
	}

	ht := make([][]uint8, r)
	for j := range ht {
		row := make([]uint8, k)
		for i := range row {
			row[i] = src.Bit()
		}
		ht[j] = row
	}
	s := make([]uint8, k)
	for i := range s {
		s[i] = src.Bit()
	}

	rows := make([][]uint8, k)
	for i := 0; i < k; i++ {
		row := make([]uint8, n)
		row[i] = 1
		for j := 0; j < r; j++ {
			row[k+j] = ht[j][i]
		}
		rows[i] = row
	}
	return &Instance{Case: cfg.caseNumber, K: k, N: n, Rows: rows, S: s, W: w}, nil
}

// GenerateSeed seeds a new source of the given kind and generates from it.
func GenerateSeed(n int, seed *big.Int, kind SourceKind, opts ...Option) (*Instance, error) {
	src, err := NewBitSource(kind, seed)
	if err != nil {
		return nil, err
	}
	return Generate(n, src, opts...)
}
