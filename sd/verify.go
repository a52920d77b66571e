package sd

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	ErrShape    = errors.New("sd: malformed instance")
	ErrSolution = errors.New("sd: not a solution")
)

// Validate checks the systematic layout: k = n/2, k rows of n bits whose first
// k columns form the identity, k syndrome bits and a non-negative weight.
func (in *Instance) Validate() error {
	if in.N < 0 || in.K != in.N/2 {
		return fmt.Errorf("%w: k=%d n=%d", ErrShape, in.K, in.N)
	}
	if len(in.Rows) != in.K {
		return fmt.Errorf("%w: %d rows, want %d", ErrShape, len(in.Rows), in.K)
	}
	for i, row := range in.Rows {
		if len(row) != in.N {
			return fmt.Errorf("%w: row %d has %d bits, want %d", ErrShape, i, len(row), in.N)
		}
		for j, v := range row {
			if v > 1 {
				return fmt.Errorf("%w: row %d column %d is %d", ErrShape, i, j, v)
			}
			if j < in.K && (v == 1) != (i == j) {
				return fmt.Errorf("%w: row %d column %d breaks the identity block", ErrShape, i, j)
			}
		}
	}
	if len(in.S) != in.K {
		return fmt.Errorf("%w: syndrome has %d bits, want %d", ErrShape, len(in.S), in.K)
	}
	for i, v := range in.S {
		if v > 1 {
			return fmt.Errorf("%w: syndrome bit %d is %d", ErrShape, i, v)
		}
	}
	if in.W < 0 {
		return fmt.Errorf("%w: negative weight %d", ErrShape, in.W)
	}
	return nil
}

// Weight is the Hamming weight of e.
func Weight(e []uint8) int {
	w := 0
	for _, v := range e {
		w += int(v & 1)
	}
	return w
}

// CheckSolution reports whether e has weight at most W and H_full * e = s.
func (in *Instance) CheckSolution(e []uint8) error {
	if len(e) != in.N {
		return fmt.Errorf("%w: length %d, want %d", ErrSolution, len(e), in.N)
	}
	for i, v := range e {
		if v > 1 {
			return fmt.Errorf("%w: entry %d is %d", ErrSolution, i, v)
		}
	}
	if wt := Weight(e); wt > in.W {
		return fmt.Errorf("%w: weight %d exceeds %d", ErrSolution, wt, in.W)
	}
	ew := PackBits(e)
	for i, row := range PackRows(in.Rows) {
		par := 0
		for j, v := range row {
			par ^= bits.OnesCount64(v&ew[j]) & 1
		}
		if uint8(par) != in.S[i] {
			return fmt.Errorf("%w: syndrome bit %d differs", ErrSolution, i)
		}
	}
	return nil
}
