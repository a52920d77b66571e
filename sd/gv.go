package sd

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// WeightMode selects the arithmetic used for the Gilbert-Varshamov estimate.
type WeightMode string

const (
	// WeightFloat runs the binomial recurrence in float64, matching the
	// published challenge instances. It cannot represent 2^(n-k) for n-k >= 1024.
	WeightFloat WeightMode = "float"
	// WeightExact runs the recurrence on big integers.
	WeightExact WeightMode = "exact"
)

var (
	ErrInvalidSize    = errors.New("sd: invalid instance size")
	ErrWeightOverflow = errors.New("sd: 2^(n-k) overflows float64")
	ErrUnknownWeight  = errors.New("sd: unknown weight mode")
)

// ParseWeightMode accepts "float" and "exact".
func ParseWeightMode(s string) (WeightMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float":
		return WeightFloat, nil
	case "exact", "big":
		return WeightExact, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeight, s)
}

func checkDims(n, k int) error {
	if n < 0 || k < 0 || k > n {
		return fmt.Errorf("%w: n=%d k=%d", ErrInvalidSize, n, k)
	}
	return nil
}

// DGV returns the smallest d for which the Hamming ball sum C(n,0)+...+C(n,d-1)
// exceeds 2^(n-k), computed with the float64 recurrence
//
//	b *= n-d+1; b /= d
//
// For k = 0 the ball never exceeds the space; the recurrence reaches b = 0 and
// DGV returns n+1.
func DGV(n, k int) (int, error) {
	if err := checkDims(n, k); err != nil {
		return 0, err
	}
	r := n - k
	if r >= 1024 {
		return 0, fmt.Errorf("%w: n-k=%d", ErrWeightOverflow, r)
	}
	aux := math.Ldexp(1, r)
	b := 1.0
	d := 0
	for aux >= 0 {
		aux -= b
		d++
		b *= float64(n - d + 1)
		b /= float64(d)
		if b == 0 && aux >= 0 {
			break
		}
	}
	return d, nil
}

// DGVExact is DGV on math/big integers; b is the exact binomial C(n, d).
func DGVExact(n, k int) (int, error) {
	if err := checkDims(n, k); err != nil {
		return 0, err
	}
	aux := new(big.Int).Lsh(big.NewInt(1), uint(n-k))
	b := big.NewInt(1)
	var t big.Int
	d := 0
	for aux.Sign() >= 0 {
		aux.Sub(aux, b)
		d++
		b.Mul(b, t.SetInt64(int64(n-d+1)))
		b.Quo(b, t.SetInt64(int64(d)))
		if b.Sign() == 0 && aux.Sign() >= 0 {
			break
		}
	}
	return d, nil
}

// TargetWeight returns ceil(1.05 * dGV(n, k)).
func TargetWeight(n, k int, mode WeightMode) (int, error) {
	switch mode {
	case WeightFloat, "":
		d, err := DGV(n, k)
		if err != nil {
			return 0, err
		}
		return int(math.Ceil(1.05 * float64(d))), nil
	case WeightExact:
		d, err := DGVExact(n, k)
		if err != nil {
			return 0, err
		}
		return (21*d + 19) / 20, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeight, string(mode))
}
