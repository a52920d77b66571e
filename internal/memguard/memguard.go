// Package memguard refuses sizes whose instance would not fit in memory.
package memguard

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/pbnjay/memory"
)

var ErrTooLarge = errors.New("memguard: instance too large for available memory")

// Estimate is the peak number of bytes held while generating and encoding the
// instance of size n: H^T (r*k), the full matrix (k*n) and its text (2*k*n).
// It saturates at math.MaxUint64.
func Estimate(n int) uint64 {
	if n <= 0 {
		return 0
	}
	k := uint64(n / 2)
	r := uint64(n) - k
	total := uint64(0)
	for _, term := range [][2]uint64{{r, k}, {k, uint64(n)}, {2 * k, uint64(n)}, {2, k}} {
		hi, lo := bits.Mul64(term[0], term[1])
		if hi != 0 {
			return ^uint64(0)
		}
		var carry uint64
		total, carry = bits.Add64(total, lo, 0)
		if carry != 0 {
			return ^uint64(0)
		}
	}
	return total
}

// Guard compares estimates against a fraction of physical memory.
type Guard struct {
	total    uint64
	fraction float64
}

// New builds a Guard using the machine's physical memory. A fraction of zero
// disables the check.
func New(fraction float64) *Guard {
	return NewWithTotal(memory.TotalMemory(), fraction)
}

// NewWithTotal is New with an explicit memory size.
func NewWithTotal(total uint64, fraction float64) *Guard {
	return &Guard{total: total, fraction: fraction}
}

// Limit is the byte budget, or 0 when unlimited.
func (g *Guard) Limit() uint64 {
	if g == nil || g.fraction <= 0 || g.total == 0 {
		return 0
	}
	return uint64(float64(g.total) * g.fraction)
}

// Check returns ErrTooLarge when size n exceeds the budget.
func (g *Guard) Check(n int) error {
	limit := g.Limit()
	if limit == 0 {
		return nil
	}
	if est := Estimate(n); est > limit {
		return fmt.Errorf("%w: n=%d needs ~%d MiB, limit %d MiB", ErrTooLarge, n, est>>20, limit>>20)
	}
	return nil
}
