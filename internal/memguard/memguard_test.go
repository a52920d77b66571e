package memguard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	require.Zero(t, Estimate(0))
	require.Zero(t, Estimate(-4))
	// n=10: k=r=5 -> 25 + 50 + 100 + 10
	require.Equal(t, uint64(185), Estimate(10))
	require.Greater(t, Estimate(11), Estimate(10))
	require.Equal(t, uint64(math.MaxUint64), Estimate(math.MaxInt))
}

func TestCheck(t *testing.T) {
	g := NewWithTotal(1000, 0.5)
	require.Equal(t, uint64(500), g.Limit())
	require.NoError(t, g.Check(10))
	require.ErrorIs(t, g.Check(20), ErrTooLarge)
}

func TestDisabled(t *testing.T) {
	require.NoError(t, NewWithTotal(10, 0).Check(1<<20))
	require.NoError(t, NewWithTotal(0, 0.5).Check(1<<20))
	var g *Guard
	require.NoError(t, g.Check(1<<20))
}

func TestNewUsesMachineMemory(t *testing.T) {
	g := New(0.5)
	require.NoError(t, g.Check(100))
}
