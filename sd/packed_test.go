package sd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackBits(t *testing.T) {
	bits := make([]uint8, 130)
	bits[0], bits[63], bits[64], bits[129] = 1, 1, 1, 1
	words := PackBits(bits)
	require.Equal(t, []uint64{1 | 1<<63, 1, 1 << 1}, words)
	require.Equal(t, bits, UnpackBits(words, len(bits)))
	require.Equal(t, 0, WordsPerRow(0))
	require.Equal(t, 1, WordsPerRow(64))
	require.Equal(t, 2, WordsPerRow(65))
}

func TestFingerprintStable(t *testing.T) {
	a, err := GenerateSeed(40, big.NewInt(3), SourceMT19937)
	require.NoError(t, err)
	b, err := GenerateSeed(40, big.NewInt(3), SourceMT19937)
	require.NoError(t, err)
	c, err := GenerateSeed(40, big.NewInt(4), SourceMT19937)
	require.NoError(t, err)

	crcA, shaA := a.Fingerprint()
	crcB, shaB := b.Fingerprint()
	crcC, shaC := c.Fingerprint()
	require.Equal(t, crcA, crcB)
	require.Equal(t, shaA, shaB)
	require.Len(t, shaA, 64)
	require.NotEqual(t, shaA, shaC)
	require.NotEqual(t, crcA, crcC)

	// 20 rows of one word, then one word of syndrome.
	require.Len(t, a.PackedBytes(), 8*21)
}
