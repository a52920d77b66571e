package sd

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"
)

// WordsPerRow is the number of uint64 words needed for bits bits.
func WordsPerRow(bits int) int { return (bits + 63) / 64 }

// PackBits packs one bit per byte into little-endian uint64 words; bit i lands
// in word i/64 at position i%64.
func PackBits(bits []uint8) []uint64 {
	words := make([]uint64, WordsPerRow(len(bits)))
	for i, v := range bits {
		if v&1 == 1 {
			words[i>>6] |= 1 << uint(i&63)
		}
	}
	return words
}

// UnpackBits is the inverse of PackBits for the first n bits.
func UnpackBits(words []uint64, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = uint8(words[i>>6] >> uint(i&63) & 1)
	}
	return out
}

// PackRows packs each row of rows.
func PackRows(rows [][]uint8) [][]uint64 {
	out := make([][]uint64, len(rows))
	for i, row := range rows {
		out[i] = PackBits(row)
	}
	return out
}

// PackedBytes serializes the packed rows followed by the packed syndrome, each
// word little-endian.
func (in *Instance) PackedBytes() []byte {
	wr, ws := WordsPerRow(in.N), WordsPerRow(in.K)
	b := make([]byte, 0, 8*(len(in.Rows)*wr+ws))
	for _, row := range in.Rows {
		b = appendWords(b, PackBits(row))
	}
	return appendWords(b, PackBits(in.S))
}

func appendWords(b []byte, words []uint64) []byte {
	for _, v := range words {
		b = binary.LittleEndian.AppendUint64(b, v)
	}
	return b
}

// Fingerprint returns the CRC32 (IEEE) and hex SHA256 of PackedBytes.
func (in *Instance) Fingerprint() (uint32, string) {
	b := in.PackedBytes()
	sum := sha256.Sum256(b)
	return crc32.ChecksumIEEE(b), hex.EncodeToString(sum[:])
}
