// Package sdwire is a compact binary encoding of SD instances: a fixed header
// followed by bit-packed rows and syndrome.
package sdwire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/sdchallenge/sdgen/sd"
)

// Layout, little endian:
//
//	MAGIC   4B   "SDGB"
//	VERSION u16  0x0001
//	CASE    u32
//	N       u32
//	K       u32
//	W       u32
//	CRC32   u32  IEEE, over the payload
//	payload K rows of (N+63)/64 words, then (K+63)/64 words of s
const (
	magic     = "SDGB"
	Version   = 1
	HeaderLen = 4 + 2 + 4 + 4 + 4 + 4 + 4
)

var (
	ErrShort    = errors.New("sdwire: short buffer")
	ErrMagic    = errors.New("sdwire: bad magic")
	ErrVersion  = errors.New("sdwire: unsupported version")
	ErrChecksum = errors.New("sdwire: checksum mismatch")
)

type Header struct {
	Version uint16
	Case    uint32
	N       uint32
	K       uint32
	W       uint32
	CRC32   uint32
}

func (h *Header) MarshalBinary(b []byte) []byte {
	if len(b) < HeaderLen {
		b = make([]byte, HeaderLen)
	}
	copy(b[0:4], magic)
	binary.LittleEndian.PutUint16(b[4:6], h.Version)
	binary.LittleEndian.PutUint32(b[6:10], h.Case)
	binary.LittleEndian.PutUint32(b[10:14], h.N)
	binary.LittleEndian.PutUint32(b[14:18], h.K)
	binary.LittleEndian.PutUint32(b[18:22], h.W)
	binary.LittleEndian.PutUint32(b[22:26], h.CRC32)
	return b[:HeaderLen]
}

func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderLen {
		return ErrShort
	}
	if string(b[0:4]) != magic {
		return ErrMagic
	}
	h.Version = binary.LittleEndian.Uint16(b[4:6])
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	h.Case = binary.LittleEndian.Uint32(b[6:10])
	h.N = binary.LittleEndian.Uint32(b[10:14])
	h.K = binary.LittleEndian.Uint32(b[14:18])
	h.W = binary.LittleEndian.Uint32(b[18:22])
	h.CRC32 = binary.LittleEndian.Uint32(b[22:26])
	return nil
}

// payloadLen is the payload size in bytes for the header's dimensions.
func (h *Header) payloadLen() uint64 {
	wr := (uint64(h.N) + 63) / 64
	ws := (uint64(h.K) + 63) / 64
	return 8 * (uint64(h.K)*wr + ws)
}

// Marshal encodes in. The instance must satisfy in.Validate's size limits.
func Marshal(in *sd.Instance) []byte {
	payload := in.PackedBytes()
	h := Header{
		Version: Version,
		Case:    uint32(in.Case),
		N:       uint32(in.N),
		K:       uint32(in.K),
		W:       uint32(in.W),
		CRC32:   crc32.ChecksumIEEE(payload),
	}
	b := make([]byte, HeaderLen, HeaderLen+len(payload))
	h.MarshalBinary(b)
	return append(b, payload...)
}

// Unmarshal decodes an instance written by Marshal.
func Unmarshal(b []byte) (*sd.Instance, error) {
	var h Header
	if err := h.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	if h.K > h.N {
		return nil, fmt.Errorf("sdwire: k=%d exceeds n=%d", h.K, h.N)
	}
	want := h.payloadLen()
	if uint64(len(b)-HeaderLen) != want {
		return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrShort, len(b)-HeaderLen, want)
	}
	payload := b[HeaderLen:]
	if crc32.ChecksumIEEE(payload) != h.CRC32 {
		return nil, ErrChecksum
	}

	n, k := int(h.N), int(h.K)
	wr, ws := sd.WordsPerRow(n), sd.WordsPerRow(k)
	words := make([]uint64, len(payload)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(payload[8*i:])
	}
	in := &sd.Instance{Case: int(h.Case), K: k, N: n, W: int(h.W)}
	in.Rows = make([][]uint8, k)
	for i := range in.Rows {
		in.Rows[i] = sd.UnpackBits(words[i*wr:(i+1)*wr], n)
	}
	in.S = sd.UnpackBits(words[k*wr:k*wr+ws], k)
	return in, nil
}
