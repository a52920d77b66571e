package sd

import "math/big"

const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// MT19937 is the 32-bit Mersenne Twister. Seeding follows init_by_array over
// the little-endian 32-bit words of |seed|, so a given integer seed yields the
// same stream as CPython's random module.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 returns a generator seeded from seed. A nil seed is treated as 0.
func NewMT19937(seed *big.Int) *MT19937 {
	m := &MT19937{}
	m.Seed(seed)
	return m
}

// Seed re-initializes the generator.
func (m *MT19937) Seed(seed *big.Int) {
	m.initByArray(seedKey(seed))
}

// seedKey splits |seed| into 32-bit words, least significant first.
func seedKey(seed *big.Int) []uint32 {
	if seed == nil || seed.Sign() == 0 {
		return []uint32{0}
	}
	b := new(big.Int).Abs(seed).Bytes() // big-endian
	key := make([]uint32, (len(b)+3)/4)
	for i := 0; i < len(b); i++ {
		key[i/4] |= uint32(b[len(b)-1-i]) << (8 * uint(i%4))
	}
	return key
}

func (m *MT19937) initGenrand(s uint32) {
	m.mt[0] = s
	for i := 1; i < mtN; i++ {
		m.mt[i] = 1812433253*(m.mt[i-1]^(m.mt[i-1]>>30)) + uint32(i)
	}
	m.mti = mtN
}

func (m *MT19937) initByArray(key []uint32) {
	m.initGenrand(19650218)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		m.mt[i] = (m.mt[i] ^ ((m.mt[i-1] ^ (m.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		m.mt[i] = (m.mt[i] ^ ((m.mt[i-1] ^ (m.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
	}
	m.mt[0] = 0x80000000 // MSB is 1, assuring a non-zero initial array
	m.mti = mtN
}

// Uint32 returns the next tempered output word.
func (m *MT19937) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0, matrixA}

	if m.mti >= mtN {
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
			m.mt[kk] = m.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y = (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
			m.mt[kk] = m.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
		}
		y = (m.mt[mtN-1] & upperMask) | (m.mt[0] & lowerMask)
		m.mt[mtN-1] = m.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
		m.mti = 0
	}

	y = m.mt[m.mti]
	m.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Bits returns the top k bits (1 <= k <= 32) of the next output word.
func (m *MT19937) Bits(k uint) uint32 {
	return m.Uint32() >> (32 - k)
}

// Bit draws a uniform bit the way randint(0, 1) does: two bits per attempt,
// rejecting values >= 2.
func (m *MT19937) Bit() uint8 {
	for {
		if r := m.Bits(2); r < 2 {
			return uint8(r)
		}
	}
}
