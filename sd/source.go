package sd

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
)

// BitSource yields the random bits an instance is built from.
type BitSource interface {
	Bit() uint8
}

// SourceKind names a BitSource implementation.
type SourceKind string

const (
	// SourceMT19937 reproduces the random.randint(0, 1) stream of CPython bit for bit.
	SourceMT19937 SourceKind = "mt19937"
	// SourceGo uses math/rand. Seeds must fit in an int64.
	SourceGo SourceKind = "go"
)

var (
	ErrUnknownSource = errors.New("sd: unknown bit source")
	ErrSeedRange     = errors.New("sd: seed out of range for bit source")
)

// ParseSourceKind accepts "mt19937" (also "mt", "python") and "go".
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mt19937", "mt", "python":
		return SourceMT19937, nil
	case "go", "math/rand":
		return SourceGo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}

// NewBitSource returns a freshly seeded source owned by the caller.
func NewBitSource(kind SourceKind, seed *big.Int) (BitSource, error) {
	if seed == nil {
		seed = new(big.Int)
	}
	switch kind {
	case SourceMT19937, "":
		return NewMT19937(seed), nil
	case SourceGo:
		if !seed.IsInt64() {
			return nil, fmt.Errorf("%w: %s does not fit in int64", ErrSeedRange, seed)
		}
		return NewGoSource(seed.Int64()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, string(kind))
}

// GoSource draws bits from a math/rand generator.
type GoSource struct {
	rng *rand.Rand
}

func NewGoSource(seed int64) *GoSource {
	return &GoSource{rng: rand.New(rand.NewSource(seed))}
}

func (g *GoSource) Bit() uint8 { return uint8(g.rng.Intn(2)) }
