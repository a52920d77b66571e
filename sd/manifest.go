package sd

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/francoispqt/gojay"
)

// ManifestVersion is the current manifest layout.
const ManifestVersion = 1

var ErrManifestMismatch = errors.New("sd: instance does not match manifest")

// Manifest describes a written instance: its parameters, how it was drawn and
// checksums over the packed matrix and syndrome.
type Manifest struct {
	Version    int
	Case       int
	N, K, R, W int
	Seed       string
	Source     string
	WeightMode string
	CRC32      uint32
	SHA256     string
	File       string
}

// NewManifest fills a manifest for in.
func NewManifest(in *Instance, seed *big.Int, kind SourceKind, mode WeightMode, file string) *Manifest {
	crc, sha := in.Fingerprint()
	if kind == "" {
		kind = SourceMT19937
	}
	if mode == "" {
		mode = WeightFloat
	}
	s := "0"
	if seed != nil {
		s = seed.String()
	}
	return &Manifest{
		Version: ManifestVersion, Case: in.Case,
		N: in.N, K: in.K, R: in.R(), W: in.W,
		Seed: s, Source: string(kind), WeightMode: string(mode),
		CRC32: crc, SHA256: sha, File: file,
	}
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (m *Manifest) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("version", m.Version)
	enc.IntKey("case", m.Case)
	enc.IntKey("n", m.N)
	enc.IntKey("k", m.K)
	enc.IntKey("r", m.R)
	enc.IntKey("w", m.W)
	enc.StringKey("seed", m.Seed)
	enc.StringKey("source", m.Source)
	enc.StringKey("weightMode", m.WeightMode)
	enc.Uint32Key("crc32", m.CRC32)
	enc.StringKey("sha256", m.SHA256)
	enc.StringKeyOmitEmpty("file", m.File)
}

// IsNil implements gojay.MarshalerJSONObject.
func (m *Manifest) IsNil() bool { return m == nil }

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject.
func (m *Manifest) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "version":
		return dec.Int(&m.Version)
	case "case":
		return dec.Int(&m.Case)
	case "n":
		return dec.Int(&m.N)
	case "k":
		return dec.Int(&m.K)
	case "r":
		return dec.Int(&m.R)
	case "w":
		return dec.Int(&m.W)
	case "seed":
		return dec.String(&m.Seed)
	case "source":
		return dec.String(&m.Source)
	case "weightMode":
		return dec.String(&m.WeightMode)
	case "crc32":
		return dec.Uint32(&m.CRC32)
	case "sha256":
		return dec.String(&m.SHA256)
	case "file":
		return dec.String(&m.File)
	}
	return nil
}

// NKeys implements gojay.UnmarshalerJSONObject. Zero lets the decoder read
// every key.
func (m *Manifest) NKeys() int { return 0 }

// Verify checks in against the recorded dimensions and checksums.
func (m *Manifest) Verify(in *Instance) error {
	if m.N != in.N || m.K != in.K || m.W != in.W || m.Case != in.Case {
		return fmt.Errorf("%w: manifest (case=%d n=%d k=%d w=%d) vs instance (case=%d n=%d k=%d w=%d)",
			ErrManifestMismatch, m.Case, m.N, m.K, m.W, in.Case, in.N, in.K, in.W)
	}
	crc, sha := in.Fingerprint()
	if crc != m.CRC32 || sha != m.SHA256 {
		return fmt.Errorf("%w: checksum", ErrManifestMismatch)
	}
	return nil
}

// MarshalManifest encodes m as JSON.
func MarshalManifest(m *Manifest) ([]byte, error) {
	return gojay.MarshalJSONObject(m)
}

// UnmarshalManifest decodes a JSON manifest.
func UnmarshalManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := gojay.UnmarshalJSONObject(b, &m); err != nil {
		return nil, fmt.Errorf("sd: decode manifest: %w", err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("sd: unsupported manifest version %d", m.Version)
	}
	return &m, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalManifest(b)
}
