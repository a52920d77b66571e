package sdfile

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/sdchallenge/sdgen/internal/sdwire"
	"github.com/sdchallenge/sdgen/sd"
)

// Options control Generate. The zero value writes the plain text layout into
// DefaultDir.
type Options struct {
	Dir      string
	Case     int
	Source   sd.SourceKind
	Weight   sd.WeightMode
	Manifest bool // also write <file>.json
	Binary   bool // also write <file>.sdb
}

// Result describes the files written for one instance.
type Result struct {
	Instance     *sd.Instance
	Path         string
	ManifestPath string
	BinaryPath   string
	CRC32        uint32
	SHA256       string
}

// Generate builds the instance for (n, seed) and writes it to
// <dir>/SD_<n>_<seed>. The directory must already exist.
func Generate(n int, seed *big.Int, opts Options) (*Result, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := CheckDir(dir); err != nil {
		return nil, err
	}
	c := opts.Case
	if c == 0 {
		c = 1
	}
	in, err := sd.GenerateSeed(n, seed, opts.Source, sd.WithCase(c), sd.WithWeightMode(opts.Weight))
	if err != nil {
		return nil, err
	}

	res := &Result{Instance: in, Path: Path(dir, n, seed)}
	res.CRC32, res.SHA256 = in.Fingerprint()

	// Sidecars go first and the instance last, so a failure anywhere leaves
	// none of the files behind.
	var written []string
	fail := func(path string, err error) (*Result, error) {
		for _, p := range written {
			_ = os.Remove(p)
		}
		return nil, fmt.Errorf("sdfile: write %s: %w", path, err)
	}
	if opts.Binary {
		res.BinaryPath = res.Path + ".sdb"
		if err := WriteFileAtomic(res.BinaryPath, sdwire.Marshal(in)); err != nil {
			return fail(res.BinaryPath, err)
		}
		written = append(written, res.BinaryPath)
	}
	if opts.Manifest {
		m := sd.NewManifest(in, seed, opts.Source, opts.Weight, FileName(n, seed))
		b, err := sd.MarshalManifest(m)
		if err != nil {
			return fail(res.Path+".json", err)
		}
		res.ManifestPath = res.Path + ".json"
		if err := WriteFileAtomic(res.ManifestPath, append(b, '\n')); err != nil {
			return fail(res.ManifestPath, err)
		}
		written = append(written, res.ManifestPath)
	}
	if err := WriteAtomic(res.Path, func(w io.Writer) error {
		_, err := in.WriteTo(w)
		return err
	}); err != nil {
		return fail(res.Path, err)
	}
	return res, nil
}
