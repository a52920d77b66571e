// Package sdfile places generated instances on disk: SD_<n>_<seed> files in an
// existing output directory, written atomically.
package sdfile

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// DirName is the output directory under the working directory.
const DirName = "SD"

var (
	ErrNoOutputDir    = errors.New("sdfile: output directory does not exist")
	ErrNotADir        = errors.New("sdfile: output path is not a directory")
	ErrDirNotWritable = errors.New("sdfile: output directory is not writable")
)

// DefaultDir returns <cwd>/SD.
func DefaultDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("sdfile: working directory: %w", err)
	}
	return filepath.Join(wd, DirName), nil
}

// FileName returns SD_<n>_<seed> with the seed in canonical decimal.
func FileName(n int, seed *big.Int) string {
	s := "0"
	if seed != nil {
		s = seed.String()
	}
	return fmt.Sprintf("SD_%d_%s", n, s)
}

// Path joins dir and FileName.
func Path(dir string, n int, seed *big.Int) string {
	return filepath.Join(dir, FileName(n, seed))
}

// CheckDir verifies that dir exists, is a directory and is writable. It never
// creates dir.
func CheckDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s: %w", ErrNoOutputDir, dir, err)
		}
		return fmt.Errorf("sdfile: stat %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADir, dir)
	}
	if err := writable(dir); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirNotWritable, dir, err)
	}
	return nil
}
