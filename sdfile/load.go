package sdfile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/sdchallenge/sdgen/internal/sdwire"
	"github.com/sdchallenge/sdgen/sd"
)

// Load reads the instances in path: binary for .sdb files, otherwise text
// (a single instance or a bundle).
func Load(path string) ([]*sd.Instance, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".sdb" {
		in, err := sdwire.Unmarshal(b)
		if err != nil {
			return nil, err
		}
		return []*sd.Instance{in}, nil
	}
	return sd.ParseInstances(bytes.NewReader(b))
}

// LoadManifest returns the manifest stored next to path, or nil when there is
// none.
func LoadManifest(path string) (*sd.Manifest, error) {
	mp := path + ".json"
	if filepath.Ext(path) == ".sdb" {
		mp = path[:len(path)-len(".sdb")] + ".json"
	}
	if _, err := os.Stat(mp); os.IsNotExist(err) {
		return nil, nil
	}
	return sd.LoadManifest(mp)
}
