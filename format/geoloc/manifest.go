package geoloc

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Manifest is a small diagnostic sidecar written next to a store on
// build, recording the inputs and resulting table sizes. It has no
// bearing on query correctness — Open never reads it — but gives
// operators a quick way to confirm what a .bin file was built from
// without re-running the whole ETL pipeline.
type Manifest struct {
	Sources        BuildSources
	BlockCount     int
	LocationCount  int
	ASNCount       int
	CountryStrings int
	RegionStrings  int
	CityStrings    int
	ASNTextStrings int
}

// WriteManifest msgpack-encodes m to path.
func WriteManifest(m Manifest, path string) error {
	b, err := msgpack.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadManifest decodes a manifest previously written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	if err := msgpack.Unmarshal(b, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
