package geoloc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePackedLocationRoundTrip(t *testing.T) {
	p := PackedLocation{ID: 7, Country: 1, Region: 2, City: 3, Lat: 48.8566, Lon: 2.3522}

	buf := make([]byte, packedLocationSize)
	encodePackedLocation(buf, p)

	got := decodePackedLocation(buf)
	require.Equal(t, p, got)
}

func TestParseLocationCoord(t *testing.T) {
	require.InDelta(t, 48.8566, float64(parseLocationCoord([]byte("48.8566"))), 0.0001)
	require.InDelta(t, -122.3321, float64(parseLocationCoord([]byte("-122.3321"))), 0.0001)
	require.InDelta(t, 0, float64(parseLocationCoord([]byte("0"))), 0.0001)
}

func TestSaveLoadLocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.bin")

	country := newStringTable()
	region := newStringTable()
	city := newStringTable()

	country.InsertNormalized("France")
	region.InsertNormalized("Ile-de-France")
	city.InsertNormalized("Paris")

	rows := []PackedLocation{
		{
			ID:      0,
			Country: country.IndexOf("France"),
			Region:  region.IndexOf("Ile-de-France"),
			City:    city.IndexOf("Paris"),
			Lat:     48.8566,
			Lon:     2.3522,
		},
	}

	w, err := newWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.saveLocationBlocks([]Block{{StartIP: 0, EndIP: 100, Loc: 0}}))
	require.NoError(t, w.saveLocations(rows, country, region, city))
	require.NoError(t, w.Close())

	data := readFile(t, path)
	r := newReader(data)

	lt, err := r.loadLocationTable()
	require.NoError(t, err)

	loc, ok := lt.Query(50)
	require.True(t, ok)
	require.Equal(t, "France", loc.Country)
	require.Equal(t, "Ile-de-France", loc.Region)
	require.Equal(t, "Paris", loc.City)

	_, ok = lt.Query(500)
	require.False(t, ok)
}
