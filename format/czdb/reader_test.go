package czdb

import (
	"path/filepath"
	"testing"

	pkgerrors "github.com/loadzero/geoloc/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.czdb"), "")
	require.ErrorIs(t, err, pkgerrors.ErrFileNotFound)
}

func TestSplitCountryArea(t *testing.T) {
	country, area := splitCountryArea("China\tGuangdong")
	require.Equal(t, "China", country)
	require.Equal(t, "Guangdong", area)
}

func TestSplitCountryAreaNoTab(t *testing.T) {
	country, area := splitCountryArea("China")
	require.Equal(t, "China", country)
	require.Equal(t, "", area)
}

func TestToLocations(t *testing.T) {
	records := []Record{
		{StartIP: 0, EndIP: 99, Country: "US", Area: "CA"},
		{StartIP: 100, EndIP: 199, Country: "US", Area: "NY"},
	}

	blocks, locs := ToLocations(records)
	require.Len(t, blocks, 2)
	require.Len(t, locs, 2)
	require.Equal(t, uint32(0), blocks[0].Loc)
	require.Equal(t, uint32(1), blocks[1].Loc)
	require.Equal(t, "CA", locs[0].City)
	require.Equal(t, "NY", locs[1].City)
}
