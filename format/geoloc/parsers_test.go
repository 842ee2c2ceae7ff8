package geoloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockLine(t *testing.T) {
	b, ok := parseBlockLine([]byte("16777216,16777471,1"))
	require.True(t, ok)
	require.Equal(t, Block{StartIP: 16777216, EndIP: 16777471, Loc: 1}, b)
}

func TestParseBlockLineWrongFieldCount(t *testing.T) {
	_, ok := parseBlockLine([]byte("16777216,16777471"))
	require.False(t, ok)
}

func TestParseLocationLine(t *testing.T) {
	line := `1,"United States","California","Mountain View",94043,37.4043,-122.0748,807,0`
	loc, ok := parseLocationLine([]byte(line))
	require.True(t, ok)
	require.Equal(t, uint32(1), loc.ID)
	require.Equal(t, "United States", loc.Country)
	require.Equal(t, "California", loc.Region)
	require.Equal(t, "Mountain View", loc.City)
	require.Equal(t, "37.4043", loc.Lat)
	require.Equal(t, "-122.0748", loc.Lon)
}

func TestParseLocationLineWrongFieldCount(t *testing.T) {
	_, ok := parseLocationLine([]byte("1,2,3"))
	require.False(t, ok)
}

func TestParseASNLine(t *testing.T) {
	line := `16777216,16777471,"AS15169 Google LLC"`
	raw, ok := parseASNLine([]byte(line))
	require.True(t, ok)
	require.Equal(t, uint32(16777216), raw.StartIP)
	require.Equal(t, uint32(16777471), raw.EndIP)
	require.Equal(t, uint32(15169), raw.Number)
	require.Equal(t, "Google LLC", raw.Text)
}

func TestSplitASNText(t *testing.T) {
	num, text, ok := splitASNText([]byte("AS15169 Google LLC"))
	require.True(t, ok)
	require.Equal(t, uint32(15169), num)
	require.Equal(t, "Google LLC", text)
}

func TestSplitASNTextNoOrgName(t *testing.T) {
	num, text, ok := splitASNText([]byte("AS15169"))
	require.True(t, ok)
	require.Equal(t, uint32(15169), num)
	require.Equal(t, "", text)
}

func TestSplitASNTextTooShort(t *testing.T) {
	_, _, ok := splitASNText([]byte("AS"))
	require.False(t, ok)
}
