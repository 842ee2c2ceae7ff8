package awdb

import (
	"net"
	"path/filepath"
	"testing"

	pkgerrors "github.com/loadzero/geoloc/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.awdb"))
	require.ErrorIs(t, err, pkgerrors.ErrFileNotFound)
}

func TestPickNamePrefersLocale(t *testing.T) {
	names := map[string]string{"en": "France", "fr": "la France"}
	require.Equal(t, "la France", pickName(names, "fr"))
}

func TestPickNameFallsBackToAnyEntry(t *testing.T) {
	names := map[string]string{"de": "Frankreich"}
	require.Equal(t, "Frankreich", pickName(names, "en"))
}

func TestPickNameEmptyMap(t *testing.T) {
	require.Equal(t, "", pickName(nil, "en"))
}

func TestCidrRangeSlash24(t *testing.T) {
	start, end := cidrRange(net.IPv4(10, 0, 0, 0).To4(), 24)
	require.Equal(t, uint32(0x0A000000), start)
	require.Equal(t, uint32(0x0A0000FF), end)
}

func TestCidrRangeSlash32(t *testing.T) {
	start, end := cidrRange(net.IPv4(8, 8, 8, 8).To4(), 32)
	require.Equal(t, start, end)
	require.Equal(t, uint32(0x08080808), start)
}
