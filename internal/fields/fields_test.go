package fields

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	require.True(t, Valid(Country))
	require.True(t, Valid(ASNText))
	require.False(t, Valid("nonsense"))
}

func TestFilterEmptyFallsBackToFull(t *testing.T) {
	require.Equal(t, Full, Filter(nil))
	require.Equal(t, Full, Filter([]string{}))
}

func TestFilterAllInvalidFallsBackToFull(t *testing.T) {
	require.Equal(t, Full, Filter([]string{"bogus", "nope"}))
}

func TestFilterPreservesOrderAndDedupes(t *testing.T) {
	got := Filter([]string{City, Country, City, "bogus", Lat})
	require.Equal(t, []string{City, Country, Lat}, got)
}
