package geoloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDottedQuad(t *testing.T) {
	quad, err := ParseDottedQuad([]byte("192.168.1.1"))
	require.NoError(t, err)
	require.Equal(t, uint32(192)<<24|uint32(168)<<16|uint32(1)<<8|uint32(1), quad)
}

func TestParseDottedQuadRejectsWrongPartCount(t *testing.T) {
	_, err := ParseDottedQuad([]byte("1.2.3"))
	require.Error(t, err)
}

func TestParseDottedQuadRejectsEmptyOctet(t *testing.T) {
	_, err := ParseDottedQuad([]byte("1..3.4"))
	require.Error(t, err)
}

func TestParseDottedQuadRejectsHostname(t *testing.T) {
	_, err := ParseDottedQuad([]byte("example.com"))
	require.Error(t, err)
}
