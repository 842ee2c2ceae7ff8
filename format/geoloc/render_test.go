package geoloc

import (
	"bytes"
	"testing"

	"github.com/loadzero/geoloc/internal/fields"
	"github.com/stretchr/testify/require"
)

func TestQuadToDottedRoundTripsWithParseDottedQuad(t *testing.T) {
	quad, err := ParseDottedQuad([]byte("8.8.8.8"))
	require.NoError(t, err)
	require.Equal(t, "8.8.8.8", quadToDotted(quad))
}

func TestRenderLineFullResult(t *testing.T) {
	r := IPResult{
		Quad:    mustQuad(t, "8.8.8.8"),
		Country: "US", Region: "CA", City: "Mountain View", Lat: 37.4043, Lon: -122.0748, HasLoc: true,
		ASNNumber: 15169, ASNText: "Google LLC", HasASN: true,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderLine(&buf, r))
	require.Equal(t, "8.8.8.8 US CA Mountain+View 37.4043 -122.0748 AS15169 Google+LLC\n", buf.String())
}

func TestRenderLineUnresolvedResult(t *testing.T) {
	r := IPResult{Quad: mustQuad(t, "0.0.0.0")}

	var buf bytes.Buffer
	require.NoError(t, RenderLine(&buf, r))
	require.Equal(t, "0.0.0.0 % % % 0.0000 0.0000 % %\n", buf.String())
}

func TestRenderLineFieldsSubset(t *testing.T) {
	r := IPResult{Quad: mustQuad(t, "1.1.1.1"), Country: "AU", HasLoc: true}

	var buf bytes.Buffer
	require.NoError(t, RenderLineFields(&buf, r, []string{fields.Country}))
	require.Equal(t, "1.1.1.1 AU\n", buf.String())
}

func mustQuad(t *testing.T, s string) uint32 {
	t.Helper()
	q, err := ParseDottedQuad([]byte(s))
	require.NoError(t, err)
	return q
}
