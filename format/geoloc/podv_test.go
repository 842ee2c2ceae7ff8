package geoloc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPODVUint32VectorRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.bin")

	w, err := newWriter(path)
	require.NoError(t, err)

	values := []uint32{1, 2, 3, 4, 500000}
	require.NoError(t, w.saveUint32Vector(values))
	require.NoError(t, w.Close())

	data := readFile(t, path)
	r := newReader(data)

	view, err := r.loadUint32View()
	require.NoError(t, err)
	require.Equal(t, len(values), view.Len())
	for i, v := range values {
		require.Equal(t, v, view.At(i))
	}
}

func TestPODVByteVectorPadding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.bin")

	w, err := newWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.saveByteVector([]byte("abc")))
	// a second chunk must still decode correctly after the first's padding
	require.NoError(t, w.saveUint32Vector([]uint32{99}))
	require.NoError(t, w.Close())

	data := readFile(t, path)
	r := newReader(data)

	bv, err := r.loadByteView()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), bv.data)

	uv, err := r.loadUint32View()
	require.NoError(t, err)
	require.Equal(t, 1, uv.Len())
	require.Equal(t, uint32(99), uv.At(0))
}

func TestPODVBadTag(t *testing.T) {
	r := newReader([]byte("XXXX\x00\x00\x00\x00"))
	_, _, err := r.loadPODV()
	require.Error(t, err)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
