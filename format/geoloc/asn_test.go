package geoloc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePackedASNRoundTrip(t *testing.T) {
	p := PackedASN{Number: 15169, Text: 3}

	buf := make([]byte, packedASNSize)
	encodePackedASN(buf, p)

	got := decodePackedASN(buf)
	require.Equal(t, p, got)
}

func TestSaveLoadASNs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asn.bin")

	text := newStringTable()
	text.Insert("Google LLC")

	rows := []PackedASN{{Number: 15169, Text: text.IndexOf("Google LLC")}}

	w, err := newWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.saveASNBlocks([]Block{{StartIP: 0, EndIP: 100, Loc: 0}}))
	require.NoError(t, w.saveASNs(rows, text))
	require.NoError(t, w.Close())

	data := readFile(t, path)
	r := newReader(data)

	at, err := r.loadASNTable()
	require.NoError(t, err)

	asn, ok := at.Query(50)
	require.True(t, ok)
	require.Equal(t, uint32(15169), asn.Number)
	require.Equal(t, "Google LLC", asn.Text)

	_, ok = at.Query(500)
	require.False(t, ok)
}
