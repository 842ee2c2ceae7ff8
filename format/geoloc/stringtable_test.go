package geoloc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringTableInsertIdempotent(t *testing.T) {
	st := newStringTable()
	st.Insert("France")
	st.Insert("Germany")
	st.Insert("France")

	require.Equal(t, 2, st.Size())
	require.Equal(t, uint32(0), st.IndexOf("France"))
	require.Equal(t, uint32(1), st.IndexOf("Germany"))
}

func TestStringTableIndexOfMissing(t *testing.T) {
	st := newStringTable()
	st.Insert("France")
	require.Equal(t, sentinelIndex, st.IndexOf("Nowhere"))
}

func TestStringTableNFCNormalizationIdempotent(t *testing.T) {
	// One precomposed rune (U+00E9) vs "e" plus a combining acute
	// accent (U+0065 U+0301) -- both must intern to the same entry.
	precomposed := "Montr\u00e9al"
	decomposed := "Montre\u0301al"
	require.NotEqual(t, precomposed, decomposed)

	st := newStringTable()
	n1 := st.InsertNormalized(precomposed)
	n2 := st.InsertNormalized(decomposed)

	require.Equal(t, n1, n2)
	require.Equal(t, 1, st.Size())
}

func TestStringTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "st.bin")

	st := newStringTable()
	st.Insert("United States")
	st.Insert("Canada")
	st.Insert("")

	w, err := newWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.saveStringTable(st))
	require.NoError(t, w.Close())

	data := readFile(t, path)
	r := newReader(data)

	mv, err := r.loadMappedStringVector()
	require.NoError(t, err)
	require.Equal(t, 3, mv.Len())
	require.Equal(t, "United States", mv.At(0))
	require.Equal(t, "Canada", mv.At(1))
	require.Equal(t, "", mv.At(2))
}
