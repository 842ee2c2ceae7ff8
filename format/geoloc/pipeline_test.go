package geoloc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectCSVSkipsHeaderAndMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.csv")
	content := "copyright line\nheader line\n1,2,3\nmalformed\n4,5,6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := collectCSV(path, 2, parseBlockLine)
	require.NoError(t, err)
	require.Equal(t, []Block{
		{StartIP: 1, EndIP: 2, Loc: 3},
		{StartIP: 4, EndIP: 5, Loc: 6},
	}, rows)
}

func TestCollectCSVProgressCountsEveryRawLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.csv")
	content := "copyright line\nheader line\n1,2,3\nmalformed\n4,5,6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var lines int
	rows, err := collectCSVProgress(path, 2, parseBlockLine, func() { lines++ })
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 5, lines)
}

func TestCollectCSVMissingFile(t *testing.T) {
	_, err := collectCSV(filepath.Join(t.TempDir(), "nope.csv"), 0, parseBlockLine)
	require.Error(t, err)
}
