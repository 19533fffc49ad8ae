package ingest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSVPadsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/ragged.csv"
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2\n3,4,5,6\n"), 0o644))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Len(t, row, 4)
	}
	require.Equal(t, []string{"a", "b", "c", ""}, rows[0])
	require.Equal(t, []string{"3", "4", "5", "6"}, rows[2])
}

func TestDetectTableRectsTwoTablesSideBySide(t *testing.T) {
	cells := [][]string{
		{"1", "2", "", "a", "b"},
		{"3", "4", "", "c", "d"},
		{"5", "6", "", "e", "f"},
	}
	rects := detectTableRects(cells)
	require.Len(t, rects, 2)
	require.Equal(t, rect{r1: 0, c1: 0, r2: 2, c2: 1}, rects[0])
	require.Equal(t, rect{r1: 0, c1: 3, r2: 2, c2: 4}, rects[1])
}

func TestTablesAssignsReadingOrderNames(t *testing.T) {
	cells := [][]string{
		{"a", "", "1"},
		{"b", "", "2"},
	}
	tables, err := Tables(cells)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.Equal(t, "T1", tables[0].Name)
	require.Equal(t, "T2", tables[1].Name)
	require.Equal(t, 1, tables[0].Bounds.Width)
	require.Equal(t, 1, tables[1].Bounds.Width)
}

func TestBlocksSplitsOnDominantTypeChange(t *testing.T) {
	cells := [][]string{
		{"1", "x"},
		{"2", "y"},
		{"3", "z"},
	}
	blocks, err := AllBlocks(cells)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(blocks), 2)
}
