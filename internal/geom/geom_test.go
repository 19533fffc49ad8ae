package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacle-dev/tacle/internal/celltype"
)

func buildTable(t *testing.T, rows [][]string) *Table {
	t.Helper()
	types := make([][]celltype.Type, len(rows))
	for i, row := range rows {
		types[i] = make([]celltype.Type, len(row))
		for j, v := range row {
			types[i][j] = celltype.Detect(v)
		}
	}
	bounds, err := NewRange(0, 0, len(rows[0]), len(rows))
	require.NoError(t, err)
	tbl, err := NewTable("T", bounds, rows, types)
	require.NoError(t, err)
	return tbl
}

func TestRangeOps(t *testing.T) {
	a, _ := NewRange(0, 0, 3, 3)
	b, _ := NewRange(2, 2, 3, 3)
	require.True(t, a.Intersects(b))
	inter, ok := a.Intersection(b)
	require.True(t, ok)
	require.Equal(t, Range{Col: 2, Row: 2, Width: 1, Height: 1}, inter)

	c, _ := NewRange(10, 10, 1, 1)
	require.False(t, a.Intersects(c))

	bound := a.Bounding(b)
	require.Equal(t, Range{Col: 0, Row: 0, Width: 5, Height: 5}, bound)
}

func TestBlockVerticalBasics(t *testing.T) {
	tbl := buildTable(t, [][]string{
		{"a", "1", "10"},
		{"b", "2", "20"},
		{"c", "3", "30"},
	})
	rel, _ := NewRange(0, 0, 3, 3)
	blk, err := NewBlock(tbl, rel, Vertical)
	require.NoError(t, err)
	require.Equal(t, 3, blk.Length())
	require.Equal(t, 3, blk.VectorLength())
	require.Equal(t, celltype.String, blk.VectorTypes[0])
	require.Equal(t, celltype.Int, blk.VectorTypes[1])
	require.Equal(t, celltype.Unknown, blk.DominantType)

	col1 := blk.GetVector(1)
	require.Equal(t, []string{"1", "2", "3"}, col1)
}

func TestSubBlockMemoised(t *testing.T) {
	tbl := buildTable(t, [][]string{
		{"1"}, {"2"}, {"3"}, {"4"},
	})
	rel, _ := NewRange(0, 0, 1, 4)
	blk, err := NewBlock(tbl, rel, Horizontal)
	require.NoError(t, err)

	sub1, err := blk.SubBlock(1, 2)
	require.NoError(t, err)
	sub2, err := blk.SubBlock(1, 2)
	require.NoError(t, err)
	require.Same(t, sub1, sub2, "sub_block should be memoised")
	require.Equal(t, [][]string{{"2"}, {"3"}}, sub1.VectorSubset(0, 1))
}

func TestBlockOverlapAndSubgroup(t *testing.T) {
	tbl := buildTable(t, [][]string{
		{"1", "2", "3"},
		{"4", "5", "6"},
	})
	whole, _ := NewRange(0, 0, 3, 2)
	wholeBlk, err := NewBlock(tbl, whole, Vertical)
	require.NoError(t, err)

	part, _ := NewRange(0, 0, 2, 2)
	partBlk, err := NewBlock(tbl, part, Vertical)
	require.NoError(t, err)

	require.True(t, partBlk.IsSubgroup(wholeBlk))
	require.False(t, wholeBlk.IsSubgroup(partBlk))
	require.True(t, partBlk.OverlapsWith(wholeBlk))

	other, _ := NewRange(2, 0, 1, 2)
	otherBlk, err := NewBlock(tbl, other, Vertical)
	require.NoError(t, err)
	require.False(t, partBlk.OverlapsWith(otherBlk))
}

func TestBlockOrdering(t *testing.T) {
	tbl := buildTable(t, [][]string{{"1", "2"}, {"3", "4"}})
	r0, _ := NewRange(0, 0, 1, 2)
	r1, _ := NewRange(1, 0, 1, 2)
	b0, err := NewBlock(tbl, r0, Vertical)
	require.NoError(t, err)
	b1, err := NewBlock(tbl, r1, Vertical)
	require.NoError(t, err)
	require.True(t, b0.Less(b1))
	require.False(t, b1.Less(b0))
}
