package tacle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCells() [][]string {
	return [][]string{
		{"1", "2", "3"},
		{"2", "4", "6"},
		{"3", "6", "9"},
	}
}

func TestLearnReturnsInstances(t *testing.T) {
	instances, err := Learn(sampleCells())
	require.NoError(t, err)
	require.NotEmpty(t, instances)
}

func TestLearnFromCellsAppliesFilter(t *testing.T) {
	unfiltered, err := LearnFromCells(sampleCells(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, unfiltered)

	filtered, err := LearnFromCells(sampleCells(), []string{"Series"})
	require.NoError(t, err)
	for _, inst := range filtered {
		require.Equal(t, "Series", inst.Template.Name)
	}
	require.Less(t, len(filtered), len(unfiltered))
}

func TestTablesFromCellsDetectsRegions(t *testing.T) {
	cells := [][]string{
		{"1", "", "a"},
		{"2", "", "b"},
	}
	tables, err := TablesFromCells(cells)
	require.NoError(t, err)
	require.Len(t, tables, 2)
}

func TestRangesFromCellsMatchesTableBounds(t *testing.T) {
	cells := [][]string{
		{"1", "", "a"},
		{"2", "", "b"},
	}
	ranges, err := RangesFromCells(cells)
	require.NoError(t, err)
	tables, err := TablesFromCells(cells)
	require.NoError(t, err)
	require.Len(t, ranges, len(tables))
	for i, r := range ranges {
		require.Equal(t, tables[i].Bounds, r)
	}
}
