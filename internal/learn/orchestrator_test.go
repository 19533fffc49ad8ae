package learn

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tacle-dev/tacle/internal/celltype"
	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/template"
)

func vectorBlock(t *testing.T, name string, values []string) *geom.Block {
	t.Helper()
	rows := make([][]string, len(values))
	types := make([][]celltype.Type, len(values))
	for i, v := range values {
		rows[i] = []string{v}
		types[i] = []celltype.Type{celltype.Detect(v)}
	}
	bounds, err := geom.NewRange(0, 0, 1, len(values))
	require.NoError(t, err)
	tbl, err := geom.NewTable(name, bounds, rows, types)
	require.NoError(t, err)
	blk, err := geom.NewBlock(tbl, bounds, geom.Vertical)
	require.NoError(t, err)
	return blk
}

func TestRunSeriesPermutationAllDifferentOrder(t *testing.T) {
	x := vectorBlock(t, "X", []string{"1", "2", "3", "4", "5"})
	log := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	instances, err := Run([]*geom.Block{x}, template.Catalogue(), log)
	require.NoError(t, err)

	positions := map[string]int{}
	for i, inst := range instances {
		if _, seen := positions[inst.Template.Name]; !seen {
			positions[inst.Template.Name] = i
		}
	}
	require.Contains(t, positions, "AllDifferent")
	require.Contains(t, positions, "Permutation")
	require.Contains(t, positions, "Series")
	require.Less(t, positions["AllDifferent"], positions["Permutation"])
	require.Less(t, positions["Permutation"], positions["Series"])
}

func TestRunIsDeterministic(t *testing.T) {
	x := vectorBlock(t, "X", []string{"1", "2", "3"})
	log := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	first, err := Run([]*geom.Block{x}, template.Catalogue(), log)
	require.NoError(t, err)
	second, err := Run([]*geom.Block{x}, template.Catalogue(), log)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].Formula(), second[i].Formula())
	}
}
