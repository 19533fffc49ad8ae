package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacle-dev/tacle/internal/celltype"
	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/solutions"
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

func groupBlock(t *testing.T, name string, columns [][]string) *geom.Block {
	t.Helper()
	n := len(columns[0])
	rows := make([][]string, n)
	types := make([][]celltype.Type, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]string, len(columns))
		types[i] = make([]celltype.Type, len(columns))
		for c, col := range columns {
			rows[i][c] = col[i]
			types[i][c] = celltype.Detect(col[i])
		}
	}
	bounds, err := geom.NewRange(0, 0, len(columns), n)
	require.NoError(t, err)
	tbl, err := geom.NewTable(name, bounds, rows, types)
	require.NoError(t, err)
	blk, err := geom.NewBlock(tbl, bounds, geom.Vertical)
	require.NoError(t, err)
	return blk
}

func templateByName(t *testing.T, name string) *template.Template {
	t.Helper()
	tmpl, ok := template.ByName(template.Catalogue())[name]
	require.True(t, ok, "template %q not in catalogue", name)
	return tmpl
}

func TestConditionalAggregateSumIf(t *testing.T) {
	tmpl := templateByName(t, "sumIf")
	cand := template.Assignment{
		"OK": vectorBlock(t, "OK", []string{"a", "b", "c"}),
		"R":  vectorBlock(t, "R", []string{"0", "33.9", "6.12"}),
		"FK": vectorBlock(t, "FK", []string{"b", "b", "c", "b", "c"}),
		"V":  vectorBlock(t, "V", []string{"10.2", "3.7", "5.12", "20", "1"}),
	}
	out := Validate(tmpl, []template.Assignment{cand}, solutions.New())
	require.Len(t, out, 1)
}

func TestConditionalAggregateMaxIf(t *testing.T) {
	tmpl := templateByName(t, "maxIf")
	cand := template.Assignment{
		"OK": vectorBlock(t, "OK", []string{"a", "b", "c"}),
		"R":  vectorBlock(t, "R", []string{"", "20", "5.12"}),
		"FK": vectorBlock(t, "FK", []string{"b", "b", "c", "b", "c"}),
		"V":  vectorBlock(t, "V", []string{"10.2", "3.7", "5.12", "20", "1"}),
	}
	out := Validate(tmpl, []template.Assignment{cand}, solutions.New())
	require.Len(t, out, 1)
}

func TestAggregateRowMean(t *testing.T) {
	tmpl := templateByName(t, "average (row)")
	x := groupBlock(t, "X", [][]string{
		{"20.3", "8.9", "2.3"},
		{"14", "1.6", "43.8"},
		{"7", "5.2", "140"},
	})
	y := vectorBlock(t, "Y", []string{"13.77", "5.23", "62.03"})
	cand := template.Assignment{"X": x, "Y": y}
	out := Validate(tmpl, []template.Assignment{cand}, solutions.New())
	require.Len(t, out, 1)
}

func TestLookup(t *testing.T) {
	tmpl := templateByName(t, "Lookup")
	cand := template.Assignment{
		"OK": vectorBlock(t, "OK", []string{"1", "2", "3"}),
		"OV": vectorBlock(t, "OV", []string{"a", "b", "c"}),
		"FK": vectorBlock(t, "FK", []string{"2", "2", "3", "3", "2"}),
		"FV": vectorBlock(t, "FV", []string{"b", "b", "c", "c", "b"}),
	}
	out := Validate(tmpl, []template.Assignment{cand}, solutions.New())
	require.Len(t, out, 1)
}

func TestSeriesPermutationAllDifferent(t *testing.T) {
	x := vectorBlock(t, "X", []string{"1", "2", "3", "4", "5"})

	adTmpl := templateByName(t, "AllDifferent")
	adOut := Validate(adTmpl, []template.Assignment{{"X": x}}, solutions.New())
	require.Len(t, adOut, 1)

	permTmpl := templateByName(t, "Permutation")
	permOut := Validate(permTmpl, []template.Assignment{{"X": x}}, solutions.New())
	require.Len(t, permOut, 1)

	seriesTmpl := templateByName(t, "Series")
	seriesOut := Validate(seriesTmpl, []template.Assignment{{"X": x}}, solutions.New())
	require.Len(t, seriesOut, 1)
}

func TestRankAcceptedWithoutEqual(t *testing.T) {
	x := vectorBlock(t, "X", []string{"9.0", "7.5", "7.5", "3.1"})
	y := vectorBlock(t, "Y", []string{"1", "2", "2", "4"})
	tmpl := templateByName(t, "Rank")

	store := solutions.New()
	out := Validate(tmpl, []template.Assignment{{"Y": y, "X": x}}, store)
	require.Len(t, out, 1)
	require.False(t, store.Has("Equal", []string{"O1", "O2"}, []*geom.Block{y, x}))
}

func TestEqualTransitivity(t *testing.T) {
	tmpl := templateByName(t, "Equal")
	a := vectorBlock(t, "A", []string{"1", "2", "3"})
	b := vectorBlock(t, "B", []string{"1", "2", "3"})
	c := vectorBlock(t, "C", []string{"1", "2", "3"})

	out := Validate(tmpl, []template.Assignment{
		{"O1": a, "O2": b},
		{"O1": b, "O2": c},
		{"O1": a, "O2": c},
	}, solutions.New())
	require.Len(t, out, 3)
}

func TestEqualGroup(t *testing.T) {
	tmpl := templateByName(t, "EqualGroup")
	x := groupBlock(t, "X", [][]string{
		{"1", "2", "3"},
		{"1", "2", "3"},
	})
	out := Validate(tmpl, []template.Assignment{{"X": x}}, solutions.New())
	require.Len(t, out, 1)
}

func TestPercentualDiffRejectsDivisionByZero(t *testing.T) {
	tmpl := templateByName(t, "PercentualDiff")
	cand := template.Assignment{
		"R":  vectorBlock(t, "R", []string{"1", "2"}),
		"O1": vectorBlock(t, "O1", []string{"2", "4"}),
		"O2": vectorBlock(t, "O2", []string{"1", "0"}),
	}
	out := Validate(tmpl, []template.Assignment{cand}, solutions.New())
	require.Empty(t, out)
}

func TestMutualExclusivity(t *testing.T) {
	tmpl := templateByName(t, "MutualExclusivity")
	x := groupBlock(t, "X", [][]string{
		{"1", "", "3"},
		{"", "2", ""},
	})
	out := Validate(tmpl, []template.Assignment{{"X": x}}, solutions.New())
	require.Len(t, out, 1)
}
