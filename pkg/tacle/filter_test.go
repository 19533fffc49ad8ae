package tacle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/template"
)

func instanceOf(kind template.Kind, name string) solutions.ConstraintInstance {
	return solutions.ConstraintInstance{Template: &template.Template{Kind: kind, Name: name}}
}

func TestFilterConstraintsNoPatternsReturnsAll(t *testing.T) {
	in := []solutions.ConstraintInstance{instanceOf(template.KindSeries, "Series")}
	require.Equal(t, in, FilterConstraints(in))
}

func TestFilterConstraintsGlobOnName(t *testing.T) {
	in := []solutions.ConstraintInstance{
		instanceOf(template.KindAggregate, "sum (col)"),
		instanceOf(template.KindAggregate, "sum (row)"),
		instanceOf(template.KindSeries, "Series"),
	}
	out := FilterConstraints(in, "sum*")
	require.Len(t, out, 2)
	for _, inst := range out {
		require.Contains(t, inst.Template.Name, "sum")
	}
}

func TestFilterConstraintsClassShorthand(t *testing.T) {
	in := []solutions.ConstraintInstance{
		instanceOf(template.KindAggregate, "sum (col)"),
		instanceOf(template.KindAggregate, "max (row)"),
		instanceOf(template.KindSeries, "Series"),
	}
	out := FilterConstraints(in, "aggregate")
	require.Len(t, out, 2)
}

func TestFilterConstraintsFormulaSentinel(t *testing.T) {
	in := []solutions.ConstraintInstance{
		instanceOf(template.KindAggregate, "sum (col)"),
		instanceOf(template.KindAllDifferent, "AllDifferent"),
	}
	formulas := FilterConstraints(in, "<formula>")
	require.Len(t, formulas, 1)
	require.Equal(t, "sum (col)", formulas[0].Template.Name)

	constraints := FilterConstraints(in, "<c>")
	require.Len(t, constraints, 1)
	require.Equal(t, "AllDifferent", constraints[0].Template.Name)
}
