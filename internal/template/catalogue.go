package template

import (
	"fmt"

	"github.com/tacle-dev/tacle/internal/celltype"
)

var (
	anyTypes      = []celltype.Type{celltype.Numeric, celltype.String}
	numericTypes  = []celltype.Type{celltype.Numeric}
	discreteTypes = []celltype.Type{celltype.String, celltype.Int}
)

func v(name string, vector bool, types []celltype.Type) Variable {
	return Variable{Name: name, IsVector: vector, Types: types}
}

// Catalogue returns every template spec.md §4.3 names, including every
// (orientation, op) and (op) parametrisation, registered under composite
// names per spec.md §9 (e.g. "sum (col)", "maxIf"). Order is stable but
// not itself meaningful: the learning loop (internal/learn) topologically
// sorts by DependsOn before running anything.
func Catalogue() []*Template {
	var out []*Template

	out = append(out, equalTemplate())
	out = append(out, equalGroupTemplate())
	out = append(out, allDifferentTemplate())
	out = append(out, permutationTemplate())
	out = append(out, seriesTemplate())
	out = append(out, orderedTemplate())
	out = append(out, rankTemplate())
	out = append(out, foreignKeyTemplate())
	out = append(out, lookupTemplate())
	out = append(out, fuzzyLookupTemplate())
	out = append(out, runningTotalTemplate())
	out = append(out, productTemplate())
	out = append(out, diffTemplate())
	out = append(out, percentualDiffTemplate())
	out = append(out, sumProductTemplate())
	out = append(out, projectionTemplate())
	out = append(out, mutualExclusivityTemplate())

	for _, op := range Operations {
		out = append(out, conditionalAggregateTemplate(op))
		out = append(out, foreignOpTemplate(op))
		out = append(out, aggregateTemplate(op, OrientVertical))
		out = append(out, aggregateTemplate(op, OrientHorizontal))
	}
	return out
}

func equalTemplate() *Template {
	return &Template{
		Kind:        KindEqual,
		Name:        "Equal",
		PrintFormat: "{O1} = {O2}",
		Variables:   []Variable{v("O1", true, anyTypes), v("O2", true, anyTypes)},
		Source:      Free(),
		Filters:     []Filter{SameLength("O1", "O2"), SameType("O1", "O2"), Ordered("O1", "O2")},
	}
}

func equalGroupTemplate() *Template {
	return &Template{
		Kind:        KindEqualGroup,
		Name:        "EqualGroup",
		PrintFormat: "EqualGroup({X})",
		Variables:   []Variable{v("X", false, anyTypes)},
		Source:      Free(),
		Filters:     []Filter{SizeFilter("X", SizeSpec{Vectors: 2})},
	}
}

func allDifferentTemplate() *Template {
	return &Template{
		Kind:        KindAllDifferent,
		Name:        "AllDifferent",
		PrintFormat: "AllDifferent({X})",
		Variables:   []Variable{v("X", true, discreteTypes)},
		Source:      Free(),
		Filters:     []Filter{NotPartial("X")},
	}
}

func permutationTemplate() *Template {
	return &Template{
		Kind:        KindPermutation,
		Name:        "Permutation",
		PrintFormat: "Permutation({X})",
		Variables:   []Variable{v("X", true, numericTypes)},
		Source:      Derived("AllDifferent", map[string]string{"X": "X"}),
		Filters:     []Filter{NotPartial("X")},
		DependsOn:   []string{"AllDifferent"},
	}
}

func seriesTemplate() *Template {
	return &Template{
		Kind:        KindSeries,
		Name:        "Series",
		PrintFormat: "Series({X})",
		Variables:   []Variable{v("X", true, numericTypes)},
		Source:      Derived("Permutation", map[string]string{"X": "X"}),
		Filters:     []Filter{NotPartial("X")},
		DependsOn:   []string{"Permutation"},
	}
}

func orderedTemplate() *Template {
	return &Template{
		Kind:        KindOrdered,
		Name:        "Ordered",
		PrintFormat: "Ordered({X})",
		Variables:   []Variable{v("X", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{NotPartial("X")},
	}
}

func rankTemplate() *Template {
	return &Template{
		Kind:        KindRank,
		Name:        "Rank",
		PrintFormat: "{Y} = Rank({X})",
		Variables:   []Variable{v("Y", true, []celltype.Type{celltype.Int}), v("X", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{SameLength("Y", "X"), NotPartial("Y", "X")},
		DependsOn:   []string{"Equal"},
	}
}

func foreignKeyTemplate() *Template {
	return &Template{
		Kind:        KindForeignKey,
		Name:        "ForeignKey",
		PrintFormat: "ForeignKey({FK}, {PK})",
		Variables:   []Variable{v("PK", true, discreteTypes), v("FK", true, discreteTypes)},
		Source:      Derived("AllDifferent", map[string]string{"X": "PK"}),
		Filters:     []Filter{Not(SameTable("PK", "FK")), SameType("PK", "FK"), NotPartial("PK")},
		DependsOn:   []string{"AllDifferent"},
	}
}

func lookupTemplate() *Template {
	return &Template{
		Kind:        KindLookup,
		Name:        "Lookup",
		PrintFormat: "{FV} = Lookup({FK}, {OK}, {OV})",
		Variables: []Variable{
			v("OK", true, discreteTypes), v("OV", true, anyTypes),
			v("FK", true, discreteTypes), v("FV", true, anyTypes),
		},
		Source: Derived("ForeignKey", map[string]string{"PK": "OK", "FK": "FK"}),
		Filters: []Filter{
			SameLength("OK", "OV"), SameTable("OK", "OV"), SameOrientation("OK", "OV"),
			SameLength("FK", "FV"), SameTable("FK", "FV"), SameOrientation("FK", "FV"),
			SameType("OV", "FV"),
		},
		DependsOn: []string{"ForeignKey"},
	}
}

func fuzzyLookupTemplate() *Template {
	return &Template{
		Kind:        KindFuzzyLookup,
		Name:        "FuzzyLookup",
		PrintFormat: "{FV} = FuzzyLookup({FK}, {OK}, {OV})",
		Variables: []Variable{
			v("OK", true, numericTypes), v("OV", true, anyTypes),
			v("FK", true, numericTypes), v("FV", true, anyTypes),
		},
		Source: Derived("Ordered", map[string]string{"X": "OK"}),
		Filters: []Filter{
			SameLength("OK", "OV"), SameTable("OK", "OV"), SameOrientation("OK", "OV"),
			SameLength("FK", "FV"), SameTable("FK", "FV"), SameOrientation("FK", "FV"),
			SameType("OV", "FV"),
		},
		DependsOn: []string{"Ordered"},
	}
}

func conditionalAggregateTemplate(op Operation) *Template {
	return &Template{
		Kind:        KindConditionalAggregate,
		Name:        fmt.Sprintf("%sIf", op.Name),
		PrintFormat: fmt.Sprintf("{R} = %sIf({OK}, {FK}, {V})", op.Name),
		Variables: []Variable{
			v("OK", true, discreteTypes), v("R", true, numericTypes),
			v("FK", true, discreteTypes), v("V", true, numericTypes),
		},
		Source: Derived("AllDifferent", map[string]string{"X": "OK"}),
		Filters: []Filter{
			SameLength("OK", "R"), SameOrientation("OK", "R"),
			SameLength("FK", "V"), SameTable("FK", "V"), SameOrientation("FK", "V"),
			Not(SameTable("FK", "OK")), SameType("FK", "OK"),
		},
		DependsOn: []string{"AllDifferent", "ForeignKey", "Lookup"},
		Op:        &op,
	}
}

func runningTotalTemplate() *Template {
	return &Template{
		Kind:        KindRunningTotal,
		Name:        "RunningTotal",
		PrintFormat: "{A} = RunningTotal({P}, {N})",
		Variables:   []Variable{v("A", true, numericTypes), v("P", true, numericTypes), v("N", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{SameLength("A", "P", "N"), SizeFilter("A", SizeSpec{Length: 2}), NotPartial("A", "P", "N")},
	}
}

func foreignOpTemplate(op Operation) *Template {
	return &Template{
		Kind:        KindForeignOp,
		Name:        fmt.Sprintf("ForeignOp(%s)", op.Name),
		PrintFormat: fmt.Sprintf("{R} = %s({FV}, {OV}) via ForeignKey({FK},{OK})", op.Name),
		Variables: []Variable{
			v("OK", true, discreteTypes), v("OV", true, numericTypes),
			v("FK", true, discreteTypes), v("R", true, numericTypes), v("FV", true, numericTypes),
		},
		Source: Derived("ForeignKey", map[string]string{"PK": "OK", "FK": "FK"}),
		Filters: []Filter{
			SameLength("OK", "OV"), SameTable("OK", "OV"), SameOrientation("OK", "OV"),
			SameLength("FK", "R"), SameLength("FK", "FV"),
			SameTable("FK", "R"), SameTable("FK", "FV"), SameOrientation("FK", "R"), SameOrientation("FK", "FV"),
		},
		DependsOn: []string{"ForeignKey"},
		Op:        &op,
	}
}

func aggregateTemplate(op Operation, orient OrientationParam) *Template {
	o := orient
	return &Template{
		Kind:        KindAggregate,
		Name:        fmt.Sprintf("%s (%s)", op.Name, o),
		PrintFormat: fmt.Sprintf("{Y} = %s({X}) (%s)", op.Name, o),
		Variables:   []Variable{v("X", false, numericTypes), v("Y", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{SizeFilter("X", SizeSpec{Vectors: op.MinVectors})},
		Op:          &op,
		Orientation: &o,
	}
}

func productTemplate() *Template {
	return &Template{
		Kind:        KindProduct,
		Name:        "Product",
		PrintFormat: "{R} = {O1} * {O2}",
		Variables:   []Variable{v("R", true, numericTypes), v("O1", true, numericTypes), v("O2", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{SameLength("R", "O1", "O2"), NotPartial("R", "O1", "O2")},
	}
}

func diffTemplate() *Template {
	return &Template{
		Kind:        KindDiff,
		Name:        "Diff",
		PrintFormat: "{R} = {O1} - {O2}",
		Variables:   []Variable{v("R", true, numericTypes), v("O1", true, numericTypes), v("O2", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{SameLength("R", "O1", "O2"), SameOrientation("R", "O1", "O2"), NotPartial("R", "O1", "O2")},
	}
}

func percentualDiffTemplate() *Template {
	return &Template{
		Kind:        KindPercentualDiff,
		Name:        "PercentualDiff",
		PrintFormat: "{R} = ({O1} - {O2}) / {O2}",
		Variables:   []Variable{v("R", true, numericTypes), v("O1", true, numericTypes), v("O2", true, numericTypes)},
		Source:      Free(),
		Filters:     []Filter{SameLength("R", "O1", "O2"), NotPartial("R", "O1", "O2")},
	}
}

func sumProductTemplate() *Template {
	return &Template{
		Kind:        KindSumProduct,
		Name:        "SumProduct",
		PrintFormat: "{R} = SumProduct({O1}, {O2})",
		Variables: []Variable{
			v("R", false, numericTypes), v("O1", true, numericTypes), v("O2", true, numericTypes),
		},
		Source: Free(),
		Filters: []Filter{
			SizeFilter("R", SizeSpec{Rows: 1, Cols: 1}),
			SameLength("O1", "O2"),
			SizeFilter("O1", SizeSpec{Length: 2}),
		},
	}
}

func projectionTemplate() *Template {
	return &Template{
		Kind:        KindProjection,
		Name:        "Projection",
		PrintFormat: "{R} = Projection({P})",
		Variables:   []Variable{v("R", true, anyTypes), v("P", false, anyTypes)},
		Source:      Free(),
		Filters: []Filter{
			SameLength("R", "P"), SameOrientation("R", "P"), SameTable("R", "P"), SameType("R", "P"),
			SizeFilter("P", SizeSpec{Vectors: 2}), Partial("P"),
		},
	}
}

func mutualExclusivityTemplate() *Template {
	return &Template{
		Kind:        KindMutualExclusivity,
		Name:        "MutualExclusivity",
		PrintFormat: "MutualExclusivity({X})",
		Variables:   []Variable{v("X", false, anyTypes)},
		Source:      Free(),
		Filters:     []Filter{SizeFilter("X", SizeSpec{Vectors: 2})},
	}
}

// ByName indexes a catalogue by template name for orchestrator lookups.
func ByName(cat []*Template) map[string]*Template {
	out := make(map[string]*Template, len(cat))
	for _, t := range cat {
		out[t.Name] = t
	}
	return out
}
