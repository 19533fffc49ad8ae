package template

import (
	"fmt"

	"github.com/tacle-dev/tacle/internal/celltype"
	"github.com/tacle-dev/tacle/internal/geom"
)

// Variable is a template slot, per spec.md §3: a name, whether it must bind
// to a single vector, and the set of dominant cell-types it admits.
type Variable struct {
	Name     string
	IsVector bool
	Types    []celltype.Type
}

// SourceKind distinguishes the two assignment-generation strategies of
// spec.md §3's Source.
type SourceKind int

const (
	// FreeSource enumerates blocks from scratch for every variable.
	FreeSource SourceKind = iota
	// DerivedSource rewrites solutions of a prerequisite template.
	DerivedSource
)

// Source describes how a template's candidate assignments are seeded
// (spec.md §4.4 step 1).
type Source struct {
	Kind SourceKind
	// Prereq names the prerequisite template for DerivedSource.
	Prereq string
	// Rename maps a prerequisite-solution variable name to this template's
	// variable name, for DerivedSource.
	Rename map[string]string
}

// Free constructs a from-scratch source.
func Free() Source { return Source{Kind: FreeSource} }

// Derived constructs a source that rewrites solutions of prereq via rename.
func Derived(prereq string, rename map[string]string) Source {
	return Source{Kind: DerivedSource, Prereq: prereq, Rename: rename}
}

// Template is a constraint schema: variables, source, structural filters,
// a print format, and the set of templates it depends on (spec.md §3).
// Identity is Name; compound names (e.g. "sum (col)") distinguish
// parametrised instances per spec.md §9.
type Template struct {
	Name        string
	Kind        Kind
	PrintFormat string
	Variables   []Variable
	Source      Source
	Filters     []Filter
	DependsOn   []string

	// Op is set for templates parametrised by an Operation (Aggregate,
	// ConditionalAggregate, ForeignOp); nil otherwise.
	Op *Operation
	// Orientation is set for templates parametrised by orientation (Aggregate).
	Orientation *OrientationParam
}

// OrientationParam names the orientation an Aggregate instance folds along.
type OrientationParam int

const (
	OrientVertical OrientationParam = iota
	OrientHorizontal
)

func (o OrientationParam) String() string {
	if o == OrientVertical {
		return "col"
	}
	return "row"
}

// Kind identifies a template's validator dispatch target independent of its
// (possibly parametrised, e.g. "sum (col)") Name, per spec.md §9's
// "dynamic dispatch over templates → tagged-union + strategy registry".
type Kind int

const (
	KindEqual Kind = iota
	KindEqualGroup
	KindAllDifferent
	KindPermutation
	KindSeries
	KindOrdered
	KindRank
	KindForeignKey
	KindLookup
	KindFuzzyLookup
	KindConditionalAggregate
	KindRunningTotal
	KindForeignOp
	KindAggregate
	KindProduct
	KindDiff
	KindPercentualDiff
	KindSumProduct
	KindProjection
	KindMutualExclusivity
)

// kindNames gives each Kind its class shorthand, used by pkg/tacle's
// filter_constraints class-pattern matching (e.g. "aggregate" selects every
// Aggregate(*,*) instance regardless of op/orientation).
var kindNames = map[Kind]string{
	KindEqual:                "equal",
	KindEqualGroup:           "equalgroup",
	KindAllDifferent:         "alldifferent",
	KindPermutation:          "permutation",
	KindSeries:               "series",
	KindOrdered:              "ordered",
	KindRank:                 "rank",
	KindForeignKey:           "foreignkey",
	KindLookup:               "lookup",
	KindFuzzyLookup:          "fuzzylookup",
	KindConditionalAggregate: "conditionalaggregate",
	KindRunningTotal:         "runningtotal",
	KindForeignOp:            "foreignop",
	KindAggregate:            "aggregate",
	KindProduct:              "product",
	KindDiff:                 "diff",
	KindPercentualDiff:       "percentualdiff",
	KindSumProduct:           "sumproduct",
	KindProjection:           "projection",
	KindMutualExclusivity:    "mutualexclusivity",
}

// String returns the class shorthand identifying the template kind.
func (k Kind) String() string { return kindNames[k] }

// formulaKinds marks the templates that describe a single derived cell
// value the way a spreadsheet formula would (sum/lookup/rank/running total
// and friends), matching the original tool's is_formula() split used by
// the "<formula>"/"<f>" and "<constraint>"/"<c>" filter sentinels. The rest
// describe structural properties of the data (uniqueness, referential
// integrity, partitioning) rather than a single computed value.
var formulaKinds = map[Kind]bool{
	KindRank:                true,
	KindLookup:              true,
	KindFuzzyLookup:         true,
	KindConditionalAggregate: true,
	KindRunningTotal:        true,
	KindForeignOp:           true,
	KindAggregate:           true,
	KindProduct:             true,
	KindDiff:                true,
	KindPercentualDiff:      true,
	KindSumProduct:          true,
}

// IsFormula reports whether the template's Kind computes a single derived
// value, per the formulaKinds classification above.
func (t *Template) IsFormula() bool { return formulaKinds[t.Kind] }

// VariableNames returns the template's variable names in declared order.
func (t *Template) VariableNames() []string {
	names := make([]string, len(t.Variables))
	for i, v := range t.Variables {
		names[i] = v.Name
	}
	return names
}

// Variable looks up a variable by name.
func (t *Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Render formats an assignment using the template's print format, replacing
// "{Name}" with the bound block's identity string. This backs spec.md §8's
// "idempotence of formatting" property: rendering then re-parsing the
// variable names must recover the original assignment.
func (t *Template) Render(a Assignment) string {
	out := t.PrintFormat
	for _, v := range t.Variables {
		b, ok := a[v.Name]
		if !ok {
			continue
		}
		token := fmt.Sprintf("{%s}", v.Name)
		out = replaceAll(out, token, blockLabel(b))
	}
	return out
}

// blockLabel renders a block's structural identity as "Table!Col,Row+WxH/o"
// — stable, parseable, and sufficient to recover the exact assignment a
// rendering came from (spec.md §8's formatting-idempotence property).
func blockLabel(b *geom.Block) string {
	k := b.Key()
	return fmt.Sprintf("%s!%d,%d+%dx%d/%s", k.Table, k.Rel.Col, k.Rel.Row, k.Rel.Width, k.Rel.Height, k.Orientation)
}

func replaceAll(s, old, new string) string {
	out := make([]byte, 0, len(s))
	for {
		idx := indexOf(s, old)
		if idx < 0 {
			out = append(out, s...)
			break
		}
		out = append(out, s[:idx]...)
		out = append(out, new...)
		s = s[idx+len(old):]
	}
	return string(out)
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}
