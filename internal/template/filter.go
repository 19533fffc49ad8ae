package template

import (
	"github.com/tacle-dev/tacle/internal/celltype"
	"github.com/tacle-dev/tacle/internal/geom"
)

// Assignment maps a template variable name to the block bound to it.
type Assignment map[string]*geom.Block

// Filter is a structural predicate over an assignment, evaluated at CSP
// time (spec.md §3, §4.4). It carries the variable names it reads (so the
// CSP solver in internal/assign can tell when a partial assignment already
// binds everything a filter needs, and check it early) alongside the
// predicate itself. Primitive filters and the Not/If/NoFilter combinators
// compose these structs, per the "filter algebra → algebraic data type"
// design note in spec.md §9: no subclassing, just composition.
type Filter struct {
	Vars []string
	Eval func(a Assignment) bool
}

// Ready reports whether every variable f reads is already bound in a.
func (f Filter) Ready(a Assignment) bool {
	for _, name := range f.Vars {
		if _, ok := a[name]; !ok {
			return false
		}
	}
	return true
}

// NoFilter always succeeds and reads no variables.
func NoFilter() Filter {
	return Filter{Eval: func(Assignment) bool { return true }}
}

// Not negates a filter, inheriting its variable set.
func Not(f Filter) Filter {
	return Filter{Vars: f.Vars, Eval: func(a Assignment) bool { return !f.Eval(a) }}
}

// If applies then when cond holds, else otherwise; its variable set is the
// union of all three so the CSP solver waits for all of them to be bound.
func If(cond, then, otherwise Filter) Filter {
	return Filter{
		Vars: unionVars(cond.Vars, then.Vars, otherwise.Vars),
		Eval: func(a Assignment) bool {
			if cond.Eval(a) {
				return then.Eval(a)
			}
			return otherwise.Eval(a)
		},
	}
}

func unionVars(lists ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range lists {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// SameLength requires all named variables' blocks to have equal Length().
func SameLength(vars ...string) Filter {
	return Filter{Vars: vars, Eval: func(a Assignment) bool {
		if len(vars) < 2 {
			return true
		}
		n := a[vars[0]].Length()
		for _, name := range vars[1:] {
			if a[name].Length() != n {
				return false
			}
		}
		return true
	}}
}

// SameTable requires all named variables' blocks to belong to the same table.
func SameTable(vars ...string) Filter {
	return Filter{Vars: vars, Eval: func(a Assignment) bool {
		if len(vars) < 2 {
			return true
		}
		t := a[vars[0]].Table
		for _, name := range vars[1:] {
			if a[name].Table != t {
				return false
			}
		}
		return true
	}}
}

// SameOrientation requires all named variables' blocks to share orientation.
func SameOrientation(vars ...string) Filter {
	return Filter{Vars: vars, Eval: func(a Assignment) bool {
		if len(vars) < 2 {
			return true
		}
		o := a[vars[0]].Orientation
		for _, name := range vars[1:] {
			if a[name].Orientation != o {
				return false
			}
		}
		return true
	}}
}

// SameType requires all named variables' blocks to share a dominant type.
func SameType(vars ...string) Filter {
	return Filter{Vars: vars, Eval: func(a Assignment) bool {
		if len(vars) < 2 {
			return true
		}
		t := a[vars[0]].DominantType
		for _, name := range vars[1:] {
			if a[name].DominantType != t {
				return false
			}
		}
		return true
	}}
}

// SizeSpec bounds one variable's shape; zero fields are unchecked. Max, when
// true, makes the listed bounds upper bounds instead of lower bounds,
// matching spec.md §3's `SizeFilter(rows?, cols?, length?, vectors?, max?)`.
type SizeSpec struct {
	Rows, Cols, Length, Vectors int
	Max                         bool
}

// SizeFilter checks v's shape against spec.
func SizeFilter(v string, spec SizeSpec) Filter {
	return Filter{Vars: []string{v}, Eval: func(a Assignment) bool {
		b := a[v]
		cmp := func(have, want int) bool {
			if want == 0 {
				return true
			}
			if spec.Max {
				return have <= want
			}
			return have >= want
		}
		return cmp(b.Rows(), spec.Rows) && cmp(b.Columns(), spec.Cols) &&
			cmp(b.VectorLength(), spec.Length) && cmp(b.Vectors(), spec.Vectors)
	}}
}

// OrientationFilter requires v's block to have the given orientation.
func OrientationFilter(v string, o geom.Orientation) Filter {
	return Filter{Vars: []string{v}, Eval: func(a Assignment) bool { return a[v].Orientation == o }}
}

// NotPartial requires none of the named variables' blocks to contain blanks.
func NotPartial(vars ...string) Filter {
	return Filter{Vars: vars, Eval: func(a Assignment) bool {
		for _, name := range vars {
			if a[name].IsPartial() {
				return false
			}
		}
		return true
	}}
}

// Partial requires v's block to contain at least one blank.
func Partial(v string) Filter {
	return Filter{Vars: []string{v}, Eval: func(a Assignment) bool { return a[v].IsPartial() }}
}

// NotSubgroup requires that neither v1's nor v2's block is a subgroup of the other.
func NotSubgroup(v1, v2 string) Filter {
	return Filter{Vars: []string{v1, v2}, Eval: func(a Assignment) bool {
		b1, b2 := a[v1], a[v2]
		return !b1.IsSubgroup(b2) && !b2.IsSubgroup(b1)
	}}
}

// Ordered requires v1's block to sort strictly before v2's under Block.Less,
// used to suppress symmetric duplicates for commutative templates (e.g. Equal).
func Ordered(v1, v2 string) Filter {
	return Filter{Vars: []string{v1, v2}, Eval: func(a Assignment) bool { return a[v1].Less(a[v2]) }}
}

// NotOverlapping requires that no two of the named variables' blocks share a
// cell; this is the invariant from spec.md §3 ("No two variables ... map to
// overlapping sheet regions"), applied as an explicit filter wherever a
// template does not already imply it via SameTable+size bounds.
func NotOverlapping(vars ...string) Filter {
	return Filter{Vars: vars, Eval: func(a Assignment) bool {
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				if a[vars[i]].OverlapsWith(a[vars[j]]) {
					return false
				}
			}
		}
		return true
	}}
}

// admitsVariable reports whether block's dominant type satisfies v's
// admissible type set and vector-ness, per spec.md §4.4 step 2.
func admitsVariable(v Variable, b *geom.Block) bool {
	if v.IsVector && !b.IsVector() {
		return false
	}
	return celltype.AdmitsAny(b.DominantType, v.Types)
}

// AdmitsVariable exports admitsVariable for internal/assign.
func AdmitsVariable(v Variable, b *geom.Block) bool { return admitsVariable(v, b) }
