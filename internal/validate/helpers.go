// Package validate implements spec.md §4.6: the per-template semantic
// predicates that turn a CSP-generated candidate assignment into a
// validated ConstraintInstance. Validators never error for data reasons
// (spec.md §7); they simply drop a candidate that fails its predicate.
package validate

import (
	"math"
	"sort"

	"github.com/tacle-dev/tacle/config"
	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/solutions"
)

// tolerance is the template-agnostic absolute tolerance for numeric equality
// (spec.md §9, "Floating-point comparisons").
const tolerance = config.DefaultFloatTolerance

// equal compares two numeric values within tolerance; NaN equals NaN (both
// blank), matching spec.md §4.6's `equal(x,y)`.
func equal(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return math.Abs(x-y) <= tolerance
}

// equalAny compares two typed cell values the way equal(x,y) generalises
// across numeric and string domains: numeric tolerance for numbers, exact
// match for strings.
func equalAny(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return equal(af, bf)
	}
	as, asok := a.(string)
	bs, bsok := b.(string)
	if asok && bsok {
		return as == bs
	}
	return false
}

// scale returns the number of fractional digits ref was given to, up to a
// practical cap, used by smartRound to tolerate spreadsheet display
// rounding (spec.md §9).
func scale(ref float64) int {
	if math.IsNaN(ref) {
		return 0
	}
	s := ref
	for n := 0; n <= 10; n++ {
		rounded := math.Round(s*math.Pow(10, float64(n))) / math.Pow(10, float64(n))
		if math.Abs(rounded-s) <= tolerance {
			return n
		}
	}
	return 10
}

// smartRound rounds x to the same number of fractional digits as ref
// (spec.md §4.6's `smart_round(x, ref)`).
func smartRound(x, ref float64) float64 {
	n := scale(ref)
	p := math.Pow(10, float64(n))
	return math.Round(x*p) / p
}

// foundEqual reports whether the store already holds an Equal instance over
// (a,b) in either order, per spec.md §4.6's `found_equal(a,b,store)`. Equal
// instances are keyed canonically (O1<O2 under Block.Less), so only one
// order needs to be probed once the pair is put in canonical order.
func foundEqual(a, b *geom.Block, store *solutions.Store) bool {
	lo, hi := a, b
	if !lo.Less(hi) {
		lo, hi = hi, lo
	}
	return store.Has("Equal", []string{"O1", "O2"}, []*geom.Block{lo, hi})
}

// floatValues extracts vector i of b as float64s, blank-coded as NaN.
func floatValues(b *geom.Block, i int) []float64 {
	raw, _ := b.GetVectorTyped(i)
	out := make([]float64, len(raw))
	for j, v := range raw {
		if f, ok := v.(float64); ok {
			out[j] = f
			continue
		}
		out[j] = math.NaN()
	}
	return out
}

// stringValues extracts vector i of b as raw text.
func stringValues(b *geom.Block, i int) []string {
	return b.GetVector(i)
}

// unionFind is a small disjoint-set over block structural identities, local
// to a single validator invocation, backing the "union-find-lite" shortcut
// for Equal-transitivity (spec.md §9).
type unionFind struct {
	parent map[geom.BlockKey]geom.BlockKey
}

func newUnionFind() *unionFind {
	return &unionFind{parent: map[geom.BlockKey]geom.BlockKey{}}
}

func (u *unionFind) find(b *geom.Block) geom.BlockKey {
	k := b.Key()
	p, ok := u.parent[k]
	if !ok {
		u.parent[k] = k
		return k
	}
	if p == k {
		return k
	}
	root := u.findKey(p)
	u.parent[k] = root
	return root
}

func (u *unionFind) findKey(k geom.BlockKey) geom.BlockKey {
	p, ok := u.parent[k]
	if !ok || p == k {
		u.parent[k] = k
		return k
	}
	root := u.findKey(p)
	u.parent[k] = root
	return root
}

func (u *unionFind) union(a, b *geom.Block) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func (u *unionFind) sameSet(a, b *geom.Block) bool {
	return u.find(a) == u.find(b)
}

// discreteKeySet builds a lookup of the non-blank string values in a
// discrete vector for membership tests (ForeignKey, conditional-aggregate
// pruning).
func discreteKeySet(b *geom.Block, vectorIndex int) map[string]bool {
	set := map[string]bool{}
	for _, v := range stringValues(b, vectorIndex) {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func intersects(a, b map[string]bool) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for k := range small {
		if big[k] {
			return true
		}
	}
	return false
}

// maxRangeFind scans [lo, hi) and returns every maximal contiguous [s,e)
// with e-s >= min for which predicate(s,e) holds, advancing past overlapping
// matches, per spec.md §4.6's `MaxRange(predicate).find(lo, hi, min)`. It is
// not currently exercised by a template validator (no catalogue template
// needs a non-trivial maximal-range scan over solution positions) but is
// kept as the shared primitive validators in other domains of this package
// would reach for, matching the helper's billing in spec.md §4.6.
func maxRangeFind(lo, hi, min int, predicate func(s, e int) bool) [][2]int {
	var out [][2]int
	s := lo
	for s < hi {
		best := -1
		for e := hi; e-s >= min; e-- {
			if predicate(s, e) {
				best = e
				break
			}
		}
		if best < 0 {
			s++
			continue
		}
		out = append(out, [2]int{s, best})
		s = best
	}
	return out
}

// nonBlank filters NaN (blank numeric sentinel) values out of values.
func nonBlank(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// sortedInts is a tiny helper used by the Permutation validator.
func sortedInts(vals []float64) []float64 {
	out := append([]float64(nil), vals...)
	sort.Float64s(out)
	return out
}
