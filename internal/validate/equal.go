package validate

import "github.com/tacle-dev/tacle/internal/template"

// validateEqual keeps candidates whose O1 and O2 vectors are elementwise
// equal, short-circuiting via a local union-find once two vectors are known
// to share a canonical equal-class (spec.md §9's "Equal-transitivity").
func validateEqual(candidates []template.Assignment, _ deps) []template.Assignment {
	uf := newUnionFind()
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		o1, o2 := a["O1"], a["O2"]
		if uf.sameSet(o1, o2) {
			out = append(out, a)
			continue
		}
		v1, v2 := floatValues(o1, 0), floatValues(o2, 0)
		if elementwiseEqual(v1, v2) {
			uf.union(o1, o2)
			out = append(out, a)
		}
	}
	return out
}

func elementwiseEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// validateEqualGroup keeps candidates where every vector of X is elementwise
// equal to X's first vector.
func validateEqualGroup(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		x := a["X"]
		first := floatValues(x, 0)
		ok := true
		for i := 1; i < x.Vectors(); i++ {
			if !elementwiseEqual(first, floatValues(x, i)) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, a)
		}
	}
	return out
}
