package validate

import "github.com/tacle-dev/tacle/internal/template"

// validateAllDifferent keeps candidates whose X vector has no duplicate
// values (NotPartial already guarantees no blanks to worry about).
func validateAllDifferent(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		x := a["X"]
		seen := make(map[string]bool, x.VectorLength())
		ok := true
		for _, v := range stringValues(x, 0) {
			if seen[v] {
				ok = false
				break
			}
			seen[v] = true
		}
		if ok {
			out = append(out, a)
		}
	}
	return out
}

// validatePermutation keeps candidates whose X vector is a permutation of
// 1..len(X).
func validatePermutation(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		x := a["X"]
		vals := floatValues(x, 0)
		sorted := sortedInts(vals)
		ok := true
		for i, v := range sorted {
			if !equal(v, float64(i+1)) {
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

// validateSeries keeps candidates whose X vector is exactly 1..len(X) in
// position order (derived from an already-validated Permutation).
func validateSeries(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		x := a["X"]
		vals := floatValues(x, 0)
		ok := true
		for i, v := range vals {
			if !equal(v, float64(i+1)) {
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

// validateOrdered keeps candidates whose X vector is strictly increasing.
func validateOrdered(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		vals := floatValues(a["X"], 0)
		ok := true
		for i := 1; i < len(vals); i++ {
			if !(vals[i-1] < vals[i]) {
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

// validateRank keeps candidates where Y is the descending competition rank
// of X (rank(x) = 1 + count of strictly greater elements, so tied values
// share a rank and the next rank is skipped, e.g. 1,2,2,4, per the worked
// example in spec.md §8 scenario 6), rejecting any candidate
// already known to be an Equal(Y,X) pair.
func validateRank(candidates []template.Assignment, d deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		y, x := a["Y"], a["X"]
		if foundEqual(y, x, d.store) {
			continue
		}
		xs := floatValues(x, 0)
		ys := floatValues(y, 0)
		if len(xs) != len(ys) {
			continue
		}
		ok := true
		for i, xv := range xs {
			rank := 1
			for _, other := range xs {
				if other > xv {
					rank++
				}
			}
			if !equal(ys[i], float64(rank)) {
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
