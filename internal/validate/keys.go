package validate

import "github.com/tacle-dev/tacle/internal/template"

// validateForeignKey keeps candidates where every non-blank FK value
// appears in PK's value set.
func validateForeignKey(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		pk, fk := a["PK"], a["FK"]
		keys := discreteKeySet(pk, 0)
		ok := true
		for _, v := range stringValues(fk, 0) {
			if v == "" {
				continue
			}
			if !keys[v] {
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

// validateLookup keeps candidates where FV[i] = OV[index of FK[i] in OK].
func validateLookup(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		ok := a["OK"]
		ov := a["OV"]
		fk := a["FK"]
		fv := a["FV"]

		index := keyIndex(stringValues(ok, 0))
		okVals, _ := ov.GetVectorTyped(0)
		fvVals, _ := fv.GetVectorTyped(0)
		fkStr := stringValues(fk, 0)

		valid := true
		for i, k := range fkStr {
			j, present := index[k]
			if !present {
				valid = false
				break
			}
			if !equalAny(fvVals[i], okVals[j]) {
				valid = false
				break
			}
		}
		if valid {
			out = append(out, a)
		}
	}
	return out
}

// keyIndex builds a value->first-occurrence-index map for a discrete vector.
func keyIndex(values []string) map[string]int {
	idx := make(map[string]int, len(values))
	for i, v := range values {
		if _, ok := idx[v]; !ok {
			idx[v] = i
		}
	}
	return idx
}

// validateFuzzyLookup keeps candidates where FV[i] = OV[j], j the largest
// index with OK[j] <= FK[i] (OK sorted ascending, derived from Ordered), and
// at least one row is an inexact match (spec.md §9's open question: also
// rejects the degenerate all-exact case, letting Equal-pruning subsume it).
func validateFuzzyLookup(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		ok, ov, fk, fv := a["OK"], a["OV"], a["FK"], a["FV"]
		okKeys := floatValues(ok, 0)
		okVals, _ := ov.GetVectorTyped(0)
		fkKeys := floatValues(fk, 0)
		fvVals, _ := fv.GetVectorTyped(0)

		valid := true
		sawInexact := false
		for i, target := range fkKeys {
			j := fuzzyFloor(okKeys, target)
			if j < 0 {
				valid = false
				break
			}
			if !equal(okKeys[j], target) {
				sawInexact = true
			}
			if !equalAny(fvVals[i], okVals[j]) {
				valid = false
				break
			}
		}
		if valid && sawInexact {
			out = append(out, a)
		}
	}
	return out
}

// fuzzyFloor returns the largest index j with sortedKeys[j] <= target, or -1
// if none (target is below every key).
func fuzzyFloor(sortedKeys []float64, target float64) int {
	best := -1
	for j, k := range sortedKeys {
		if k <= target {
			best = j
			continue
		}
		break
	}
	return best
}
