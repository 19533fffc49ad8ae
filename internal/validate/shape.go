package validate

import "github.com/tacle-dev/tacle/internal/template"

// validateProjection keeps candidates where, for every row position, exactly
// one vector of P has a non-blank value and R holds that value.
func validateProjection(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		r, p := a["R"], a["P"]
		rVals, _ := r.GetVectorTyped(0)
		length := p.VectorLength()
		if len(rVals) != length {
			continue
		}

		columns := make([][]any, p.Vectors())
		for vi := 0; vi < p.Vectors(); vi++ {
			vals, _ := p.GetVectorTyped(vi)
			columns[vi] = vals
		}

		valid := true
		for pos := 0; pos < length && valid; pos++ {
			var nonBlankValue any
			count := 0
			for vi := 0; vi < p.Vectors(); vi++ {
				v := columns[vi][pos]
				if isBlankAny(v) {
					continue
				}
				count++
				nonBlankValue = v
			}
			if count != 1 || !equalAny(nonBlankValue, rVals[pos]) {
				valid = false
			}
		}
		if valid {
			out = append(out, a)
		}
	}
	return out
}

func isBlankAny(v any) bool {
	if s, ok := v.(string); ok {
		return s == ""
	}
	if f, ok := v.(float64); ok {
		return f != f // NaN
	}
	return false
}

// validateMutualExclusivity keeps candidates where, for every row position,
// at most one vector of X has a non-blank value.
func validateMutualExclusivity(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		x := a["X"]
		length := x.VectorLength()
		columns := make([][]any, x.Vectors())
		for vi := 0; vi < x.Vectors(); vi++ {
			vals, _ := x.GetVectorTyped(vi)
			columns[vi] = vals
		}
		valid := true
		for pos := 0; pos < length && valid; pos++ {
			count := 0
			for vi := 0; vi < x.Vectors(); vi++ {
				if !isBlankAny(columns[vi][pos]) {
					count++
				}
			}
			if count > 1 {
				valid = false
			}
		}
		if valid {
			out = append(out, a)
		}
	}
	return out
}
