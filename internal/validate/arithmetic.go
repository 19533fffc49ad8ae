package validate

import "github.com/tacle-dev/tacle/internal/template"

// validateRunningTotal keeps candidates where A[0]=P[0]-N[0] and
// A[i]=A[i-1]+P[i]-N[i] for every later i, rejecting the trivial P≡N case.
func validateRunningTotal(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		p, n := floatValues(a["P"], 0), floatValues(a["N"], 0)
		acc := floatValues(a["A"], 0)
		if len(p) != len(n) || len(p) != len(acc) || len(p) == 0 {
			continue
		}
		if elementwiseEqual(p, n) {
			continue
		}
		valid := equal(acc[0], p[0]-n[0])
		running := p[0] - n[0]
		for i := 1; i < len(p) && valid; i++ {
			running += p[i] - n[i]
			valid = equal(acc[i], running)
		}
		if valid {
			out = append(out, a)
		}
	}
	return out
}

// validateProduct keeps candidates where R[i] = O1[i] * O2[i].
func validateProduct(candidates []template.Assignment, _ deps) []template.Assignment {
	return validatePointwise(candidates, func(x, y float64) (float64, bool) { return x * y, true })
}

// validateDiff keeps candidates where R[i] = O1[i] - O2[i].
func validateDiff(candidates []template.Assignment, _ deps) []template.Assignment {
	return validatePointwise(candidates, func(x, y float64) (float64, bool) { return x - y, true })
}

// validatePercentualDiff keeps candidates where R[i] = (O1[i]-O2[i])/O2[i],
// rejecting the whole candidate on any division by zero (spec.md §7).
func validatePercentualDiff(candidates []template.Assignment, _ deps) []template.Assignment {
	return validatePointwise(candidates, func(x, y float64) (float64, bool) {
		if y == 0 {
			return 0, false
		}
		return (x - y) / y, true
	})
}

func validatePointwise(candidates []template.Assignment, combine func(x, y float64) (float64, bool)) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		r := floatValues(a["R"], 0)
		o1 := floatValues(a["O1"], 0)
		o2 := floatValues(a["O2"], 0)
		if len(r) != len(o1) || len(r) != len(o2) {
			continue
		}
		valid := true
		for i := range r {
			computed, ok := combine(o1[i], o2[i])
			if !ok || !equal(computed, r[i]) {
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

// validateSumProduct keeps candidates where R (a 1x1 block) equals the dot
// product of O1 and O2.
func validateSumProduct(candidates []template.Assignment, _ deps) []template.Assignment {
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		rVals := floatValues(a["R"], 0)
		if len(rVals) != 1 {
			continue
		}
		o1 := floatValues(a["O1"], 0)
		o2 := floatValues(a["O2"], 0)
		if len(o1) != len(o2) {
			continue
		}
		sum := 0.0
		for i := range o1 {
			sum += o1[i] * o2[i]
		}
		if equal(smartRound(sum, rVals[0]), rVals[0]) {
			out = append(out, a)
		}
	}
	return out
}
