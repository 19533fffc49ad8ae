package validate

import (
	"math"

	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/template"
)

// validateConditionalAggregate keeps candidates where R[i] =
// op({V[j]: FK[j]=OK[i]}), rounded to R[i]'s observed scale before
// comparison (spec.md §4.6). An empty group defaults to the operation's
// identity element (0 for sum, 1 for product, 0 for count); for max/min/
// average, which have no sensible numeric default, an empty group is only
// accepted when R[i] itself is blank. Candidates already subsumed by a
// plain ForeignKey or Lookup relationship are dropped, as are candidates
// whose OK/FK value sets never intersect.
func validateConditionalAggregate(tmpl *template.Template, candidates []template.Assignment, d deps) []template.Assignment {
	op := tmpl.Op
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		okBlock, r, fk, val := a["OK"], a["R"], a["FK"], a["V"]

		if !intersects(discreteKeySet(okBlock, 0), discreteKeySet(fk, 0)) {
			continue
		}
		if d.store.Has("ForeignKey", []string{"PK", "FK"}, []*geom.Block{okBlock, fk}) {
			continue
		}
		if d.store.Has("ForeignKey", []string{"PK", "FK"}, []*geom.Block{r, val}) {
			continue
		}
		if d.store.Has("Lookup", []string{"OK", "OV", "FK", "FV"}, []*geom.Block{r, okBlock, val, fk}) {
			continue
		}

		okKeys := stringValues(okBlock, 0)
		fkKeys := stringValues(fk, 0)
		vals := floatValues(val, 0)
		rVals := floatValues(r, 0)
		if len(rVals) != len(okKeys) || len(fkKeys) != len(vals) {
			continue
		}

		valid := true
		for i, key := range okKeys {
			var group []float64
			for j, fkv := range fkKeys {
				if fkv == key {
					group = append(group, vals[j])
				}
			}
			computed, ok := op.Reduce(nonBlank(group))
			if !ok {
				switch op.Name {
				case "sum", "count":
					computed = 0
				case "product":
					computed = 1
				default:
					if math.IsNaN(rVals[i]) {
						continue
					}
					valid = false
				}
				if !valid {
					break
				}
			}
			if !equal(smartRound(computed, rVals[i]), rVals[i]) {
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

// validateForeignOp keeps candidates where R[i] = op(FV[i], OV[index(FK[i])
// in OK]) for the pointwise two-value application of op.
func validateForeignOp(tmpl *template.Template, candidates []template.Assignment, _ deps) []template.Assignment {
	op := tmpl.Op
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		okBlock, ov, fk, r, fv := a["OK"], a["OV"], a["FK"], a["R"], a["FV"]
		index := keyIndex(stringValues(okBlock, 0))
		ovVals := floatValues(ov, 0)
		fkStr := stringValues(fk, 0)
		fvVals := floatValues(fv, 0)
		rVals := floatValues(r, 0)

		valid := true
		for i, key := range fkStr {
			j, present := index[key]
			if !present {
				valid = false
				break
			}
			computed, ok := op.Reduce([]float64{fvVals[i], ovVals[j]})
			if !ok || !equal(computed, rVals[i]) {
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

// validateAggregate keeps candidates where Y holds the op-aggregate of X
// along the template's orientation: one result per row of X for a "row"
// template, one per column for a "col" template, an empty line counting
// as 0. Y must cover every row (or column) of X; a Y that matches only a
// contiguous part of the aggregate is not searched for.
func validateAggregate(tmpl *template.Template, candidates []template.Assignment, _ deps) []template.Assignment {
	op := tmpl.Op
	out := make([]template.Assignment, 0, len(candidates))
	for _, a := range candidates {
		x, y := a["X"], a["Y"]
		yVals := floatValues(y, 0)
		// Row-wise over column vectors (or column-wise over row vectors)
		// folds across the vectors at each position.
		rowWise := tmpl.Orientation != nil && *tmpl.Orientation == template.OrientHorizontal
		alongVectorLength := rowWise == (x.Orientation == geom.Vertical)
		want := x.Vectors()
		if alongVectorLength {
			want = x.VectorLength()
		}
		if len(yVals) != want {
			continue
		}

		var computed []float64
		if alongVectorLength {
			computed = make([]float64, x.VectorLength())
			for pos := 0; pos < x.VectorLength(); pos++ {
				var group []float64
				for vi := 0; vi < x.Vectors(); vi++ {
					group = append(group, floatValues(x, vi)[pos])
				}
				v, ok := op.Reduce(nonBlank(group))
				if !ok {
					v = 0
				}
				computed[pos] = v
			}
		} else {
			computed = make([]float64, x.Vectors())
			for vi := 0; vi < x.Vectors(); vi++ {
				v, ok := op.Reduce(nonBlank(floatValues(x, vi)))
				if !ok {
					v = 0
				}
				computed[vi] = v
			}
		}

		valid := true
		for i, v := range computed {
			if !equal(smartRound(v, yVals[i]), yVals[i]) {
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
