package template

import "github.com/tacle-dev/tacle/config"

// Operation is an aggregation kind with its 2-D reducer and pointwise
// combiner bundled together, per spec.md §9's "Operation enum with embedded
// callables → enum + function table" design note.
type Operation struct {
	Name string
	// Reduce folds a slice of non-blank numeric values; ok is false when the
	// group is empty and the operation has no sensible default (callers
	// supply one, e.g. 0 for an empty SUM). COUNT returns 0 with ok true.
	Reduce func(values []float64) (result float64, ok bool)
	// MinVectors is the minimum vector count spec.md §4.3 requires before
	// this operation is attempted along a major axis (3 for SUM/PRODUCT to
	// reject trivial 2-vector identities, 2 otherwise).
	MinVectors int
}

func sum(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	s := 0.0
	for _, v := range values {
		s += v
	}
	return s, true
}

func product(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	p := 1.0
	for _, v := range values {
		p *= v
	}
	return p, true
}

func maxOf(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m, true
}

func minOf(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m, true
}

func average(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	s, _ := sum(values)
	return s / float64(len(values)), true
}

func count(values []float64) (float64, bool) {
	return float64(len(values)), true
}

var (
	OpSum     = Operation{Name: "sum", Reduce: sum, MinVectors: config.DefaultMinVectorsSumProduct}
	OpProduct = Operation{Name: "product", Reduce: product, MinVectors: config.DefaultMinVectorsSumProduct}
	OpMax     = Operation{Name: "max", Reduce: maxOf, MinVectors: config.DefaultMinVectorsOther}
	OpMin     = Operation{Name: "min", Reduce: minOf, MinVectors: config.DefaultMinVectorsOther}
	OpAverage = Operation{Name: "average", Reduce: average, MinVectors: config.DefaultMinVectorsOther}
	OpCount   = Operation{Name: "count", Reduce: count, MinVectors: config.DefaultMinVectorsOther}
)

// Operations lists every aggregation kind, in catalogue-registration order.
var Operations = []Operation{OpSum, OpProduct, OpMax, OpMin, OpAverage, OpCount}
