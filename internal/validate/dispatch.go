package validate

import (
	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/template"
)

// deps bundles the read-only context a validator needs beyond its candidate
// list: the solutions store, for pruning checks against already-discovered
// constraints (spec.md §4.6's conditional-aggregate pruning, Rank's
// Equal-rejection).
type deps struct {
	store *solutions.Store
}

// Validate dispatches tmpl's candidates to the strategy keyed by tmpl.Kind
// (spec.md §9's "dynamic dispatch over templates → tagged-union + strategy
// registry") and returns the subset that satisfies the semantic predicate,
// in candidate order.
func Validate(tmpl *template.Template, candidates []template.Assignment, store *solutions.Store) []template.Assignment {
	d := deps{store: store}
	switch tmpl.Kind {
	case template.KindEqual:
		return validateEqual(candidates, d)
	case template.KindEqualGroup:
		return validateEqualGroup(candidates, d)
	case template.KindAllDifferent:
		return validateAllDifferent(candidates, d)
	case template.KindPermutation:
		return validatePermutation(candidates, d)
	case template.KindSeries:
		return validateSeries(candidates, d)
	case template.KindOrdered:
		return validateOrdered(candidates, d)
	case template.KindRank:
		return validateRank(candidates, d)
	case template.KindForeignKey:
		return validateForeignKey(candidates, d)
	case template.KindLookup:
		return validateLookup(candidates, d)
	case template.KindFuzzyLookup:
		return validateFuzzyLookup(candidates, d)
	case template.KindConditionalAggregate:
		return validateConditionalAggregate(tmpl, candidates, d)
	case template.KindRunningTotal:
		return validateRunningTotal(candidates, d)
	case template.KindForeignOp:
		return validateForeignOp(tmpl, candidates, d)
	case template.KindAggregate:
		return validateAggregate(tmpl, candidates, d)
	case template.KindProduct:
		return validateProduct(candidates, d)
	case template.KindDiff:
		return validateDiff(candidates, d)
	case template.KindPercentualDiff:
		return validatePercentualDiff(candidates, d)
	case template.KindSumProduct:
		return validateSumProduct(candidates, d)
	case template.KindProjection:
		return validateProjection(candidates, d)
	case template.KindMutualExclusivity:
		return validateMutualExclusivity(candidates, d)
	default:
		return nil
	}
}
