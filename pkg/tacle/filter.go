package tacle

import (
	"path"
	"strings"

	"github.com/tacle-dev/tacle/internal/solutions"
)

// FilterConstraints narrows instances to those matching any of patterns,
// per parser.py's glob/class filter grammar (spec.md §6): each pattern is
// either
//
//   - a glob over the template's (possibly compound, e.g. "sum (col)") name,
//   - a template class shorthand matching every parametrisation of that
//     kind (e.g. "aggregate" keeps every Aggregate(*,*) instance), or
//   - one of the sentinels "<formula>"/"<f>" (keep formula-shaped
//     templates: Aggregate, Rank, Lookup, ...) and "<constraint>"/"<c>"
//     (keep everything else).
//
// No patterns means no filtering.
func FilterConstraints(instances []solutions.ConstraintInstance, patterns ...string) []solutions.ConstraintInstance {
	if len(patterns) == 0 {
		return instances
	}

	allFormulas, allConstraints := false, false
	var rest []string
	for _, p := range patterns {
		switch p {
		case "<formula>", "<f>":
			allFormulas = true
		case "<constraint>", "<c>":
			allConstraints = true
		default:
			rest = append(rest, p)
		}
	}

	out := make([]solutions.ConstraintInstance, 0, len(instances))
	for _, inst := range instances {
		if allFormulas && inst.Template.IsFormula() {
			out = append(out, inst)
			continue
		}
		if allConstraints && !inst.Template.IsFormula() {
			out = append(out, inst)
			continue
		}
		if matchesAny(inst, rest) {
			out = append(out, inst)
		}
	}
	return out
}

func matchesAny(inst solutions.ConstraintInstance, patterns []string) bool {
	for _, p := range patterns {
		if strings.EqualFold(p, inst.Template.Kind.String()) {
			return true
		}
		if ok, _ := path.Match(p, inst.Template.Name); ok {
			return true
		}
	}
	return false
}
