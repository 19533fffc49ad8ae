// Package assign implements spec.md §4.4: given a template, the available
// blocks, and the current solutions store, enumerate every variable→block
// assignment satisfying the variable's type/vector-ness constraints, the
// source's dependency (if any), and all structural filters. The search
// fixes already-bound (seeded) variables first and then free variables in
// declaration order, backtracking as soon as a partial assignment fails a
// ready filter — the ordering original_source/Code/src/core/assignment.py
// uses, adopted per SPEC_FULL.md §3.
package assign

import (
	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/template"
)

// Generate returns every candidate assignment for tmpl that satisfies its
// source and structural filters, given the full candidate block set and the
// solutions discovered by prerequisite templates so far.
func Generate(tmpl *template.Template, blocks []*geom.Block, store *solutions.Store) []template.Assignment {
	seeds := seedAssignments(tmpl, store)
	if len(seeds) == 0 {
		return nil
	}

	unbound := unboundVariables(tmpl, seeds[0])
	domains := make(map[string][]*geom.Block, len(unbound))
	for _, uv := range unbound {
		d := domainFor(uv, blocks)
		if len(d) == 0 {
			// Empty domain for a free variable is independent of which seed
			// we're completing; no seed can ever succeed (spec.md §4.4 step 2).
			return nil
		}
		domains[uv.Name] = d
	}

	var out []template.Assignment
	for _, seed := range seeds {
		solver := &backtracker{
			tmpl:    tmpl,
			unbound: unbound,
			domains: domains,
			results: &out,
		}
		solver.search(cloneAssignment(seed), 0)
	}
	return out
}

func cloneAssignment(a template.Assignment) template.Assignment {
	out := make(template.Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// seedAssignments implements spec.md §4.4 step 1.
func seedAssignments(tmpl *template.Template, store *solutions.Store) []template.Assignment {
	if tmpl.Source.Kind == template.FreeSource {
		return []template.Assignment{{}}
	}
	prereqSolutions := store.GetSolutions(tmpl.Source.Prereq)
	seeds := make([]template.Assignment, 0, len(prereqSolutions))
	for _, sol := range prereqSolutions {
		seed := make(template.Assignment, len(tmpl.Source.Rename))
		ok := true
		for oldName, newName := range tmpl.Source.Rename {
			b, present := sol[oldName]
			if !present {
				ok = false
				break
			}
			seed[newName] = b
		}
		if ok {
			seeds = append(seeds, seed)
		}
	}
	return seeds
}

func unboundVariables(tmpl *template.Template, seed template.Assignment) []template.Variable {
	var out []template.Variable
	for _, variable := range tmpl.Variables {
		if _, bound := seed[variable.Name]; !bound {
			out = append(out, variable)
		}
	}
	return out
}

// domainFor enumerates the admissible blocks for a free variable: whole
// blocks of an admissible dominant type when the variable is not
// vector-only, or every single-vector sub-block of an admissible block when
// it is (spec.md §4.4 step 2), deduplicated by structural identity.
func domainFor(v template.Variable, blocks []*geom.Block) []*geom.Block {
	seen := map[geom.BlockKey]bool{}
	var out []*geom.Block
	add := func(b *geom.Block) {
		k := b.Key()
		if !seen[k] {
			seen[k] = true
			out = append(out, b)
		}
	}
	for _, b := range blocks {
		if !v.IsVector {
			if template.AdmitsVariable(v, b) {
				add(b)
			}
			continue
		}
		if !template.AdmitsVariable(v, b) {
			continue
		}
		if b.IsVector() {
			add(b)
			continue
		}
		for i := 0; i < b.Length(); i++ {
			vec, err := b.Vector(i)
			if err != nil {
				continue
			}
			if template.AdmitsVariable(v, vec) {
				add(vec)
			}
		}
	}
	return out
}

type backtracker struct {
	tmpl    *template.Template
	unbound []template.Variable
	domains map[string][]*geom.Block
	results *[]template.Assignment
}

// search extends partial at position idx into unbound, checking every
// filter that becomes fully bound as soon as it does, and appending complete
// assignments that satisfy all filters to b.results.
func (b *backtracker) search(partial template.Assignment, idx int) {
	if idx == len(b.unbound) {
		*b.results = append(*b.results, partial)
		return
	}
	uv := b.unbound[idx]
	for _, candidate := range b.domains[uv.Name] {
		next := cloneAssignment(partial)
		next[uv.Name] = candidate
		if !b.readyFiltersHold(next) {
			continue
		}
		b.search(next, idx+1)
	}
}

// readyFiltersHold evaluates every filter whose referenced variables are all
// bound in a, short-circuiting the search as soon as any fails.
func (b *backtracker) readyFiltersHold(a template.Assignment) bool {
	for _, f := range b.tmpl.Filters {
		if f.Ready(a) && !f.Eval(a) {
			return false
		}
	}
	return true
}
