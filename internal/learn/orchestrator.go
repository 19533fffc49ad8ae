// Package learn implements spec.md §4.7: the orchestrator that topologically
// orders the template catalogue by their DependsOn sets, then for each
// template in order runs the CSP generator (internal/assign), dispatches
// its candidates to the matching validator (internal/validate), and
// appends every validated instance to the solutions store
// (internal/solutions).
package learn

import (
	"errors"
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"github.com/rs/zerolog"

	"github.com/tacle-dev/tacle/internal/assign"
	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/template"
	"github.com/tacle-dev/tacle/internal/validate"
	"github.com/tacle-dev/tacle/pkg/tcerr"
)

// Run executes the full learning loop over blocks using the given template
// set (spec.md §6 names this templates_enabled; pass template.Catalogue()
// for the default, unfiltered run) and returns every validated
// ConstraintInstance in deterministic order: templates in topological order,
// within a template the CSP enumeration order followed by the validator's.
func Run(blocks []*geom.Block, templates []*template.Template, log zerolog.Logger) ([]solutions.ConstraintInstance, error) {
	order, err := topologicalOrder(templates)
	if err != nil {
		return nil, err
	}

	store := solutions.New()
	for _, tmpl := range order {
		candidates := assign.Generate(tmpl, blocks, store)
		validated := validate.Validate(tmpl, candidates, store)
		for _, a := range validated {
			store.Append(solutions.ConstraintInstance{Template: tmpl, Assignment: a})
		}
		log.Debug().
			Str("template", tmpl.Name).
			Int("candidates", len(candidates)).
			Int("validated", len(validated)).
			Msg("template learned")
	}
	return store.All(), nil
}

// topologicalOrder sorts templates by their DependsOn edges using
// katalvlaran/lvlath's directed-graph topological sort, ties broken by
// template name for determinism (spec.md §4.7). A dependency cycle is a
// fatal template-definition error (spec.md §7).
func topologicalOrder(templates []*template.Template) ([]*template.Template, error) {
	byName := template.ByName(templates)

	names := make([]string, 0, len(templates))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	g := core.NewGraph(core.WithDirected(true))
	for _, name := range names {
		if err := g.AddVertex(name); err != nil {
			return nil, tcerr.Wrapf(tcerr.TemplateDefinition, "add vertex %q: %v", name, err)
		}
	}
	for _, name := range names {
		tmpl := byName[name]
		for _, dep := range tmpl.DependsOn {
			if _, ok := byName[dep]; !ok {
				return nil, tcerr.Wrapf(tcerr.TemplateDefinition, "template %q depends on unknown template %q", name, dep)
			}
			if _, err := g.AddEdge(dep, name, 0); err != nil {
				return nil, tcerr.Wrapf(tcerr.TemplateDefinition, "add dependency edge %q -> %q: %v", dep, name, err)
			}
		}
	}

	sorted, err := dfs.TopologicalSort(g)
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			return nil, tcerr.New(tcerr.DependencyCycle, "template dependency graph contains a cycle")
		}
		return nil, tcerr.Wrapf(tcerr.TemplateDefinition, "topological sort failed: %v", err)
	}

	out := make([]*template.Template, 0, len(sorted))
	for _, name := range sorted {
		out = append(out, byName[name])
	}
	return out, nil
}
