// Package solutions implements spec.md §4.5: an append-only, indexable
// collection of discovered constraint instances supporting a fast
// "does constraint C hold over this tuple of blocks?" query used by
// validators to prune already-subsumed candidates.
package solutions

import (
	"sync"

	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/template"
)

// ConstraintInstance is a validated assignment together with its template,
// created only by a validator and never mutated thereafter (spec.md §3).
type ConstraintInstance struct {
	Template   *template.Template
	Assignment template.Assignment
}

// Formula renders the instance with its template's print format.
func (c ConstraintInstance) Formula() string { return c.Template.Render(c.Assignment) }

// key is the normalized lookup key for Has: a template name paired with the
// structural identity of each block in declared-key-variable order.
type key struct {
	template string
	blocks   string
}

// Store is the append-only solutions collection.
type Store struct {
	mu      sync.RWMutex
	all     []ConstraintInstance
	byTmpl  map[string][]template.Assignment
	hasKeys map[key]bool
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		byTmpl:  map[string][]template.Assignment{},
		hasKeys: map[key]bool{},
	}
}

// Append records a validated instance. It is called only by the
// orchestrator (internal/learn), once per validator result, per spec.md
// §4.6 ("the orchestrator wraps them in ConstraintInstance and appends").
func (s *Store) Append(inst ConstraintInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, inst)
	s.byTmpl[inst.Template.Name] = append(s.byTmpl[inst.Template.Name], inst.Assignment)
	s.hasKeys[indexKey(inst.Template.Name, inst.Template.VariableNames(), inst.Assignment)] = true
}

// GetSolutions returns every assignment recorded so far for templateName, in
// the order they were appended.
func (s *Store) GetSolutions(templateName string) []template.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]template.Assignment, len(s.byTmpl[templateName]))
	copy(out, s.byTmpl[templateName])
	return out
}

// Has reports whether templateName already holds over the given
// variable→block tuple. Append indexes an instance under all of its
// template's variables in declared order, so a match needs the caller to
// pass every variable in that order, e.g. ("PK","FK") for a ForeignKey
// pruning check.
func (s *Store) Has(templateName string, vars []string, blocks []*geom.Block) bool {
	if len(vars) != len(blocks) {
		return false
	}
	a := make(template.Assignment, len(vars))
	for i, v := range vars {
		a[v] = blocks[i]
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasKeys[indexKey(templateName, vars, a)]
}

// All returns every recorded instance across every template, in append
// order (templates in topological order, validator iteration order within
// a template — spec.md §6's determinism guarantee).
func (s *Store) All() []ConstraintInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConstraintInstance, len(s.all))
	copy(out, s.all)
	return out
}

func indexKey(templateName string, vars []string, a template.Assignment) key {
	b := make([]byte, 0, 64)
	for _, v := range vars {
		blk, ok := a[v]
		if !ok {
			continue
		}
		k := blk.Key()
		b = append(b, '|')
		b = append(b, k.Table...)
		b = appendInt(b, k.Rel.Col)
		b = appendInt(b, k.Rel.Row)
		b = appendInt(b, k.Rel.Width)
		b = appendInt(b, k.Rel.Height)
		b = appendInt(b, int(k.Orientation))
	}
	return key{template: templateName, blocks: string(b)}
}

func appendInt(b []byte, n int) []byte {
	b = append(b, ',')
	if n == 0 {
		return append(b, '0')
	}
	neg := n < 0
	if neg {
		n = -n
		b = append(b, '-')
	}
	start := len(b)
	for n > 0 {
		b = append(b, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
