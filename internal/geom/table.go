package geom

import (
	"fmt"
	"sort"

	"github.com/tacle-dev/tacle/internal/celltype"
)

// Table is a named rectangular region of the sheet backed by a typed 2-D
// value grid, with an optional orientation hint from the preprocessing
// stage (spec.md §1: "table-rectangle detection and per-table vector
// grouping" is an external collaborator; Table is the interface it
// delivers into the core).
type Table struct {
	Name   string
	Bounds Range

	// Values holds the raw cell text, Height rows by Width columns,
	// table-relative (Values[0][0] is the cell at Bounds.Col, Bounds.Row).
	Values [][]string
	// Types holds the per-cell detected type, same shape as Values.
	Types [][]celltype.Type

	// OrientationHint is the preprocessing stage's guess at the table's
	// natural vector orientation (e.g. "records are rows"); blocks are
	// still generated in both orientations regardless of this hint.
	OrientationHint Orientation
}

// NewTable validates that values/types are rectangular and consistent with
// bounds, and constructs a Table. This is the one input-shape validation
// point spec.md §7 assigns to preprocessing.
func NewTable(name string, bounds Range, values [][]string, types [][]celltype.Type) (*Table, error) {
	if len(values) != bounds.Height || len(types) != bounds.Height {
		return nil, errShape("table %q: row count mismatch with bounds", name)
	}
	for i := range values {
		if len(values[i]) != bounds.Width || len(types[i]) != bounds.Width {
			return nil, errShape("table %q: row %d column count mismatch with bounds", name, i)
		}
	}
	return &Table{Name: name, Bounds: bounds, Values: values, Types: types, OrientationHint: Vertical}, nil
}

// Less orders tables by name, per spec.md §3 ("Equality and ordering are by name").
func (t *Table) Less(other *Table) bool { return t.Name < other.Name }

// cellAt returns the raw value and type at table-relative (col,row).
func (t *Table) cellAt(col, row int) (string, celltype.Type) {
	return t.Values[row][col], t.Types[row][col]
}

// SortTables returns tables ordered by name (used wherever deterministic
// iteration over a table set is required).
func SortTables(tables []*Table) []*Table {
	out := append([]*Table(nil), tables...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func errShape(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
