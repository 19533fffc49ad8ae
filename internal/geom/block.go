package geom

import (
	"fmt"
	"sync"

	"github.com/tacle-dev/tacle/internal/celltype"
)

// Block is a table-relative oriented range together with its per-vector
// type list, dominant (lattice-join) type, and blank flag, per spec.md §3.
// Equality is by (table, relative range, orientation); a Block and any of
// its sub-blocks share no mutable state beyond a read-only view into the
// parent Table's grid.
type Block struct {
	Table       *Table
	Rel         Range
	Orientation Orientation

	// VectorTypes holds the dominant type of each vector (column or row)
	// within the block, in vector order.
	VectorTypes []celltype.Type
	// DominantType is the lattice-join of VectorTypes.
	DominantType celltype.Type
	// HasBlanks is true if any cell in the block is blank for its column's
	// detected type.
	HasBlanks bool

	mu        sync.Mutex
	subBlocks map[[2]int]*Block
}

// NewBlock constructs a block view over rel within table, computing
// per-vector types, the dominant type, and the blank flag by scanning the
// underlying grid once.
func NewBlock(table *Table, rel Range, orientation Orientation) (*Block, error) {
	// rel is table-relative (0,0 at the table's own corner).
	if rel.Right() > table.Bounds.Width || rel.Bottom() > table.Bounds.Height || rel.Col < 0 || rel.Row < 0 {
		return nil, fmt.Errorf("geom: block range %+v out of table %q bounds (%dx%d)", rel, table.Name, table.Bounds.Width, table.Bounds.Height)
	}
	b := &Block{Table: table, Rel: rel, Orientation: orientation, subBlocks: map[[2]int]*Block{}}
	b.computeTypes()
	return b, nil
}

func (b *Block) computeTypes() {
	n := b.Rel.Vectors(b.Orientation)
	length := b.Rel.VectorLength(b.Orientation)
	b.VectorTypes = make([]celltype.Type, n)
	hasBlanks := false
	for i := 0; i < n; i++ {
		var types []celltype.Type
		for j := 0; j < length; j++ {
			col, row := b.cellCoord(i, j)
			_, t := b.Table.cellAt(col, row)
			if t == celltype.Unknown {
				hasBlanks = true
				continue
			}
			types = append(types, t)
		}
		b.VectorTypes[i] = celltype.Max(types)
	}
	b.HasBlanks = hasBlanks
	b.DominantType = celltype.Max(b.VectorTypes)
}

// cellCoord maps a (vector index, position-within-vector) pair to
// table-relative (col, row).
func (b *Block) cellCoord(vec, pos int) (col, row int) {
	if b.Orientation == Vertical {
		return b.Rel.Col + vec, b.Rel.Row + pos
	}
	return b.Rel.Col + pos, b.Rel.Row + vec
}

// Length is the number of vectors in the block.
func (b *Block) Length() int { return b.Rel.Vectors(b.Orientation) }

// VectorLength is the length of each vector.
func (b *Block) VectorLength() int { return b.Rel.VectorLength(b.Orientation) }

// Vectors returns Length (spec.md External Interfaces names this "vectors()").
func (b *Block) Vectors() int { return b.Length() }

// Rows returns the number of rows the block spans.
func (b *Block) Rows() int { return b.Rel.Height }

// Columns returns the number of columns the block spans.
func (b *Block) Columns() int { return b.Rel.Width }

// GetVector returns the raw text values of vector i, in position order.
func (b *Block) GetVector(i int) []string {
	length := b.VectorLength()
	out := make([]string, length)
	for j := 0; j < length; j++ {
		col, row := b.cellCoord(i, j)
		out[j], _ = b.Table.cellAt(col, row)
	}
	return out
}

// GetVectorTyped returns (value, type) pairs for vector i, blank-coded per
// celltype.Blank for cells whose detected type is Unknown.
func (b *Block) GetVectorTyped(i int) ([]any, []celltype.Type) {
	length := b.VectorLength()
	vals := make([]any, length)
	types := make([]celltype.Type, length)
	for j := 0; j < length; j++ {
		col, row := b.cellCoord(i, j)
		raw, t := b.Table.cellAt(col, row)
		types[j] = t
		if t == celltype.Unknown {
			vals[j] = celltype.Blank(b.DominantType)
			continue
		}
		if celltype.LessEq(t, celltype.Numeric) {
			f, _ := celltype.ParseNumeric(raw)
			vals[j] = f
		} else {
			vals[j] = raw
		}
	}
	return vals, types
}

// VectorSubset returns the raw values at positions [i, j) within every
// vector's own index space — i.e. a length-(j-i) slice view of vector-local
// positions, not a sub-block; it is a convenience accessor named after the
// External Interfaces' vector_subset(i, j).
func (b *Block) VectorSubset(i, j int) [][]string {
	out := make([][]string, b.Length())
	for v := 0; v < b.Length(); v++ {
		full := b.GetVector(v)
		if i < 0 {
			i = 0
		}
		if j > len(full) {
			j = len(full)
		}
		out[v] = append([]string(nil), full[i:j]...)
	}
	return out
}

// SubBlock returns the memoised sub-block spanning vectors [i, i+n), sharing
// the parent's Table pointer and no other mutable state.
func (b *Block) SubBlock(i, n int) (*Block, error) {
	key := [2]int{i, n}
	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.subBlocks[key]; ok {
		return cached, nil
	}
	rel, err := b.Rel.SubRange(b.Orientation, i, n)
	if err != nil {
		return nil, err
	}
	sub, err := NewBlock(b.Table, rel, b.Orientation)
	if err != nil {
		return nil, err
	}
	b.subBlocks[key] = sub
	return sub, nil
}

// Vector returns the single-vector sub-block at index i, per spec.md §4.2
// ("iteration over a block yields sub_block(i,1) for each i").
func (b *Block) Vector(i int) (*Block, error) { return b.SubBlock(i, 1) }

// IsSubgroup reports whether b is contained in other: same table, same
// orientation, and other's relative range contains b's.
func (b *Block) IsSubgroup(other *Block) bool {
	return b.Table == other.Table && b.Orientation == other.Orientation && other.Rel.Contains(b.Rel)
}

// OverlapsWith reports whether b and other share at least one cell: same
// table and intersecting relative ranges (orientation-independent, since
// overlap is a sheet-geometry question).
func (b *Block) OverlapsWith(other *Block) bool {
	return b.Table == other.Table && b.Rel.Intersects(other.Rel)
}

// Equal implements spec.md §3's Block equality: same table, same relative
// range, same orientation.
func (b *Block) Equal(other *Block) bool {
	if b == other {
		return true
	}
	if other == nil {
		return false
	}
	return b.Table == other.Table && b.Rel == other.Rel && b.Orientation == other.Orientation
}

// Less implements the total ordering from spec.md §3: lexicographic over
// (table, orientation, index, count, length).
func (b *Block) Less(other *Block) bool {
	if b.Table != other.Table {
		return b.Table.Less(other.Table)
	}
	if b.Orientation != other.Orientation {
		return b.Orientation < other.Orientation
	}
	bi, oi := b.Rel.Col, other.Rel.Col
	if b.Orientation == Horizontal {
		bi, oi = b.Rel.Row, other.Rel.Row
	}
	if bi != oi {
		return bi < oi
	}
	if b.Length() != other.Length() {
		return b.Length() < other.Length()
	}
	return b.VectorLength() < other.VectorLength()
}

// Key returns a comparable identity used by structural caches (solutions
// store, overlap caches) so that logically-equal blocks share entries
// regardless of pointer identity, per the design notes in spec.md §9.
func (b *Block) Key() BlockKey {
	return BlockKey{Table: b.Table.Name, Rel: b.Rel, Orientation: b.Orientation}
}

// BlockKey is Block's structural identity: comparable and suitable as a map key.
type BlockKey struct {
	Table       string
	Rel         Range
	Orientation Orientation
}

// IsVector reports whether the block is a single vector (count 1).
func (b *Block) IsVector() bool { return b.Length() == 1 }

// IsPartial reports whether the block contains any blanks (spec.md's
// "Partial block").
func (b *Block) IsPartial() bool { return b.HasBlanks }
