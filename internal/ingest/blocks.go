package ingest

import (
	"fmt"

	"github.com/tacle-dev/tacle/internal/celltype"
	"github.com/tacle-dev/tacle/internal/geom"
)

// Tables builds one geom.Table per detected rectangular region of a raw cell
// grid (spec.md §1's "table-rectangle detection"), type-tagging every cell
// with celltype.Detect along the way. Tables are named T1, T2, … in
// reading order (top-to-bottom, left-to-right of their top-left corner) so
// naming is deterministic across runs of the same input.
func Tables(cells [][]string) ([]*geom.Table, error) {
	rects := detectTableRects(cells)
	sortRectsReadingOrder(rects)

	tables := make([]*geom.Table, 0, len(rects))
	for i, rc := range rects {
		height, width := rc.height(), rc.width()
		values := make([][]string, height)
		types := make([][]celltype.Type, height)
		for r := 0; r < height; r++ {
			values[r] = make([]string, width)
			types[r] = make([]celltype.Type, width)
			for c := 0; c < width; c++ {
				src := rc.r1 + r
				v := ""
				if col := rc.c1 + c; col < len(cells[src]) {
					v = cells[src][col]
				}
				values[r][c] = v
				types[r][c] = celltype.Detect(v)
			}
		}
		bounds, err := geom.NewRange(rc.c1, rc.r1, width, height)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("T%d", i+1)
		tbl, err := geom.NewTable(name, bounds, values, types)
		if err != nil {
			return nil, fmt.Errorf("ingest: build table %s: %w", name, err)
		}
		tables = append(tables, tbl)
	}
	return tables, nil
}

func sortRectsReadingOrder(rects []rect) {
	for i := 1; i < len(rects); i++ {
		for j := i; j > 0; j-- {
			a, b := rects[j-1], rects[j]
			if a.r1 < b.r1 || (a.r1 == b.r1 && a.c1 <= b.c1) {
				break
			}
			rects[j-1], rects[j] = rects[j], rects[j-1]
		}
	}
}

// Blocks extracts every maximal, same-dominant-type, contiguous vector
// strip from a table in both orientations (spec.md's Block: "a same-typed,
// same-orientation, contiguous strip of vectors within a table"). A table
// with W columns and H rows yields some number of vertical blocks (column
// runs) and some number of horizontal blocks (row runs); downstream
// candidate generation (internal/assign) further decomposes a block into
// single vectors where a template variable demands it.
func Blocks(tbl *geom.Table) ([]*geom.Block, error) {
	vertical, err := orientedBlocks(tbl, geom.Vertical)
	if err != nil {
		return nil, err
	}
	horizontal, err := orientedBlocks(tbl, geom.Horizontal)
	if err != nil {
		return nil, err
	}
	return append(vertical, horizontal...), nil
}

// AllBlocks runs Tables then Blocks over every detected table, the
// convenience entry point the façade and CLI use.
func AllBlocks(cells [][]string) ([]*geom.Block, error) {
	tables, err := Tables(cells)
	if err != nil {
		return nil, err
	}
	var out []*geom.Block
	for _, tbl := range tables {
		blks, err := Blocks(tbl)
		if err != nil {
			return nil, err
		}
		out = append(out, blks...)
	}
	return out, nil
}

func orientedBlocks(tbl *geom.Table, o geom.Orientation) ([]*geom.Block, error) {
	n := tbl.Bounds.Vectors(o)
	length := tbl.Bounds.VectorLength(o)
	if n == 0 || length == 0 {
		return nil, nil
	}

	vecType := make([]celltype.Type, n)
	for i := 0; i < n; i++ {
		var types []celltype.Type
		for j := 0; j < length; j++ {
			col, row := vectorCell(o, i, j)
			t := tbl.Types[row][col]
			if t != celltype.Unknown {
				types = append(types, t)
			}
		}
		vecType[i] = celltype.Max(types)
	}

	full, err := geom.NewRange(0, 0, tbl.Bounds.Width, tbl.Bounds.Height)
	if err != nil {
		return nil, err
	}

	var out []*geom.Block
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && vecType[i] == vecType[start] {
			continue
		}
		rel, err := full.SubRange(o, start, i-start)
		if err != nil {
			return nil, err
		}
		blk, err := geom.NewBlock(tbl, rel, o)
		if err != nil {
			return nil, err
		}
		out = append(out, blk)
		start = i
	}
	return out, nil
}

// vectorCell maps a (vector index, position-within-vector) pair to
// table-relative (col, row), mirroring geom.Block.cellCoord but over the
// whole table rather than a block's sub-range.
func vectorCell(o geom.Orientation, vec, pos int) (col, row int) {
	if o == geom.Vertical {
		return vec, pos
	}
	return pos, vec
}
