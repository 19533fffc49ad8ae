package ingest

// rect is a 0-based, inclusive bounding box over a cell grid.
type rect struct{ r1, c1, r2, c2 int }

func (b rect) height() int { return b.r2 - b.r1 + 1 }
func (b rect) width() int  { return b.c2 - b.c1 + 1 }

// detectTableRects scans a cell grid for maximal 4-connected regions of
// non-blank cells, the same connected-components approach the teacher's
// sheet scanner uses for multi-table detection, generalized here to work
// over an in-memory grid rather than a streamed worksheet (grounded on the
// original Python parser's BFS over a presence matrix).
func detectTableRects(cells [][]string) []rect {
	rows := len(cells)
	if rows == 0 {
		return nil
	}
	cols := 0
	for _, row := range cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	present := make([][]bool, rows)
	for r, row := range cells {
		present[r] = make([]bool, cols)
		for c := 0; c < cols && c < len(row); c++ {
			present[r][c] = row[c] != ""
		}
	}

	visited := make([][]bool, rows)
	for r := range visited {
		visited[r] = make([]bool, cols)
	}

	var comps []rect
	var queue [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !present[r][c] || visited[r][c] {
				continue
			}
			visited[r][c] = true
			queue = queue[:0]
			queue = append(queue, [2]int{r, c})
			rr1, cc1, rr2, cc2 := r, c, r, c
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				cr, cc := p[0], p[1]
				if cr < rr1 {
					rr1 = cr
				}
				if cr > rr2 {
					rr2 = cr
				}
				if cc < cc1 {
					cc1 = cc
				}
				if cc > cc2 {
					cc2 = cc
				}
				neighbors := [4][2]int{{cr - 1, cc}, {cr + 1, cc}, {cr, cc - 1}, {cr, cc + 1}}
				for _, n := range neighbors {
					nr, nc := n[0], n[1]
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					if !present[nr][nc] || visited[nr][nc] {
						continue
					}
					visited[nr][nc] = true
					queue = append(queue, [2]int{nr, nc})
				}
			}
			comps = append(comps, rect{r1: rr1, c1: cc1, r2: rr2, c2: cc2})
		}
	}
	return comps
}
