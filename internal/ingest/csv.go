// Package ingest is the external collaborator spec.md §1 carves out of the
// core: "CSV ingestion and numeric/textual parsing" and "table-rectangle
// detection and per-table vector grouping". It turns a raw file (CSV or
// XLSX) or an already-in-memory cell grid into the []*geom.Block slice the
// learning loop (internal/learn) consumes.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV reads path as a CSV file into a rectangular [][]string grid,
// padding short rows with empty strings so every row has the same width
// (spec.md §7's input-shape validation only rejects jaggedness it cannot
// repair itself; a ragged CSV tail is common enough to pad rather than
// reject).
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()
	return readCSV(f)
}

// ParseCSV parses raw CSV text (e.g. pasted inline by an MCP client that has
// no filesystem access) the same way ReadCSV parses a file.
func ParseCSV(data string) ([][]string, error) {
	return readCSV(strings.NewReader(data))
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; we pad below
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: parse csv: %w", err)
	}

	width := 0
	for _, row := range records {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range records {
		for len(row) < width {
			row = append(row, "")
		}
		records[i] = row
	}
	return records, nil
}
