package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one sheet of an Excel workbook into a rectangular
// [][]string grid, the same shape ReadCSV produces, so both ingestion
// routes feed the same downstream pipeline (SPEC_FULL.md §2). When sheet is
// empty, the workbook's first sheet is used.
func ReadXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()
	return readXLSXSheet(f, sheet)
}

func readXLSXSheet(f *excelize.File, sheet string) ([][]string, error) {
	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("ingest: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheet, err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out, nil
}

// SheetNames lists the sheet names of an Excel workbook.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
