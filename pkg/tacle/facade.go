// Package tacle is the public façade spec.md §4.8 names: whole-pipeline and
// step-by-step entry points chaining ingestion (internal/ingest) into the
// learning loop (internal/learn), matching the original workflow.py's role
// of a single convenience wrapper sitting above the lower-level stages.
package tacle

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/ingest"
	"github.com/tacle-dev/tacle/internal/learn"
	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/template"
)

// defaultLogger discards everything; callers that want learning-loop
// tracing pass their own logger via WithLogger.
var defaultLogger = zerolog.New(os.Stderr).Level(zerolog.Disabled)

// Option configures a façade call.
type Option func(*options)

type options struct {
	logger    zerolog.Logger
	templates []*template.Template
	sheet     string
}

// WithLogger routes the learning loop's per-template debug trace to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTemplates restricts the learning loop to a subset of the catalogue
// (spec.md §6's templates_enabled); the default is the full catalogue.
func WithTemplates(templates []*template.Template) Option {
	return func(o *options) { o.templates = templates }
}

// WithSheet selects a worksheet for XLSX/XLSM inputs; ignored for CSV/TSV
// and in-memory cell grids.
func WithSheet(sheet string) Option {
	return func(o *options) { o.sheet = sheet }
}

func resolveOptions(opts []Option) options {
	o := options{logger: defaultLogger, templates: template.Catalogue()}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// Learn runs the whole pipeline over an in-memory cell grid: table
// detection, block extraction, and the learning loop, returning every
// validated constraint instance (spec.md's `learn(cells) -> List<ConstraintInstance>`).
// It is the workflow.py-style convenience wrapper; LearnFromCells is
// identical but accepts filter patterns as a final convenience.
func Learn(cells [][]string, opts ...Option) ([]solutions.ConstraintInstance, error) {
	o := resolveOptions(opts)
	blocks, err := ingest.AllBlocks(cells)
	if err != nil {
		return nil, err
	}
	return learn.Run(blocks, o.templates, o.logger)
}

// LearnFromCells runs Learn and, when patterns are given, narrows the
// result via FilterConstraints.
func LearnFromCells(cells [][]string, patterns []string, opts ...Option) ([]solutions.ConstraintInstance, error) {
	instances, err := Learn(cells, opts...)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return instances, nil
	}
	return FilterConstraints(instances, patterns...), nil
}

// LearnFromCSV ingests a CSV/TSV file and runs the learning loop over it.
func LearnFromCSV(path string, patterns []string, opts ...Option) ([]solutions.ConstraintInstance, error) {
	cells, err := ingest.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return LearnFromCells(cells, patterns, opts...)
}

// LearnFromXLSX ingests one sheet of an Excel workbook (WithSheet selects
// it; the workbook's first sheet is used otherwise) and runs the learning
// loop over it.
func LearnFromXLSX(path string, patterns []string, opts ...Option) ([]solutions.ConstraintInstance, error) {
	o := resolveOptions(opts)
	cells, err := ingest.ReadXLSX(path, o.sheet)
	if err != nil {
		return nil, err
	}
	return LearnFromCells(cells, patterns, opts...)
}

// TablesFromCells detects table rectangles in cells and returns the typed
// Table for each, in reading order.
func TablesFromCells(cells [][]string) ([]*geom.Table, error) {
	return ingest.Tables(cells)
}

// RangesFromCells detects table rectangles in cells and returns their
// bounds, in reading order.
func RangesFromCells(cells [][]string) ([]geom.Range, error) {
	tables, err := ingest.Tables(cells)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Range, len(tables))
	for i, t := range tables {
		out[i] = t.Bounds
	}
	return out, nil
}
