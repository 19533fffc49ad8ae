package registry

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/tacle-dev/tacle/config"
	"github.com/tacle-dev/tacle/internal/datasets"
	"github.com/tacle-dev/tacle/internal/ingest"
	"github.com/tacle-dev/tacle/internal/learn"
	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/telemetry"
	"github.com/tacle-dev/tacle/internal/template"
	"github.com/tacle-dev/tacle/pkg/pagination"
	"github.com/tacle-dev/tacle/pkg/tacle"
	"github.com/tacle-dev/tacle/pkg/tcerr"
	"github.com/tacle-dev/tacle/pkg/validation"
)

// ConstraintView is the wire shape of a single discovered constraint
// instance: its rendered formula plus the template it came from.
type ConstraintView struct {
	Template string `json:"template" jsonschema_description:"Template name, e.g. \"sum (col)\""`
	Formula  string `json:"formula" jsonschema_description:"Rendered constraint, e.g. \"T1!3,0+1x4/vertical = sum(T1!0,0+3x4/vertical) (row)\""`
}

// LearnInput is shared by learn_from_csv and learn_from_xlsx. Path is
// required unless Cursor resumes a prior paginated call.
type LearnInput struct {
	Path   string `json:"path" validate:"required_without=Cursor,omitempty,filepath_ext" jsonschema_description:"Absolute or allowed path to a dataset file"`
	Sheet  string `json:"sheet,omitempty" jsonschema_description:"Worksheet name (XLSX/XLSM only); defaults to the first sheet"`
	Filter string `json:"filter,omitempty" jsonschema_description:"Comma-separated filter_constraints patterns (glob, class shorthand, or <formula>/<constraint>)"`
	Cursor string `json:"cursor,omitempty" validate:"omitempty,cursor" jsonschema_description:"Opaque pagination cursor from a prior call; takes precedence over path/sheet/filter"`
}

// LearnFromCellsInput accepts inline CSV text for clients with no
// filesystem access.
type LearnFromCellsInput struct {
	CellsCSV string `json:"cells_csv" validate:"required_without=Cursor" jsonschema_description:"Inline CSV text to learn constraints from"`
	Filter   string `json:"filter,omitempty" jsonschema_description:"Comma-separated filter_constraints patterns (glob, class shorthand, or <formula>/<constraint>)"`
	Cursor   string `json:"cursor,omitempty" validate:"omitempty,cursor" jsonschema_description:"Opaque pagination cursor from a prior call; takes precedence over cells_csv/filter"`
}

// FilterConstraintsInput narrows a previously-learned dataset's constraints.
type FilterConstraintsInput struct {
	HandleID string `json:"handle_id" validate:"required_without=Cursor" jsonschema_description:"Dataset handle ID returned by learn_from_csv/learn_from_xlsx/learn_from_cells"`
	Patterns string `json:"patterns" jsonschema_description:"Comma-separated filter_constraints patterns (glob, class shorthand, or <formula>/<constraint>)"`
	Cursor   string `json:"cursor,omitempty" validate:"omitempty,cursor" jsonschema_description:"Opaque pagination cursor from a prior call; takes precedence over handle_id/patterns"`
}

// PageMeta captures paging metadata for a constraint-instance page.
type PageMeta struct {
	Total      int    `json:"total"`
	Returned   int    `json:"returned"`
	Truncated  bool   `json:"truncated"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// LearnOutput reports a dataset handle and one page of the constraints
// discovered over it.
type LearnOutput struct {
	HandleID    string           `json:"handle_id"`
	Constraints []ConstraintView `json:"constraints"`
	Meta        PageMeta         `json:"meta"`
}

// RegisterTools wires learn_from_csv, learn_from_xlsx, learn_from_cells, and
// filter_constraints: the façade's four entry points (spec.md §4.8),
// exposed as MCP tools the way the teacher exposes its Excel tools.
func RegisterTools(s *server.MCPServer, reg *Registry, mgr *datasets.Manager, hooks *telemetry.Hooks, log zerolog.Logger) {
	learnFromCSV := mcp.NewTool(
		"learn_from_csv",
		mcp.WithDescription("Learn table constraints (formulas, keys, series, ...) from a CSV/TSV file"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute or allowed path to a CSV/TSV file")),
		mcp.WithString("filter", mcp.Description("Comma-separated filter_constraints patterns")),
		mcp.WithString("cursor", mcp.Description("Opaque pagination cursor; takes precedence over path/filter")),
		mcp.WithOutputSchema[LearnOutput](),
	)
	s.AddTool(learnFromCSV, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in LearnInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		if strings.TrimSpace(in.Cursor) != "" {
			return continuePage(mgr, in.Cursor), nil
		}
		id, err := mgr.Open(ctx, strings.TrimSpace(in.Path), "")
		if err != nil {
			return mcp.NewToolResultError(tcerr.Wrap(tcerr.IngestFailed, err).Error()), nil
		}
		return runLearn(mgr, id, in.Filter, hooks, log), nil
	}))

	learnFromXLSX := mcp.NewTool(
		"learn_from_xlsx",
		mcp.WithDescription("Learn table constraints (formulas, keys, series, ...) from an Excel workbook sheet"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute or allowed path to an Excel workbook")),
		mcp.WithString("sheet", mcp.Description("Worksheet name; defaults to the first sheet")),
		mcp.WithString("filter", mcp.Description("Comma-separated filter_constraints patterns")),
		mcp.WithString("cursor", mcp.Description("Opaque pagination cursor; takes precedence over path/sheet/filter")),
		mcp.WithOutputSchema[LearnOutput](),
	)
	s.AddTool(learnFromXLSX, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in LearnInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		if strings.TrimSpace(in.Cursor) != "" {
			return continuePage(mgr, in.Cursor), nil
		}
		id, err := mgr.Open(ctx, strings.TrimSpace(in.Path), in.Sheet)
		if err != nil {
			return mcp.NewToolResultError(tcerr.Wrap(tcerr.IngestFailed, err).Error()), nil
		}
		return runLearn(mgr, id, in.Filter, hooks, log), nil
	}))

	learnFromCells := mcp.NewTool(
		"learn_from_cells",
		mcp.WithDescription("Learn table constraints from inline CSV text (no filesystem access required)"),
		mcp.WithString("cells_csv", mcp.Required(), mcp.Description("Inline CSV text")),
		mcp.WithString("filter", mcp.Description("Comma-separated filter_constraints patterns")),
		mcp.WithString("cursor", mcp.Description("Opaque pagination cursor; takes precedence over cells_csv/filter")),
		mcp.WithOutputSchema[LearnOutput](),
	)
	s.AddTool(learnFromCells, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in LearnFromCellsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		if strings.TrimSpace(in.Cursor) != "" {
			return continuePage(mgr, in.Cursor), nil
		}
		cells, err := ingest.ParseCSV(in.CellsCSV)
		if err != nil {
			return mcp.NewToolResultError(tcerr.Wrap(tcerr.IngestFailed, err).Error()), nil
		}
		id, err := mgr.Adopt(ctx, "inline", cells)
		if err != nil {
			return mcp.NewToolResultError(tcerr.Wrap(tcerr.IngestFailed, err).Error()), nil
		}
		return runLearn(mgr, id, in.Filter, hooks, log), nil
	}))

	filterConstraints := mcp.NewTool(
		"filter_constraints",
		mcp.WithDescription("Narrow a dataset's previously-learned constraints by glob, class, or <formula>/<constraint> patterns"),
		mcp.WithString("handle_id", mcp.Description("Dataset handle ID returned by a learn_from_* call")),
		mcp.WithString("patterns", mcp.Description("Comma-separated filter_constraints patterns")),
		mcp.WithString("cursor", mcp.Description("Opaque pagination cursor; takes precedence over handle_id/patterns")),
		mcp.WithOutputSchema[LearnOutput](),
	)
	s.AddTool(filterConstraints, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in FilterConstraintsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		if strings.TrimSpace(in.Cursor) != "" {
			return continuePage(mgr, in.Cursor), nil
		}
		handle, ok := mgr.Get(strings.TrimSpace(in.HandleID))
		if !ok {
			return mcp.NewToolResultError(tcerr.New(tcerr.InvalidHandle, "").Error()), nil
		}
		patterns := splitPatterns(in.Patterns)
		filtered := tacle.FilterConstraints(handle.Instances(), patterns...)
		return firstPage(handle.ID, patterns, filtered), nil
	}))
}

// runLearn runs the learning loop over an already-open handle, caches the
// result on the handle for later filter_constraints/pagination calls, and
// applies an inline filter when one is given.
func runLearn(mgr *datasets.Manager, handleID, filter string, hooks *telemetry.Hooks, log zerolog.Logger) *mcp.CallToolResult {
	handle, ok := mgr.Get(handleID)
	if !ok {
		return mcp.NewToolResultError(tcerr.New(tcerr.InvalidHandle, "").Error())
	}
	blocks, err := handle.Blocks()
	if err != nil {
		return mcp.NewToolResultError(tcerr.Wrap(tcerr.IngestFailed, err).Error())
	}

	if hooks != nil {
		hooks.OnLearnStart(handleID)
	}
	start := time.Now()
	instances, err := learn.Run(blocks, template.Catalogue(), log)
	if hooks != nil {
		hooks.OnLearnComplete(handleID, time.Since(start), len(instances), err)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	handle.SetInstances(instances)

	patterns := splitPatterns(filter)
	result := instances
	if len(patterns) > 0 {
		result = tacle.FilterConstraints(instances, patterns...)
	}
	return firstPage(handle.ID, patterns, result)
}

// continuePage resumes a prior paginated call from an opaque cursor,
// re-deriving the same filtered view from the handle's cached instances and
// re-verifying the filter hash so a cursor cannot be replayed against a
// different filter.
func continuePage(mgr *datasets.Manager, token string) *mcp.CallToolResult {
	cur, err := pagination.DecodeCursor(token)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("CURSOR_INVALID: %v", err))
	}
	handle, ok := mgr.Get(cur.Did)
	if !ok {
		return mcp.NewToolResultError(tcerr.New(tcerr.InvalidHandle, "").Error())
	}
	// The cursor's filter hash was computed over the original, unfiltered
	// patterns; here we only have the instances already filtered and cached
	// on the handle, so we page directly over them.
	return buildPage(cur.Did, cur.Fh, handle.Instances(), cur.Off, cur.Ps)
}

func firstPage(handleID string, patterns []string, instances []solutions.ConstraintInstance) *mcp.CallToolResult {
	return buildPage(handleID, filterHash(patterns), instances, 0, config.DefaultConstraintPageSize)
}

func buildPage(handleID, filterHashValue string, instances []solutions.ConstraintInstance, offset, pageSize int) *mcp.CallToolResult {
	if offset < 0 {
		offset = 0
	}
	if pageSize <= 0 {
		pageSize = config.DefaultConstraintPageSize
	}
	total := len(instances)
	end := offset + pageSize
	if end > total {
		end = total
	}
	var page []solutions.ConstraintInstance
	if offset < total {
		page = instances[offset:end]
	}

	meta := PageMeta{Total: total, Returned: len(page)}
	if end < total {
		meta.Truncated = true
		tok, err := pagination.EncodeCursor(pagination.Cursor{
			Did: handleID,
			Fh:  filterHashValue,
			Off: end,
			Ps:  pageSize,
		})
		if err == nil {
			meta.NextCursor = tok
		}
	}

	return toolResult(handleID, page, meta)
}

func filterHash(patterns []string) string {
	if len(patterns) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(patterns, ",")))
	return fmt.Sprintf("%08x", h.Sum32())
}

func splitPatterns(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toolResult(handleID string, instances []solutions.ConstraintInstance, meta PageMeta) *mcp.CallToolResult {
	views := make([]ConstraintView, len(instances))
	for i, inst := range instances {
		views[i] = ConstraintView{Template: inst.Template.Name, Formula: inst.Formula()}
	}
	output := LearnOutput{HandleID: handleID, Constraints: views, Meta: meta}

	var b strings.Builder
	fmt.Fprintf(&b, "handle=%s total=%d returned=%d\n", handleID, meta.Total, meta.Returned)
	for _, v := range views {
		fmt.Fprintf(&b, "- %s\n", v.Formula)
	}
	if meta.Truncated {
		fmt.Fprintf(&b, "... %d more (use cursor=%s)\n", meta.Total-meta.Returned, meta.NextCursor)
	}
	summary := b.String()

	res := mcp.NewToolResultStructured(output, summary)
	res.Content = []mcp.Content{mcp.NewTextContent(summary)}
	return res
}
