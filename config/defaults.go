// Package config carries named default constants for TaCLe's guardrails and
// numeric tolerances, in the same flat-const style the teacher's config
// package uses. Values are conservative and can be overridden by future
// configuration mechanisms (env, CLI, or files); they are referenced by
// internal/runtime, internal/datasets, internal/template, and internal/validate.
package config

import "time"

const (
	// Concurrency
	DefaultMaxConcurrentLearns = 10
	DefaultMaxOpenDatasets     = 4

	// Payload and row limits
	DefaultMaxPayloadBytes = 128 * 1024 // 128KB
	DefaultMaxCellsPerOp   = 10_000

	// Constraint-instance page size for MCP tool responses.
	DefaultConstraintPageSize = 100
)

const (
	// Timeouts
	DefaultOperationTimeout     = 30 * time.Second
	DefaultAcquireLearnTimeout  = 2 * time.Second
	DefaultDatasetIdleTTL       = 10 * time.Minute
	DefaultDatasetCleanupPeriod = time.Minute
)

const (
	// Template algebra constants (spec.md §9's asymmetric min_vectors rule).
	DefaultMinVectorsSumProduct = 3
	DefaultMinVectorsOther      = 2

	// Validator numeric tolerance (spec.md §9's template-agnostic equal(x,y)).
	DefaultFloatTolerance = 1e-10
)
