// Package runtime mirrors the teacher's runtime.Limits/runtime.Controller
// shape, generalized from "tool call" to "learning run": a struct of
// tunables plus a controller backed by golang.org/x/sync/semaphore.Weighted
// bounding concurrent Learn invocations and concurrently-open datasets, with
// a request-acquire timeout and a per-run operation timeout.
package runtime

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tacle-dev/tacle/config"
)

// Limits captures the concurrency and dataset guardrails configured for the
// façade and MCP server.
type Limits struct {
	// Concurrency caps
	MaxConcurrentLearns int
	MaxOpenDatasets     int

	// Payload and cell bounds
	MaxPayloadBytes int
	MaxCellsPerOp   int

	// Timeouts
	OperationTimeout    time.Duration
	AcquireLearnTimeout time.Duration
}

// NewLimits initializes Limits with sensible fallbacks when values are unset.
func NewLimits(maxConcurrentLearns, maxOpenDatasets int) Limits {
	if maxConcurrentLearns <= 0 {
		maxConcurrentLearns = config.DefaultMaxConcurrentLearns
	}
	if maxOpenDatasets <= 0 {
		maxOpenDatasets = config.DefaultMaxOpenDatasets
	}

	return Limits{
		MaxConcurrentLearns: maxConcurrentLearns,
		MaxOpenDatasets:     maxOpenDatasets,
		MaxPayloadBytes:     config.DefaultMaxPayloadBytes,
		MaxCellsPerOp:       config.DefaultMaxCellsPerOp,
		OperationTimeout:    config.DefaultOperationTimeout,
		AcquireLearnTimeout: config.DefaultAcquireLearnTimeout,
	}
}

// Controller coordinates runtime semaphores for learning-run and dataset
// guardrails.
type Controller struct {
	limits           Limits
	learnSemaphore   *semaphore.Weighted
	datasetSemaphore *semaphore.Weighted
}

// NewController constructs a Controller backed by weighted semaphores.
func NewController(limits Limits) *Controller {
	return &Controller{
		limits:           limits,
		learnSemaphore:   semaphore.NewWeighted(int64(limits.MaxConcurrentLearns)),
		datasetSemaphore: semaphore.NewWeighted(int64(limits.MaxOpenDatasets)),
	}
}

// AcquireLearn reserves capacity for an incoming learning run.
func (c *Controller) AcquireLearn(ctx context.Context) error {
	return c.learnSemaphore.Acquire(ctx, 1)
}

// ReleaseLearn frees previously-acquired learning-run capacity.
func (c *Controller) ReleaseLearn() {
	c.learnSemaphore.Release(1)
}

// AcquireDataset reserves an open dataset slot.
func (c *Controller) AcquireDataset(ctx context.Context) error {
	return c.datasetSemaphore.Acquire(ctx, 1)
}

// ReleaseDataset frees an open dataset slot.
func (c *Controller) ReleaseDataset() {
	c.datasetSemaphore.Release(1)
}

// LimitsSnapshot exposes the configured guardrails for telemetry and discovery.
func (c *Controller) LimitsSnapshot() Limits {
	return c.limits
}
