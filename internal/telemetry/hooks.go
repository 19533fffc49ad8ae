// Package telemetry provides lifecycle logging for dataset and learning-run
// events, in the teacher's Hooks-over-zerolog style, generalized from MCP
// session/tool-call events to dataset-open/close and learn-run start/stop.
package telemetry

import (
	"time"

	"github.com/rs/zerolog"
)

// Hooks logs dataset and learning-run lifecycle events. It is intentionally
// minimal; metrics backends can be added later under this package.
type Hooks struct {
	logger zerolog.Logger
}

// NewHooks constructs a Hooks instance with the provided logger.
func NewHooks(logger zerolog.Logger) *Hooks {
	return &Hooks{logger: logger}
}

// OnServerStart logs a server-start event.
func (h *Hooks) OnServerStart() {
	h.logger.Info().Msg("server starting")
}

// OnServerStop logs a server-stop event.
func (h *Hooks) OnServerStop() {
	h.logger.Info().Msg("server stopping")
}

// OnDatasetOpen records a dataset handle being opened from a path-backed or
// in-memory source.
func (h *Hooks) OnDatasetOpen(handleID, source string) {
	h.logger.Info().Str("handle_id", handleID).Str("source", source).Msg("dataset opened")
}

// OnDatasetClose records a dataset handle being closed or evicted.
func (h *Hooks) OnDatasetClose(handleID, reason string) {
	h.logger.Info().Str("handle_id", handleID).Str("reason", reason).Msg("dataset closed")
}

// OnLearnStart records the start of a learning run over a dataset handle.
func (h *Hooks) OnLearnStart(handleID string) {
	h.logger.Info().Str("handle_id", handleID).Msg("learn run started")
}

// OnLearnComplete records the end of a learning run, including the number of
// constraint instances produced.
func (h *Hooks) OnLearnComplete(handleID string, duration time.Duration, instanceCount int, err error) {
	evt := h.logger.Info().Str("handle_id", handleID).Dur("duration", duration).Int("instances", instanceCount)
	if err != nil {
		h.logger.Error().Str("handle_id", handleID).Dur("duration", duration).Err(err).Msg("learn run failed")
		return
	}
	evt.Msg("learn run completed")
}
