// Package datasets is the TaCLe counterpart of the teacher's workbooks
// package: a TTL-bearing handle cache, except the resource under management
// is an ingested cell grid (CSV or XLSX) rather than a live *excelize.File.
// Callers open a dataset once, get back a handle ID, and reuse it across
// several learning runs without re-reading the file from disk.
package datasets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tacle-dev/tacle/config"
	"github.com/tacle-dev/tacle/internal/geom"
	"github.com/tacle-dev/tacle/internal/ingest"
	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/internal/telemetry"
)

// Handle is an in-memory reference to an ingested cell grid plus its
// lazily-computed blocks, paired with TTL eviction metadata.
type Handle struct {
	ID        string
	Path      string
	Sheet     string
	Cells     [][]string
	LoadedAt  time.Time
	ExpiresAt time.Time

	mu        sync.Mutex
	blocks    []*geom.Block
	built     bool
	instances []solutions.ConstraintInstance
}

// SetInstances caches the most recent learning-run result for the handle,
// so a later filter_constraints-style call can narrow it without re-running
// the learning loop.
func (h *Handle) SetInstances(instances []solutions.ConstraintInstance) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances = instances
}

// Instances returns the most recently cached learning-run result, if any.
func (h *Handle) Instances() []solutions.ConstraintInstance {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.instances
}

// Blocks lazily computes and memoises the handle's blocks (internal/ingest's
// table-rectangle detection plus per-table block extraction).
func (h *Handle) Blocks() ([]*geom.Block, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.built {
		return h.blocks, nil
	}
	blocks, err := ingest.AllBlocks(h.Cells)
	if err != nil {
		return nil, err
	}
	h.blocks = blocks
	h.built = true
	return blocks, nil
}

// Expired reports whether the handle has reached its TTL.
func (h *Handle) Expired(now time.Time) bool { return now.After(h.ExpiresAt) }

// Gate coordinates capacity for open dataset handles (backed by
// runtime.Controller.AcquireDataset/ReleaseDataset).
type Gate interface {
	AcquireDataset(ctx context.Context) error
	ReleaseDataset()
}

// PathValidator abstracts filesystem path validation (internal/security's
// Manager implements it). Returns a canonical absolute path if allowed.
type PathValidator interface {
	ValidateOpenPath(path string) (string, error)
}

// ErrHandleNotFound indicates an unknown or expired handle ID.
var ErrHandleNotFound = errors.New("datasets: handle not found")

// Manager provides lifecycle hooks for opening, reusing, and evicting
// ingested datasets.
type Manager struct {
	mu           sync.RWMutex
	handles      map[string]*Handle
	ttl          time.Duration
	cleanupEvery time.Duration
	clock        func() time.Time
	gate         Gate
	validator    PathValidator
	stopCh       chan struct{}
	cleanupWG    sync.WaitGroup
	hooks        *telemetry.Hooks
}

// WithHooks attaches lifecycle logging to dataset open/close events. Passing
// nil disables logging (the default).
func (m *Manager) WithHooks(hooks *telemetry.Hooks) *Manager {
	m.hooks = hooks
	return m
}

// NewManager constructs a manager with TTL-bearing handle cache. Pass ttl or
// cleanupEvery <= 0 to use config defaults; gate may be nil for tests.
func NewManager(ttl, cleanupEvery time.Duration, gate Gate, validator PathValidator, clock func() time.Time) *Manager {
	if ttl <= 0 {
		ttl = config.DefaultDatasetIdleTTL
	}
	if cleanupEvery <= 0 {
		cleanupEvery = config.DefaultDatasetCleanupPeriod
	}
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		handles:      make(map[string]*Handle),
		ttl:          ttl,
		cleanupEvery: cleanupEvery,
		clock:        clock,
		gate:         gate,
		validator:    validator,
		stopCh:       make(chan struct{}),
	}
}

// Start launches periodic eviction of expired handles.
func (m *Manager) Start() {
	m.cleanupWG.Add(1)
	ticker := time.NewTicker(m.cleanupEvery)
	go func() {
		defer m.cleanupWG.Done()
		defer ticker.Stop()
		for {
			select {
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.EvictExpired()
			}
		}
	}()
}

// Close stops the background cleanup loop, then drops every open handle and
// returns each handle's slot to the gate.
func (m *Manager) Close(ctx context.Context) error {
	close(m.stopCh)
	done := make(chan struct{})
	go func() { m.cleanupWG.Wait(); close(done) }()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.handles {
		delete(m.handles, id)
		m.release()
	}
	return nil
}

// Open ingests path (CSV/TSV or XLSX/XLSM by extension) and registers a
// TTL-bearing handle, returning its ID. sheet selects a worksheet for
// XLSX/XLSM inputs and is ignored for CSV/TSV.
func (m *Manager) Open(ctx context.Context, path, sheet string) (string, error) {
	if err := m.acquire(ctx); err != nil {
		return "", err
	}

	canonical := path
	if m.validator != nil {
		var err error
		canonical, err = m.validator.ValidateOpenPath(path)
		if err != nil {
			m.release()
			return "", err
		}
	}

	cells, err := m.ingest(canonical, sheet)
	if err != nil {
		m.release()
		return "", err
	}

	id := uuid.NewString()
	now := m.clock()
	h := &Handle{
		ID:        id,
		Path:      canonical,
		Sheet:     sheet,
		Cells:     cells,
		LoadedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.handles[id] = h
	m.mu.Unlock()
	if m.hooks != nil {
		m.hooks.OnDatasetOpen(id, canonical)
	}
	return id, nil
}

func (m *Manager) ingest(path, sheet string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv":
		return ingest.ReadCSV(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ingest.ReadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("datasets: unsupported format: %s", ext)
	}
}

// Adopt registers an already-ingested cell grid as a managed handle,
// bypassing disk I/O. Intended for tests and for learn_from_cells-style
// callers that already have cells in memory.
func (m *Manager) Adopt(ctx context.Context, name string, cells [][]string) (string, error) {
	if err := m.acquire(ctx); err != nil {
		return "", err
	}
	id := uuid.NewString()
	now := m.clock()
	h := &Handle{ID: id, Path: name, Cells: cells, LoadedAt: now, ExpiresAt: now.Add(m.ttl)}
	m.mu.Lock()
	m.handles[id] = h
	m.mu.Unlock()
	if m.hooks != nil {
		m.hooks.OnDatasetOpen(id, name)
	}
	return id, nil
}

// Get returns the handle when present and refreshes its TTL.
func (m *Manager) Get(id string) (*Handle, bool) {
	m.mu.RLock()
	h, ok := m.handles[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := m.clock()
	m.mu.Lock()
	h.ExpiresAt = now.Add(m.ttl)
	m.mu.Unlock()
	return h, true
}

// CloseHandle evicts a handle by ID, releasing capacity via the gate.
func (m *Manager) CloseHandle(id string) error {
	m.mu.Lock()
	_, ok := m.handles[id]
	if ok {
		delete(m.handles, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrHandleNotFound
	}
	m.release()
	if m.hooks != nil {
		m.hooks.OnDatasetClose(id, "closed")
	}
	return nil
}

// EvictExpired closes every handle past its TTL.
func (m *Manager) EvictExpired() {
	now := m.clock()
	var expired []string

	m.mu.RLock()
	for id, h := range m.handles {
		if h.Expired(now) {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range expired {
		m.mu.Lock()
		delete(m.handles, id)
		m.mu.Unlock()
		m.release()
		if m.hooks != nil {
			m.hooks.OnDatasetClose(id, "expired")
		}
	}
}

// Count returns the current number of cached handles.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handles)
}

func (m *Manager) acquire(ctx context.Context) error {
	if m.gate == nil {
		return nil
	}
	return m.gate.AcquireDataset(ctx)
}

func (m *Manager) release() {
	if m.gate == nil {
		return
	}
	m.gate.ReleaseDataset()
}
