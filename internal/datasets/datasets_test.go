package datasets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdoptAndGetRefreshesTTL(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	m := NewManager(time.Minute, time.Hour, nil, nil, clock)

	id, err := m.Adopt(context.Background(), "mem", [][]string{{"1", "2"}})
	require.NoError(t, err)
	require.Equal(t, 1, m.Count())

	now = now.Add(30 * time.Second)
	h, ok := m.Get(id)
	require.True(t, ok)
	require.Equal(t, "mem", h.Path)
	require.Equal(t, now.Add(time.Minute), h.ExpiresAt)

	blocks, err := h.Blocks()
	require.NoError(t, err)
	require.NotEmpty(t, blocks)
}

func TestGetUnknownHandleNotFound(t *testing.T) {
	m := NewManager(time.Minute, time.Hour, nil, nil, nil)
	_, ok := m.Get("missing")
	require.False(t, ok)
}

func TestCloseHandleReleasesAndErrorsOnUnknown(t *testing.T) {
	m := NewManager(time.Minute, time.Hour, nil, nil, nil)
	id, err := m.Adopt(context.Background(), "mem", [][]string{{"1"}})
	require.NoError(t, err)

	require.NoError(t, m.CloseHandle(id))
	require.Equal(t, 0, m.Count())
	require.ErrorIs(t, m.CloseHandle(id), ErrHandleNotFound)
}

func TestEvictExpiredRemovesStaleHandles(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	m := NewManager(time.Minute, time.Hour, nil, nil, clock)

	_, err := m.Adopt(context.Background(), "mem", [][]string{{"1"}})
	require.NoError(t, err)
	require.Equal(t, 1, m.Count())

	now = now.Add(2 * time.Minute)
	m.EvictExpired()
	require.Equal(t, 0, m.Count())
}

type fakeGate struct {
	acquired, released int
}

func (g *fakeGate) AcquireDataset(ctx context.Context) error {
	g.acquired++
	return nil
}

func (g *fakeGate) ReleaseDataset() { g.released++ }

func TestAdoptAcquiresAndCloseReleasesGate(t *testing.T) {
	gate := &fakeGate{}
	m := NewManager(time.Minute, time.Hour, gate, nil, nil)

	id, err := m.Adopt(context.Background(), "mem", [][]string{{"1"}})
	require.NoError(t, err)
	require.Equal(t, 1, gate.acquired)

	require.NoError(t, m.CloseHandle(id))
	require.Equal(t, 1, gate.released)
}
