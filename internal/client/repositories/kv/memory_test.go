package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Contract(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)

	assert.Equal(t, 1, m.Sets())
	assert.Equal(t, 3, m.Gets())
}

func TestMemory_FailureInjection(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	boom := errors.New("disk full")

	m.SetFailures(nil, boom)
	require.ErrorIs(t, m.Set(ctx, "k", "v"), boom)
	_, ok := m.Raw("k")
	assert.False(t, ok, "failed set must not store")

	m.SetFailures(boom, nil)
	_, _, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, boom)

	m.FailDelete = boom
	require.ErrorIs(t, m.Delete(ctx, "k"), boom)
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemoryRepository()
	require.NoError(t, m.Close())

	_, _, err := m.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, m.Set(context.Background(), "k", "v"), ErrClosed)
}
