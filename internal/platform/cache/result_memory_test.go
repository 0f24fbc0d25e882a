package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultMemory_SetAndGet(t *testing.T) {
	t.Parallel()

	c := NewResultMemory(0)
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	value := []byte("payload")
	require.NoError(t, c.Set(ctx, "k1", value))
	value[0] = 'X'

	got, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), got, "stored value is a copy")

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResultMemory_ExpiresAtEndOfDay(t *testing.T) {
	t.Parallel()

	c := NewResultMemory(8)
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("v")))

	now = now.Add(time.Hour + 59*time.Minute)
	_, ok, _ := c.Get(ctx, "k1")
	assert.True(t, ok, "still valid before midnight")

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "k1")
	assert.False(t, ok, "expired at midnight")
}

func TestResultMemory_EvictsOldest(t *testing.T) {
	t.Parallel()

	c := NewResultMemory(2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	require.NoError(t, c.Set(ctx, "c", []byte("3")))

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}
