package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultPort(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "")

	cfg := LoadConfig()
	assert.Equal(t, "cache.internal:6379", cfg.Addr())
}

func TestNewRedisClient_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := NewRedisClient(context.Background(), Config{})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewRedisClient_Success(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := Config{Host: mr.Host(), Port: mr.Port()}
	rdb, err := NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	assert.NoError(t, rdb.Ping(context.Background()).Err())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg := Config{Host: mr.Host(), Port: mr.Port()}
	mr.Close()

	_, err = NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
}
