// Package cache provides the result cache used by the transform orchestrator.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"advisor_backend/internal/platform/metrics"
)

// ResultRedis stores serialized results in Redis until the end of the UTC day.
type ResultRedis struct {
	rdb       *redis.Client
	namespace string
	now       func() time.Time
}

// NewResultRedis creates a Redis backed result cache.
// If namespace is empty, it uses "results".
func NewResultRedis(rdb *redis.Client, namespace string) *ResultRedis {
	if namespace == "" {
		namespace = "results"
	}
	return &ResultRedis{rdb: rdb, namespace: namespace, now: time.Now}
}

// Get returns the value stored under key. A missing key is not an error.
func (c *ResultRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.cacheKey(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return b, true, nil
}

// Set stores value under key until the end of the current UTC day.
func (c *ResultRedis) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, c.cacheKey(key), value, TimeUntilEndOfDay(c.now())).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// cacheKey generates the Redis key for a cache key.
func (c *ResultRedis) cacheKey(key string) string {
	return fmt.Sprintf("%s:%s", c.namespace, key)
}
