package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"advisor_backend/internal/platform/metrics"
)

// DefaultMemoryEntries bounds the in-process cache.
const DefaultMemoryEntries = 512

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// ResultMemory is the single-instance result cache used when Redis is not configured.
// Entries expire at the end of the UTC day they were written.
type ResultMemory struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewResultMemory creates an in-process cache holding at most size entries.
func NewResultMemory(size int) *ResultMemory {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	return &ResultMemory{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, 24*time.Hour),
		now: time.Now,
	}
}

// Get returns the value stored under key if it has not expired.
func (c *ResultMemory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.lru.Get(key)
	if ok && !c.now().Before(e.expiresAt) {
		c.lru.Remove(key)
		ok = false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return e.value, true, nil
}

// Set stores a copy of value under key.
func (c *ResultMemory) Set(ctx context.Context, key string, value []byte) error {
	now := c.now()
	c.lru.Add(key, memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(TimeUntilEndOfDay(now)),
	})
	return nil
}
