package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultInflightTTL releases a stuck guard if a worker dies mid-pipeline.
const DefaultInflightTTL = 30 * time.Minute

// InflightRedis suppresses duplicate processing of the same session key across instances.
type InflightRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewInflightRedis creates a new InflightRedis instance.
func NewInflightRedis(client *redis.Client, prefix string, ttl time.Duration) *InflightRedis {
	if prefix == "" {
		prefix = "inflight"
	}
	if ttl <= 0 {
		ttl = DefaultInflightTTL
	}
	return &InflightRedis{client: client, prefix: prefix, ttl: ttl}
}

func (g *InflightRedis) key(sessionKey string) string {
	return fmt.Sprintf("%s:%s", g.prefix, sessionKey)
}

// Acquire marks sessionKey as in progress. It returns false when another request holds it.
func (g *InflightRedis) Acquire(ctx context.Context, sessionKey, sessionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(sessionKey), sessionID, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire inflight guard: %w", err)
	}
	return ok, nil
}

// releaseScript deletes the key only while it still holds the caller's session id.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release clears the guard for sessionKey if sessionID still holds it.
// A guard that expired and was taken by another request is left alone.
func (g *InflightRedis) Release(ctx context.Context, sessionKey, sessionID string) error {
	if err := releaseScript.Run(ctx, g.client, []string{g.key(sessionKey)}, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to release inflight guard: %w", err)
	}
	return nil
}

// Holder returns the session id holding sessionKey, or "" when it is free.
func (g *InflightRedis) Holder(ctx context.Context, sessionKey string) (string, error) {
	id, err := g.client.Get(ctx, g.key(sessionKey)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return id, err
}

// InflightMemory is the single-instance guard used when Redis is unavailable.
type InflightMemory struct {
	mu     sync.Mutex
	active map[string]inflightEntry
	ttl    time.Duration
	now    func() time.Time
}

type inflightEntry struct {
	sessionID string
	startedAt time.Time
}

// NewInflightMemory creates an empty in-process guard.
func NewInflightMemory(ttl time.Duration) *InflightMemory {
	if ttl <= 0 {
		ttl = DefaultInflightTTL
	}
	return &InflightMemory{active: make(map[string]inflightEntry), ttl: ttl, now: time.Now}
}

// Acquire marks sessionKey as in progress. Entries older than the TTL are treated as free.
func (g *InflightMemory) Acquire(ctx context.Context, sessionKey, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if e, ok := g.active[sessionKey]; ok && now.Sub(e.startedAt) < g.ttl {
		return false, nil
	}
	g.active[sessionKey] = inflightEntry{sessionID: sessionID, startedAt: now}
	return true, nil
}

// Release clears the guard for sessionKey if sessionID still holds it.
func (g *InflightMemory) Release(ctx context.Context, sessionKey, sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.active[sessionKey]; ok && e.sessionID == sessionID {
		delete(g.active, sessionKey)
	}
	return nil
}

// Holder returns the session id holding sessionKey, or "" when it is free.
func (g *InflightMemory) Holder(ctx context.Context, sessionKey string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.active[sessionKey]; ok && g.now().Sub(e.startedAt) < g.ttl {
		return e.sessionID, nil
	}
	return "", nil
}
