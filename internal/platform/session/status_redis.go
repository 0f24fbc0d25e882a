// Package session provides Redis-backed storage scoped to research sessions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/status/usecase"
)

// DefaultStatusTTL keeps status records for a week after their last update.
const DefaultStatusTTL = 7 * 24 * time.Hour

// StatusRedis implements usecase.StatusStore using Redis.
type StatusRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.StatusStore = (*StatusRedis)(nil)

// NewStatusRedis creates a new StatusRedis instance.
func NewStatusRedis(client *redis.Client, prefix string, ttl time.Duration) *StatusRedis {
	if prefix == "" {
		prefix = "status"
	}
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusRedis{client: client, prefix: prefix, ttl: ttl}
}

// statusKey returns the Redis key for a session's status record.
func (r *StatusRedis) statusKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

// Save overwrites the record and refreshes its TTL.
func (r *StatusRedis) Save(ctx context.Context, rec *entity.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal status record: %w", err)
	}
	return r.client.Set(ctx, r.statusKey(rec.SessionID), data, r.ttl).Err()
}

// Find retrieves the record for a session.
func (r *StatusRedis) Find(ctx context.Context, sessionID string) (*entity.Record, error) {
	data, err := r.client.Get(ctx, r.statusKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrStatusNotFound
		}
		return nil, err
	}

	var rec entity.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status record: %w", err)
	}
	return &rec, nil
}
