package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	statusadapters "advisor_backend/internal/feature/status/adapters"
	statususecase "advisor_backend/internal/feature/status/usecase"
	transformusecase "advisor_backend/internal/feature/transform/usecase"
	"advisor_backend/internal/platform/cache"
	"advisor_backend/internal/platform/session"
)

// NewStatusStore creates a StatusStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewStatusStore(rdb *redis.Client, db *gorm.DB) statususecase.StatusStore {
	if rdb != nil {
		return session.NewStatusRedis(rdb, "status", session.DefaultStatusTTL)
	}
	return statusadapters.NewStatusGorm(db)
}

// NewResultCache returns the Redis result cache, or an in-process LRU without Redis.
func NewResultCache(rdb *redis.Client) transformusecase.ResultCache {
	if rdb != nil {
		return cache.NewResultRedis(rdb, "results")
	}
	return cache.NewResultMemory(cache.DefaultMemoryEntries)
}

// NewInflightGuard returns the Redis guard shared across instances, or a per-process guard.
func NewInflightGuard(rdb *redis.Client) transformusecase.InflightGuard {
	if rdb != nil {
		return session.NewInflightRedis(rdb, "inflight", session.DefaultInflightTTL)
	}
	return session.NewInflightMemory(session.DefaultInflightTTL)
}
