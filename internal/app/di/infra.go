// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	statusadapters "advisor_backend/internal/feature/status/adapters"
	transformadapters "advisor_backend/internal/feature/transform/adapters"
	"advisor_backend/internal/platform/blob"
	"advisor_backend/internal/platform/db"
	"advisor_backend/internal/platform/llm/gemini"
	platformredis "advisor_backend/internal/platform/redis"
)

// Models lists the GORM models migrated at startup.
func Models() []any {
	return []any{&statusadapters.StatusModel{}, &transformadapters.SessionModel{}}
}

// Infra holds the external connections shared by every component.
// Redis is nil when REDIS_HOST is not set.
type Infra struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Store   *blob.Store
	Objects *blob.Opener
	LLM     *gemini.Client
}

// OpenStorage connects the database and Redis. Redis is optional.
func OpenStorage(ctx context.Context) (*Infra, error) {
	gdb, err := db.OpenDB(ctx, db.LoadConfig(), Models()...)
	if err != nil {
		return nil, err
	}

	infra := &Infra{DB: gdb}
	rdb, err := platformredis.NewRedisClient(ctx, platformredis.LoadConfig())
	switch {
	case errors.Is(err, platformredis.ErrNotConfigured):
		slog.Warn("Redis is not configured, using in-process fallbacks")
	case err != nil:
		slog.Warn("Redis unavailable, using in-process fallbacks", "error", err)
	default:
		infra.Redis = rdb
	}
	return infra, nil
}

// InfraOption adjusts how OpenInfra builds its components.
type InfraOption func(*blob.Policy)

// WithLocalFiles lets document URLs point at local files. Only the CLI uses it.
func WithLocalFiles() InfraOption {
	return func(p *blob.Policy) { p.LocalFiles = true }
}

// OpenInfra opens storage, the report bucket and the LLM client.
func OpenInfra(ctx context.Context, opts ...InfraOption) (*Infra, error) {
	infra, err := OpenStorage(ctx)
	if err != nil {
		return nil, err
	}

	cfg := blob.LoadConfig()
	store, err := blob.OpenStore(ctx, cfg)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Store = store

	policy := blob.LoadPolicy(cfg)
	for _, opt := range opts {
		opt(&policy)
	}
	if len(policy.Buckets) == 0 && !policy.LocalFiles {
		slog.Warn("DOCUMENT_BUCKETS is not set, uploaded document urls will be rejected")
	}
	infra.Objects = blob.NewOpener(policy)

	llm, err := gemini.NewClient(ctx, gemini.LoadConfig())
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("failed to initialize llm: %w", err)
	}
	infra.LLM = llm
	return infra, nil
}

// Close releases every opened connection.
func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	if i.Store != nil {
		if err := i.Store.Close(); err != nil {
			slog.Error("failed to close report bucket", "error", err)
		}
	}
	if i.Objects != nil {
		if err := i.Objects.Close(); err != nil {
			slog.Error("failed to close document buckets", "error", err)
		}
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
