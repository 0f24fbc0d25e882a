// Package usecase implements checkpoint tracking for research sessions.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"advisor_backend/internal/feature/status/domain/entity"
)

// maxHistory bounds checkpoint_history so records stay small in the KV store.
const maxHistory = 50

// Tracker records checkpoint transitions. Store failures are logged and never
// returned, so status tracking cannot fail the pipeline.
type Tracker struct {
	store StatusStore
	now   func() time.Time
	mu    sync.Mutex
}

// NewTracker creates a Tracker backed by store.
func NewTracker(store StatusStore) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Update moves the session to checkpoint cp and returns the record written.
func (t *Tracker) Update(ctx context.Context, sessionID string, cp entity.Checkpoint, p entity.Progress) *entity.Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now().UTC()
	prev, err := t.store.Find(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrStatusNotFound) {
		slog.Warn("failed to load status record", "session_id", sessionID, "error", err)
	}

	// INITIATED は経過時間などリクエスト単位の項目だけをリセットし、履歴は引き継ぎます。
	rec := &entity.Record{SessionID: sessionID, StartedAt: now}
	if prev != nil {
		rec.History = slices.Clone(prev.History)
		if cp != entity.CheckpointInitiated {
			rec.StartedAt = prev.StartedAt
			rec.CurrentAgent = prev.CurrentAgent
			rec.AgentActivity = prev.AgentActivity
			rec.Extra = prev.Extra
		}
	}

	elapsed := now.Sub(rec.StartedAt)
	rec.CurrentStatus = cp
	rec.LastUpdated = now
	rec.ElapsedSeconds = elapsed.Seconds()
	rec.ElapsedFormatted = entity.FormatElapsed(elapsed)
	rec.Details = p.Details
	rec.History = append(rec.History, entity.HistoryEntry{
		Status:    cp,
		Timestamp: now,
		Details:   p.Details,
		Agent:     p.Agent,
	})
	if len(rec.History) > maxHistory {
		rec.History = rec.History[len(rec.History)-maxHistory:]
	}

	if p.Agent != "" {
		rec.CurrentAgent = p.Agent
		rec.AgentActivity = &entity.AgentActivity{
			ActiveAgent:       p.Agent,
			ActivityStartedAt: now,
			TaskDescription:   entity.AgentDescriptions[p.Agent],
		}
	}
	if len(p.URLs) > 0 {
		rec.ScrapingProgress = &entity.ScrapingProgress{URLs: p.URLs, TotalURLs: len(p.URLs)}
	}
	if len(p.Extra) > 0 {
		merged := make(map[string]any, len(rec.Extra)+len(p.Extra))
		for k, v := range rec.Extra {
			merged[k] = v
		}
		for k, v := range p.Extra {
			merged[k] = v
		}
		rec.Extra = merged
	}

	if err := t.store.Save(ctx, rec); err != nil {
		slog.Warn("failed to save status record, retrying with a reduced record",
			"session_id", sessionID, "status", cp, "error", err)
		reduced := &entity.Record{
			SessionID:        sessionID,
			CurrentStatus:    cp,
			StartedAt:        rec.StartedAt,
			LastUpdated:      now,
			ElapsedSeconds:   rec.ElapsedSeconds,
			ElapsedFormatted: rec.ElapsedFormatted,
			Details:          p.Details,
			History:          rec.History[len(rec.History)-1:],
		}
		if err := t.store.Save(ctx, reduced); err != nil {
			slog.Error("failed to save status record", "session_id", sessionID, "status", cp, "error", err)
		}
		return reduced
	}

	slog.Info("status updated", "session_id", sessionID, "status", cp, "elapsed", rec.ElapsedFormatted)
	return rec
}

// Current returns the session's record, or an "unknown" record when none exists.
func (t *Tracker) Current(ctx context.Context, sessionID string) (*entity.Record, error) {
	rec, err := t.store.Find(ctx, sessionID)
	if errors.Is(err, ErrStatusNotFound) {
		return &entity.Record{SessionID: sessionID, CurrentStatus: entity.CheckpointUnknown}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
