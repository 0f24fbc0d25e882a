package usecase

import (
	"context"

	"advisor_backend/internal/feature/status/domain/entity"
)

// StatusStore persists the latest status record per session.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StatusStore interface {
	// Save overwrites the record for rec.SessionID.
	Save(ctx context.Context, rec *entity.Record) error
	// Find returns ErrStatusNotFound when the session has no record.
	Find(ctx context.Context, sessionID string) (*entity.Record, error)
}
