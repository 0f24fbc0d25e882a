// Package adapters provides relational storage for status records.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/status/usecase"
)

// statusGorm stores status records in the database when Redis is unavailable.
type statusGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure statusGorm implements StatusStore.
var _ usecase.StatusStore = (*statusGorm)(nil)

// NewStatusGorm creates a new instance of statusGorm.
func NewStatusGorm(db *gorm.DB) *statusGorm {
	return &statusGorm{db: db}
}

// Save upserts the record keyed by session id.
func (r *statusGorm) Save(ctx context.Context, rec *entity.Record) error {
	model, err := StatusModelFromEntity(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_status", "started_at", "updated_at", "payload"}),
		}).
		Create(model).Error
}

// Find retrieves the record for a session.
func (r *statusGorm) Find(ctx context.Context, sessionID string) (*entity.Record, error) {
	var model StatusModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStatusNotFound
		}
		return nil, err
	}
	return model.ToEntity()
}
