// Package adapters provides relational storage for transform sessions.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"advisor_backend/internal/feature/transform/domain/entity"
	"advisor_backend/internal/feature/transform/usecase"
)

// maxCompanySessions bounds FindByCompany results.
const maxCompanySessions = 50

type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionStore.
var _ usecase.SessionStore = (*sessionGorm)(nil)

// NewSessionGorm creates a new instance of sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Save upserts the session keyed by session id. created_at is kept from the first write.
func (r *sessionGorm) Save(ctx context.Context, s *entity.Session) error {
	model, err := SessionModelFromEntity(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"company_key", "company_name", "company_url", "project_id", "user_id", "report_url", "updated_at", "payload"}),
		}).
		Create(model).Error
}

// Find retrieves a session by id.
func (r *sessionGorm) Find(ctx context.Context, sessionID string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity()
}

// FindByCompany returns the company's sessions, newest first.
func (r *sessionGorm) FindByCompany(ctx context.Context, companyName string) ([]entity.Session, error) {
	var models []SessionModel
	err := r.db.WithContext(ctx).
		Where("company_key = ?", companyKey(companyName)).
		Order("created_at DESC").
		Limit(maxCompanySessions).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Session, 0, len(models))
	for i := range models {
		s, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}
