package adapters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"advisor_backend/internal/feature/transform/domain/entity"
)

// SessionModel is the GORM model for the transform_sessions table.
// The session is stored as JSON; the lookup columns are kept alongside it.
type SessionModel struct {
	SessionID   string    `gorm:"primaryKey;size:64"`
	CompanyKey  string    `gorm:"size:255;index:idx_sessions_company_created,priority:1;not null"`
	CompanyName string    `gorm:"size:255;not null"`
	CompanyURL  string    `gorm:"size:2048"`
	ProjectID   string    `gorm:"size:128"`
	UserID      string    `gorm:"size:128"`
	ReportURL   string    `gorm:"size:2048"`
	CreatedAt   time.Time `gorm:"index:idx_sessions_company_created,priority:2;not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	Payload     string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return "transform_sessions"
}

// companyKey normalizes a company name for case-insensitive lookups.
func companyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ToEntity decodes the stored session.
func (m *SessionModel) ToEntity() (*entity.Session, error) {
	var s entity.Session
	if err := json.Unmarshal([]byte(m.Payload), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// SessionModelFromEntity converts a session to a GORM model.
func SessionModelFromEntity(s *entity.Session) (*SessionModel, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return &SessionModel{
		SessionID:   s.SessionID,
		CompanyKey:  companyKey(s.CompanyName),
		CompanyName: s.CompanyName,
		CompanyURL:  s.CompanyURL,
		ProjectID:   s.ProjectID,
		UserID:      s.UserID,
		ReportURL:   s.ReportURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Payload:     string(payload),
	}, nil
}
