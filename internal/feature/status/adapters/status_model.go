package adapters

import (
	"encoding/json"
	"fmt"
	"time"

	"advisor_backend/internal/feature/status/domain/entity"
)

// StatusModel is the GORM model for the session_statuses table.
// The full record is kept as JSON; status and timestamps are columns for ad-hoc queries.
type StatusModel struct {
	SessionID     string    `gorm:"primaryKey;size:64"`
	CurrentStatus string    `gorm:"size:64;index;not null"`
	StartedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"index;not null"`
	Payload       string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM.
func (StatusModel) TableName() string {
	return "session_statuses"
}

// ToEntity decodes the stored JSON record.
func (m *StatusModel) ToEntity() (*entity.Record, error) {
	var rec entity.Record
	if err := json.Unmarshal([]byte(m.Payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status record: %w", err)
	}
	return &rec, nil
}

// StatusModelFromEntity converts a record to a GORM model.
func StatusModelFromEntity(rec *entity.Record) (*StatusModel, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status record: %w", err)
	}
	return &StatusModel{
		SessionID:     rec.SessionID,
		CurrentStatus: string(rec.CurrentStatus),
		StartedAt:     rec.StartedAt,
		UpdatedAt:     rec.LastUpdated,
		Payload:       string(payload),
	}, nil
}
