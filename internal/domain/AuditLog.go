package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is append-only: the application never updates or deletes rows.
type AuditLog struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Entity      string    `gorm:"type:varchar(100);not null;index" json:"entity"`
	Action      string    `gorm:"type:varchar(100);not null" json:"action"`
	EntityID    *string   `gorm:"index" json:"entity_id,omitempty"`
	PerformedBy *string   `json:"performed_by,omitempty"`
	RequestID   *string   `json:"request_id,omitempty"`
	Metadata    JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	PerformedAt time.Time `gorm:"not null" json:"performed_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
