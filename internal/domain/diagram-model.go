package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diagram covers organigrams and free-form drawings. Content is the raw
// serialized canvas the frontend round-trips.
type Diagram struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   string    `gorm:"type:uuid;not null;index" json:"company_id"`
	Title       string    `gorm:"not null" json:"title"`
	DiagramType string    `gorm:"type:varchar(30);not null;default:organigram" json:"diagram_type"`
	Content     JSONMap   `gorm:"type:jsonb" json:"content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *Diagram) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
