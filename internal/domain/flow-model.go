package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flow is the persisted form of a visual flow editor graph.
type Flow struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   string    `gorm:"type:uuid;not null;index" json:"company_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *Flow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type FlowNode struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FlowID    string    `gorm:"type:uuid;not null;index" json:"flow_id"`
	NodeType  string    `gorm:"type:varchar(30);not null;default:default" json:"node_type"`
	Label     string    `json:"label"`
	PositionX float64   `json:"position_x"`
	PositionY float64   `json:"position_y"`
	Data      JSONMap   `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *FlowNode) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

type FlowEdge struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FlowID    string    `gorm:"type:uuid;not null;index" json:"flow_id"`
	SourceID  string    `gorm:"type:uuid;not null" json:"source_id"`
	TargetID  string    `gorm:"type:uuid;not null" json:"target_id"`
	Label     *string   `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *FlowEdge) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
