package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Process struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   string    `gorm:"type:uuid;not null;index" json:"company_id"`
	Code        string    `json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	OwnerID     *string   `gorm:"type:uuid" json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Process) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Task belongs to a process and inherits its company.
type Task struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessID   string    `gorm:"type:uuid;not null;index" json:"process_id"`
	CompanyID   string    `gorm:"type:uuid;not null;index" json:"company_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:pendiente" json:"status"`
	AssigneeID  *string   `gorm:"type:uuid" json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
