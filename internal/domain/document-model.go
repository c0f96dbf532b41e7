package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Version lifecycle states, kept with the wire values the frontend expects.
const (
	VersionStatusBorrador   = "borrador"
	VersionStatusEnRevision = "en_revision"
	VersionStatusAprobado   = "aprobado"
	VersionStatusPublicado  = "publicado"
	VersionStatusVigente    = "vigente"
)

type Document struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   string     `gorm:"type:uuid;not null;index" json:"company_id"`
	ProcessID   *string    `gorm:"type:uuid;index" json:"process_id,omitempty"`
	OwnerID     *string    `gorm:"type:uuid" json:"owner_id,omitempty"`
	Code        string     `json:"code"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description,omitempty"`
	Tags        StringList `gorm:"type:jsonb" json:"tags"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DocumentVersion keeps the version value as a string; ordering is numeric
// when the value parses as a number (see services.CompareVersionValues).
type DocumentVersion struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID string     `gorm:"type:uuid;not null;index" json:"document_id"`
	Version    string     `gorm:"not null" json:"version"`
	Status     string     `gorm:"type:varchar(20);not null;default:borrador" json:"status"`
	FileURL    *string    `json:"file_url,omitempty"`
	ApprovedBy *string    `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (v *DocumentVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// DocumentRead is a read receipt, unique per (document, user, version).
// Re-recording the same receipt upserts instead of inserting.
type DocumentRead struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID string     `gorm:"type:uuid;not null;uniqueIndex:uidx_document_reads_receipt" json:"document_id"`
	UserID     string     `gorm:"type:uuid;not null;uniqueIndex:uidx_document_reads_receipt" json:"user_id"`
	Version    string     `gorm:"not null;uniqueIndex:uidx_document_reads_receipt" json:"version"`
	ReadAt     time.Time  `gorm:"not null" json:"read_at"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

func (r *DocumentRead) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
