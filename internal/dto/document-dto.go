package dto

import (
	"time"

	"github.com/Procesia/docs_service/internal/domain"
)

type DocumentListQuery struct {
	CompanyID       *string
	ProcessID       *string
	IncludeInactive bool
}

type CreateVersionRequest struct {
	Version *string `json:"version,omitempty"`
	Status  *string `json:"status,omitempty"`
	FileURL *string `json:"file_url,omitempty"`
}

type CreateDocumentRequest struct {
	CompanyID      *string               `json:"company_id,omitempty"`
	ProcessID      *string               `json:"process_id,omitempty"`
	OwnerID        *string               `json:"owner_id,omitempty"`
	Code           string                `json:"code"`
	Title          string                `json:"title" validate:"required"`
	Description    *string               `json:"description,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	Active         *bool                 `json:"active,omitempty"`
	InitialVersion *CreateVersionRequest `json:"initial_version,omitempty"`
}

type UpdateDocumentRequest struct {
	CompanyID   *string   `json:"company_id,omitempty"`
	ProcessID   *string   `json:"process_id,omitempty"`
	OwnerID     *string   `json:"owner_id,omitempty"`
	Code        *string   `json:"code,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

// Fields flattens the patch into the column map the repository consumes,
// skipping everything the caller did not send.
func (r UpdateDocumentRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.CompanyID != nil {
		fields["company_id"] = *r.CompanyID
	}
	if r.ProcessID != nil {
		fields["process_id"] = *r.ProcessID
	}
	if r.OwnerID != nil {
		fields["owner_id"] = *r.OwnerID
	}
	if r.Code != nil {
		fields["code"] = *r.Code
	}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Tags != nil {
		fields["tags"] = domain.StringList(*r.Tags)
	}
	if r.Active != nil {
		fields["active"] = *r.Active
	}
	return fields
}

type RecordReadRequest struct {
	Version *string    `json:"version,omitempty"`
	ReadAt  *time.Time `json:"read_at,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// VersionView is a version enriched with the approver's display name.
type VersionView struct {
	domain.DocumentVersion
	ApprovedByName *string `json:"approved_by_name,omitempty"`
}

// ReadView is a read receipt enriched with the reader's display name and
// position.
type ReadView struct {
	domain.DocumentRead
	User     *string `json:"user,omitempty"`
	Position *string `json:"position,omitempty"`
}

// DocumentView is the hydrated list-view payload.
type DocumentView struct {
	domain.Document
	Owner          *string       `json:"owner,omitempty"`
	CurrentVersion *VersionView  `json:"current_version"`
	Versions       []VersionView `json:"versions"`
	Reads          []ReadView    `json:"reads"`
}

// DocumentDetail is the single-document payload.
type DocumentDetail struct {
	domain.Document
	Versions        []domain.DocumentVersion `json:"versions"`
	LatestVersion   *domain.DocumentVersion  `json:"latest_version"`
	CurrentUserRead *domain.DocumentRead     `json:"current_user_read"`
}

// DocumentCreated is the create response; version fields are only present
// when an initial version was requested.
type DocumentCreated struct {
	domain.Document
	LatestVersion *domain.DocumentVersion  `json:"latest_version,omitempty"`
	Versions      []domain.DocumentVersion `json:"versions,omitempty"`
}
