package dto

import "github.com/Procesia/docs_service/internal/domain"

type CreateProcessRequest struct {
	CompanyID   *string `json:"company_id,omitempty"`
	Code        string  `json:"code"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	OwnerID     *string `json:"owner_id,omitempty"`
}

type UpdateProcessRequest struct {
	CompanyID   *string `json:"company_id,omitempty"`
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	OwnerID     *string `json:"owner_id,omitempty"`
}

func (r UpdateProcessRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.CompanyID != nil {
		fields["company_id"] = *r.CompanyID
	}
	if r.Code != nil {
		fields["code"] = *r.Code
	}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.OwnerID != nil {
		fields["owner_id"] = *r.OwnerID
	}
	return fields
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

func (r UpdateTaskRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.AssigneeID != nil {
		fields["assignee_id"] = *r.AssigneeID
	}
	return fields
}

// ProcessDetail bundles a process with its tasks and links.
type ProcessDetail struct {
	domain.Process
	Tasks []domain.Task         `json:"tasks"`
	Links []domain.ArtifactLink `json:"links"`
}
