package dto

import "github.com/Procesia/docs_service/internal/domain"

type CreateDiagramRequest struct {
	CompanyID   *string        `json:"company_id,omitempty"`
	Title       string         `json:"title" validate:"required"`
	DiagramType *string        `json:"diagram_type,omitempty"`
	Content     domain.JSONMap `json:"content,omitempty"`
}

type UpdateDiagramRequest struct {
	CompanyID   *string        `json:"company_id,omitempty"`
	Title       *string        `json:"title,omitempty"`
	DiagramType *string        `json:"diagram_type,omitempty"`
	Content     domain.JSONMap `json:"content,omitempty"`
}

func (r UpdateDiagramRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.CompanyID != nil {
		fields["company_id"] = *r.CompanyID
	}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.DiagramType != nil {
		fields["diagram_type"] = *r.DiagramType
	}
	if r.Content != nil {
		fields["content"] = r.Content
	}
	return fields
}

// DiagramDetail is a diagram with its artifact links.
type DiagramDetail struct {
	domain.Diagram
	Links []domain.ArtifactLink `json:"links"`
}
