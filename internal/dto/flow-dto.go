package dto

import "github.com/Procesia/docs_service/internal/domain"

type CreateFlowRequest struct {
	CompanyID   *string `json:"company_id,omitempty"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type UpdateFlowRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r UpdateFlowRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	return fields
}

// SaveFlowGraphRequest replaces a flow's full node/edge set.
type SaveFlowGraphRequest struct {
	Nodes []domain.FlowNode `json:"nodes"`
	Edges []domain.FlowEdge `json:"edges"`
}

type FlowGraph struct {
	domain.Flow
	Nodes []domain.FlowNode `json:"nodes"`
	Edges []domain.FlowEdge `json:"edges"`
}
