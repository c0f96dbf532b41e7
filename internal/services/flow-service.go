package services

import (
	"context"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/repository"
)

type FlowService interface {
	ListFlows(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.Flow, error)
	GetFlowGraph(ctx context.Context, profile *domain.UserProfile, flowID string) (*dto.FlowGraph, error)
	CreateFlow(ctx context.Context, profile *domain.UserProfile, req dto.CreateFlowRequest) (*domain.Flow, error)
	UpdateFlow(ctx context.Context, profile *domain.UserProfile, flowID string, req dto.UpdateFlowRequest) (*domain.Flow, error)
	DeleteFlow(ctx context.Context, profile *domain.UserProfile, flowID string) error
	SaveGraph(ctx context.Context, profile *domain.UserProfile, flowID string, req dto.SaveFlowGraphRequest) (*dto.FlowGraph, error)
}

type flowService struct {
	base   *EntityService[domain.Flow]
	repo   repository.FlowRepository
	policy *AccessPolicy
	audit  AuditTrail
}

func NewFlowService(repo repository.FlowRepository, policy *AccessPolicy, audit AuditTrail) FlowService {
	return &flowService{
		base:   NewEntityService("flows", repo, audit, func(f *domain.Flow) string { return f.ID }),
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

func (s *flowService) loadFlow(ctx context.Context, profile *domain.UserProfile, flowID string) (*domain.Flow, error) {
	flow, err := s.base.GetByID(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureCanAccessCompany(profile, flow.CompanyID); err != nil {
		return nil, err
	}
	return flow, nil
}

func (s *flowService) graphFor(flow *domain.Flow) (*dto.FlowGraph, error) {
	nodes, err := s.repo.NodesForFlow(flow.ID)
	if err != nil {
		return nil, err
	}
	edges, err := s.repo.EdgesForFlow(flow.ID)
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []domain.FlowNode{}
	}
	if edges == nil {
		edges = []domain.FlowEdge{}
	}
	return &dto.FlowGraph{Flow: *flow, Nodes: nodes, Edges: edges}, nil
}

func (s *flowService) ListFlows(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.Flow, error) {
	resolved, err := s.policy.ResolveCompany(profile, companyID)
	if err != nil {
		return nil, err
	}
	if resolved != "" {
		return s.repo.ListByCompany(resolved)
	}
	return s.base.ListAll(ctx)
}

func (s *flowService) GetFlowGraph(ctx context.Context, profile *domain.UserProfile, flowID string) (*dto.FlowGraph, error) {
	flow, err := s.loadFlow(ctx, profile, flowID)
	if err != nil {
		return nil, err
	}
	return s.graphFor(flow)
}

func (s *flowService) CreateFlow(ctx context.Context, profile *domain.UserProfile, req dto.CreateFlowRequest) (*domain.Flow, error) {
	companyID, err := s.policy.ResolveCompany(profile, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if companyID == "" {
		return nil, apperr.Validation("a company is required for the flow")
	}
	flow := &domain.Flow{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
	}
	return s.base.Create(ctx, flow, profile.ID, map[string]interface{}{"company_id": companyID})
}

func (s *flowService) UpdateFlow(ctx context.Context, profile *domain.UserProfile, flowID string, req dto.UpdateFlowRequest) (*domain.Flow, error) {
	if _, err := s.loadFlow(ctx, profile, flowID); err != nil {
		return nil, err
	}
	return s.base.Update(ctx, flowID, req.Fields(), profile.ID, nil)
}

func (s *flowService) DeleteFlow(ctx context.Context, profile *domain.UserProfile, flowID string) error {
	flow, err := s.loadFlow(ctx, profile, flowID)
	if err != nil {
		return err
	}
	return s.base.Delete(ctx, flowID, profile.ID, map[string]interface{}{"title": flow.Title})
}

// SaveGraph replaces the flow's whole node/edge set, which is how the editor
// persists. Every edge must reference nodes carried in the same payload.
func (s *flowService) SaveGraph(ctx context.Context, profile *domain.UserProfile, flowID string, req dto.SaveFlowGraphRequest) (*dto.FlowGraph, error) {
	flow, err := s.loadFlow(ctx, profile, flowID)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(req.Nodes))
	for i := range req.Nodes {
		if req.Nodes[i].ID != "" {
			known[req.Nodes[i].ID] = struct{}{}
		}
	}
	for i := range req.Edges {
		edge := &req.Edges[i]
		if edge.SourceID == "" || edge.TargetID == "" {
			return nil, apperr.Validation("every edge needs a source and a target node")
		}
		if _, ok := known[edge.SourceID]; !ok {
			return nil, apperr.Validation("an edge references a node outside the graph").
				WithDetails(map[string]interface{}{"node_id": edge.SourceID})
		}
		if _, ok := known[edge.TargetID]; !ok {
			return nil, apperr.Validation("an edge references a node outside the graph").
				WithDetails(map[string]interface{}{"node_id": edge.TargetID})
		}
	}

	if err := s.repo.ReplaceGraph(flowID, req.Nodes, req.Edges); err != nil {
		return nil, err
	}

	// The trail is best effort by contract, mutation outcomes never depend
	// on it.
	_ = s.audit.Record(ctx, AuditEntry{
		Entity:      "flows",
		Action:      "save_graph",
		EntityID:    flowID,
		PerformedBy: profile.ID,
		Metadata: map[string]interface{}{
			"nodes": len(req.Nodes),
			"edges": len(req.Edges),
		},
	})

	return s.graphFor(flow)
}
