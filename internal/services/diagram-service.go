package services

import (
	"context"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/repository"
)

type DiagramService interface {
	ListDiagrams(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.Diagram, error)
	GetDiagramDetail(ctx context.Context, profile *domain.UserProfile, diagramID string) (*dto.DiagramDetail, error)
	CreateDiagram(ctx context.Context, profile *domain.UserProfile, req dto.CreateDiagramRequest) (*domain.Diagram, error)
	UpdateDiagram(ctx context.Context, profile *domain.UserProfile, diagramID string, req dto.UpdateDiagramRequest) (*domain.Diagram, error)
	DeleteDiagram(ctx context.Context, profile *domain.UserProfile, diagramID string) error

	ListLinks(ctx context.Context, profile *domain.UserProfile, diagramID string) ([]domain.ArtifactLink, error)
	CreateLink(ctx context.Context, profile *domain.UserProfile, diagramID string, req dto.EntityLinkRequest) (*domain.ArtifactLink, error)
	DeleteLink(ctx context.Context, profile *domain.UserProfile, diagramID, linkID string) error
}

type diagramService struct {
	base   *EntityService[domain.Diagram]
	repo   repository.DiagramRepository
	links  ArtifactLinkService
	policy *AccessPolicy
}

func NewDiagramService(
	repo repository.DiagramRepository,
	links ArtifactLinkService,
	policy *AccessPolicy,
	audit AuditTrail,
) DiagramService {
	return &diagramService{
		base:   NewEntityService("diagrams", repo, audit, func(d *domain.Diagram) string { return d.ID }),
		repo:   repo,
		links:  links,
		policy: policy,
	}
}

func (s *diagramService) loadDiagram(ctx context.Context, profile *domain.UserProfile, diagramID string) (*domain.Diagram, error) {
	diagram, err := s.base.GetByID(ctx, diagramID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureCanAccessCompany(profile, diagram.CompanyID); err != nil {
		return nil, err
	}
	return diagram, nil
}

func (s *diagramService) ListDiagrams(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.Diagram, error) {
	resolved, err := s.policy.ResolveCompany(profile, companyID)
	if err != nil {
		return nil, err
	}
	if resolved != "" {
		return s.repo.ListByCompany(resolved)
	}
	return s.base.ListAll(ctx)
}

func (s *diagramService) GetDiagramDetail(ctx context.Context, profile *domain.UserProfile, diagramID string) (*dto.DiagramDetail, error) {
	diagram, err := s.loadDiagram(ctx, profile, diagramID)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListForEntity(ctx, profile, diagramID, domain.KindDiagram)
	if err != nil {
		return nil, err
	}
	return &dto.DiagramDetail{Diagram: *diagram, Links: links}, nil
}

func (s *diagramService) CreateDiagram(ctx context.Context, profile *domain.UserProfile, req dto.CreateDiagramRequest) (*domain.Diagram, error) {
	companyID, err := s.policy.ResolveCompany(profile, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if companyID == "" {
		return nil, apperr.Validation("a company is required for the diagram")
	}
	diagram := &domain.Diagram{
		CompanyID: companyID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if req.DiagramType != nil && *req.DiagramType != "" {
		diagram.DiagramType = *req.DiagramType
	}
	return s.base.Create(ctx, diagram, profile.ID, map[string]interface{}{"company_id": companyID})
}

func (s *diagramService) UpdateDiagram(ctx context.Context, profile *domain.UserProfile, diagramID string, req dto.UpdateDiagramRequest) (*domain.Diagram, error) {
	if _, err := s.loadDiagram(ctx, profile, diagramID); err != nil {
		return nil, err
	}
	if req.CompanyID != nil && *req.CompanyID != "" && profile.Role != domain.RoleRoot {
		return nil, apperr.Forbidden("only a root user may reassign the company")
	}
	return s.base.Update(ctx, diagramID, req.Fields(), profile.ID, nil)
}

func (s *diagramService) DeleteDiagram(ctx context.Context, profile *domain.UserProfile, diagramID string) error {
	diagram, err := s.loadDiagram(ctx, profile, diagramID)
	if err != nil {
		return err
	}
	return s.base.Delete(ctx, diagramID, profile.ID, map[string]interface{}{"title": diagram.Title})
}

func (s *diagramService) ListLinks(ctx context.Context, profile *domain.UserProfile, diagramID string) ([]domain.ArtifactLink, error) {
	if _, err := s.loadDiagram(ctx, profile, diagramID); err != nil {
		return nil, err
	}
	return s.links.ListForEntity(ctx, profile, diagramID, domain.KindDiagram)
}

func (s *diagramService) CreateLink(ctx context.Context, profile *domain.UserProfile, diagramID string, req dto.EntityLinkRequest) (*domain.ArtifactLink, error) {
	if _, err := s.loadDiagram(ctx, profile, diagramID); err != nil {
		return nil, err
	}
	return s.links.CreateLink(ctx, profile, entityLinkPayload(diagramID, domain.KindDiagram, req))
}

func (s *diagramService) DeleteLink(ctx context.Context, profile *domain.UserProfile, diagramID, linkID string) error {
	if _, err := s.loadDiagram(ctx, profile, diagramID); err != nil {
		return err
	}
	link, err := s.links.GetLink(ctx, linkID)
	if err != nil {
		return err
	}
	if !link.References(diagramID) {
		return apperr.Validation("the link does not belong to this diagram")
	}
	return s.links.DeleteLink(ctx, profile, linkID)
}
