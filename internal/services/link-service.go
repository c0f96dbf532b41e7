package services

import (
	"context"
	"strings"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/repository"
)

// ArtifactResolver resolves an artifact id to its identity. Each entity
// repository implements it for its own kind.
type ArtifactResolver interface {
	ResolveArtifact(id string) (*domain.ArtifactRef, error)
}

// ArtifactLinkService manages the cross-entity link graph.
type ArtifactLinkService interface {
	ListForEntity(ctx context.Context, profile *domain.UserProfile, entityID string, kind domain.ArtifactKind) ([]domain.ArtifactLink, error)
	CreateLink(ctx context.Context, profile *domain.UserProfile, req dto.CreateLinkRequest) (*domain.ArtifactLink, error)
	DeleteLink(ctx context.Context, profile *domain.UserProfile, linkID string) error
	GetLink(ctx context.Context, linkID string) (*domain.ArtifactLink, error)
}

type linkService struct {
	links  repository.LinkRepository
	base   *EntityService[domain.ArtifactLink]
	policy *AccessPolicy

	// one resolver per kind; the enum is closed, so a plain switch
	// dispatches instead of a runtime registry
	documents ArtifactResolver
	processes ArtifactResolver
	tasks     ArtifactResolver
	diagrams  ArtifactResolver
}

func NewLinkService(
	links repository.LinkRepository,
	audit AuditTrail,
	policy *AccessPolicy,
	documents ArtifactResolver,
	processes ArtifactResolver,
	tasks ArtifactResolver,
	diagrams ArtifactResolver,
) ArtifactLinkService {
	return &linkService{
		links:     links,
		base:      NewEntityService("artifact_links", links, audit, func(l *domain.ArtifactLink) string { return l.ID }),
		policy:    policy,
		documents: documents,
		processes: processes,
		tasks:     tasks,
		diagrams:  diagrams,
	}
}

func (s *linkService) resolverFor(kind domain.ArtifactKind) ArtifactResolver {
	switch kind {
	case domain.KindDocument:
		return s.documents
	case domain.KindProcess:
		return s.processes
	case domain.KindTask:
		return s.tasks
	case domain.KindDiagram:
		return s.diagrams
	}
	return nil
}

func (s *linkService) resolveArtifact(kind domain.ArtifactKind, id string) (*domain.ArtifactRef, error) {
	resolver := s.resolverFor(kind)
	if resolver == nil {
		return nil, apperr.Validation("unsupported artifact type")
	}
	ref, err := resolver.ResolveArtifact(id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, apperr.NotFound("the requested artifact does not exist").
			WithDetails(map[string]interface{}{"id": id, "type": string(kind)})
	}
	return ref, nil
}

func coerceKind(value string) (domain.ArtifactKind, error) {
	kind, ok := domain.ParseArtifactKind(strings.TrimSpace(value))
	if !ok {
		return "", apperr.Validation("invalid artifact type").
			WithDetails(map[string]interface{}{"type": value})
	}
	return kind, nil
}

func (s *linkService) ListForEntity(ctx context.Context, profile *domain.UserProfile, entityID string, kind domain.ArtifactKind) ([]domain.ArtifactLink, error) {
	ref, err := s.resolveArtifact(kind, entityID)
	if err != nil {
		return nil, err
	}
	if ref.CompanyID != "" {
		if err := s.policy.EnsureCanAccessCompany(profile, ref.CompanyID); err != nil {
			return nil, err
		}
	}
	return s.links.ListForEntity(entityID, kind)
}

func (s *linkService) CreateLink(ctx context.Context, profile *domain.UserProfile, req dto.CreateLinkRequest) (*domain.ArtifactLink, error) {
	fromID := strings.TrimSpace(req.FromID)
	toID := strings.TrimSpace(req.ToID)
	if fromID == "" || toID == "" {
		return nil, apperr.Validation("both artifacts to link are required")
	}

	fromType, err := coerceKind(req.FromType)
	if err != nil {
		return nil, err
	}
	toType, err := coerceKind(req.ToType)
	if err != nil {
		return nil, err
	}

	fromRef, err := s.resolveArtifact(fromType, fromID)
	if err != nil {
		return nil, err
	}
	toRef, err := s.resolveArtifact(toType, toID)
	if err != nil {
		return nil, err
	}

	if fromRef.CompanyID != "" && toRef.CompanyID != "" && fromRef.CompanyID != toRef.CompanyID {
		return nil, apperr.Validation("cross-tenant link forbidden").WithDetails(map[string]interface{}{
			"from_company": fromRef.CompanyID,
			"to_company":   toRef.CompanyID,
		})
	}

	companyID := fromRef.CompanyID
	if companyID == "" {
		companyID = toRef.CompanyID
	}
	if companyID == "" {
		return nil, apperr.Validation("linked artifacts must belong to a company")
	}

	if err := s.policy.EnsureCanAccessCompany(profile, companyID); err != nil {
		return nil, err
	}

	// Idempotent create: the same natural key returns the existing row and
	// produces no second audit entry. The unique index on the pair closes
	// the race between concurrent duplicate creates.
	existing, err := s.links.GetByPair(fromID, fromType, toID, toType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	link := &domain.ArtifactLink{
		FromID:       fromID,
		FromType:     fromType,
		ToID:         toID,
		ToType:       toType,
		RelationType: req.RelationType,
		CompanyID:    companyID,
	}
	return s.base.Create(ctx, link, profile.ID, map[string]interface{}{
		"from": map[string]interface{}{"id": fromID, "type": string(fromType)},
		"to":   map[string]interface{}{"id": toID, "type": string(toType)},
	})
}

func (s *linkService) DeleteLink(ctx context.Context, profile *domain.UserProfile, linkID string) error {
	link, err := s.GetLink(ctx, linkID)
	if err != nil {
		return err
	}
	if link.CompanyID != "" {
		if err := s.policy.EnsureCanAccessCompany(profile, link.CompanyID); err != nil {
			return err
		}
	}
	return s.base.Delete(ctx, linkID, profile.ID, nil)
}

func (s *linkService) GetLink(ctx context.Context, linkID string) (*domain.ArtifactLink, error) {
	return s.base.GetByID(ctx, linkID)
}
