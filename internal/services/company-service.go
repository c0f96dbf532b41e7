package services

import (
	"context"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/repository"
)

type CompanyService interface {
	ListCompanies(ctx context.Context, profile *domain.UserProfile) ([]domain.Company, error)
	GetCompany(ctx context.Context, profile *domain.UserProfile, companyID string) (*domain.Company, error)
	CreateCompany(ctx context.Context, profile *domain.UserProfile, req dto.CreateCompanyRequest) (*domain.Company, error)
	UpdateCompany(ctx context.Context, profile *domain.UserProfile, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)
	DeleteCompany(ctx context.Context, profile *domain.UserProfile, companyID string) error
}

type companyService struct {
	base   *EntityService[domain.Company]
	policy *AccessPolicy
}

func NewCompanyService(repo repository.CompanyRepository, policy *AccessPolicy, audit AuditTrail) CompanyService {
	return &companyService{
		base:   NewEntityService("companies", repo, audit, func(c *domain.Company) string { return c.ID }),
		policy: policy,
	}
}

// ListCompanies returns every company for root and the caller's own company
// for everyone else.
func (s *companyService) ListCompanies(ctx context.Context, profile *domain.UserProfile) ([]domain.Company, error) {
	if profile.Role == domain.RoleRoot {
		return s.base.ListAll(ctx)
	}
	companyID, err := s.policy.EnsureHasCompany(profile)
	if err != nil {
		return nil, err
	}
	company, err := s.base.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return []domain.Company{*company}, nil
}

func (s *companyService) GetCompany(ctx context.Context, profile *domain.UserProfile, companyID string) (*domain.Company, error) {
	if err := s.policy.EnsureCanAccessCompany(profile, companyID); err != nil {
		return nil, err
	}
	return s.base.GetByID(ctx, companyID)
}

func (s *companyService) CreateCompany(ctx context.Context, profile *domain.UserProfile, req dto.CreateCompanyRequest) (*domain.Company, error) {
	if profile.Role != domain.RoleRoot {
		return nil, apperr.Forbidden("only a root user may create companies")
	}
	company := &domain.Company{
		Name:        req.Name,
		TaxID:       req.TaxID,
		Description: req.Description,
		Active:      true,
	}
	return s.base.Create(ctx, company, profile.ID, map[string]interface{}{"name": req.Name})
}

func (s *companyService) UpdateCompany(ctx context.Context, profile *domain.UserProfile, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	switch profile.Role {
	case domain.RoleRoot:
	case domain.RoleAdmin:
		if err := s.policy.EnsureCanAccessCompany(profile, companyID); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Forbidden("only an admin may update the company")
	}
	return s.base.Update(ctx, companyID, req.Fields(), profile.ID, nil)
}

func (s *companyService) DeleteCompany(ctx context.Context, profile *domain.UserProfile, companyID string) error {
	if profile.Role != domain.RoleRoot {
		return apperr.Forbidden("only a root user may delete companies")
	}
	return s.base.Delete(ctx, companyID, profile.ID, nil)
}
