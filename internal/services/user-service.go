package services

import (
	"context"
	"strings"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/repository"
)

type UserService interface {
	FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	ListUsers(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.UserProfile, error)
	GetUser(ctx context.Context, profile *domain.UserProfile, userID string) (*domain.UserProfile, error)
	CreateUser(ctx context.Context, profile *domain.UserProfile, req dto.CreateUserRequest) (*domain.UserProfile, error)
	UpdateUser(ctx context.Context, profile *domain.UserProfile, userID string, req dto.UpdateUserRequest) (*domain.UserProfile, error)
	DeleteUser(ctx context.Context, profile *domain.UserProfile, userID string) error
}

type userService struct {
	base   *EntityService[domain.UserProfile]
	repo   repository.UserRepository
	policy *AccessPolicy
}

func NewUserService(repo repository.UserRepository, policy *AccessPolicy, audit AuditTrail) UserService {
	return &userService{
		base:   NewEntityService("user_profiles", repo, audit, func(u *domain.UserProfile) string { return u.ID }),
		repo:   repo,
		policy: policy,
	}
}

// FindByEmail is the lookup the authentication middleware uses; absence is
// nil, nil rather than an error.
func (s *userService) FindByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
}

func (s *userService) requireAdmin(profile *domain.UserProfile) error {
	if profile.Role == domain.RoleRoot || profile.Role == domain.RoleAdmin {
		return nil
	}
	return apperr.Forbidden("only an admin may manage users")
}

// ensureCanManage bounds what an admin may do to another profile: root users
// are out of reach, and the target must belong to the admin's own company.
func (s *userService) ensureCanManage(profile *domain.UserProfile, user *domain.UserProfile) error {
	if profile.Role == domain.RoleRoot {
		return nil
	}
	if user.Role == domain.RoleRoot {
		return apperr.Forbidden("root users can only be managed by root")
	}
	if user.CompanyID == nil {
		return apperr.Forbidden("you cannot manage users from another company")
	}
	return s.policy.EnsureCanAccessCompany(profile, *user.CompanyID)
}

func (s *userService) ListUsers(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.UserProfile, error) {
	if err := s.requireAdmin(profile); err != nil {
		return nil, err
	}
	resolved, err := s.policy.ResolveCompany(profile, companyID)
	if err != nil {
		return nil, err
	}
	if resolved != "" {
		return s.repo.ListByCompany(resolved)
	}
	return s.base.ListAll(ctx)
}

func (s *userService) GetUser(ctx context.Context, profile *domain.UserProfile, userID string) (*domain.UserProfile, error) {
	user, err := s.base.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.ID == userID {
		return user, nil
	}
	if err := s.requireAdmin(profile); err != nil {
		return nil, err
	}
	if user.CompanyID != nil {
		if err := s.policy.EnsureCanAccessCompany(profile, *user.CompanyID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, profile *domain.UserProfile, req dto.CreateUserRequest) (*domain.UserProfile, error) {
	if err := s.requireAdmin(profile); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role == domain.RoleRoot && profile.Role != domain.RoleRoot {
		return nil, apperr.Forbidden("only a root user may grant the root role")
	}

	companyID, err := s.policy.ResolveCompany(profile, req.CompanyID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("a user with this email already exists").
			WithDetails(map[string]interface{}{"email": email})
	}

	user := &domain.UserProfile{
		Email:    email,
		FullName: req.FullName,
		Position: req.Position,
		Role:     role,
		Active:   true,
	}
	if companyID != "" {
		user.CompanyID = &companyID
	}
	return s.base.Create(ctx, user, profile.ID, map[string]interface{}{"email": email, "role": role})
}

func (s *userService) UpdateUser(ctx context.Context, profile *domain.UserProfile, userID string, req dto.UpdateUserRequest) (*domain.UserProfile, error) {
	user, err := s.base.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.ID != userID {
		if err := s.requireAdmin(profile); err != nil {
			return nil, err
		}
		if err := s.ensureCanManage(profile, user); err != nil {
			return nil, err
		}
	}
	if req.Role != nil && *req.Role != user.Role {
		if profile.ID == userID {
			return nil, apperr.Forbidden("you cannot change your own role")
		}
		if profile.Role != domain.RoleRoot {
			return nil, apperr.Forbidden("only a root user may change roles")
		}
	}
	if req.CompanyID != nil && profile.Role != domain.RoleRoot {
		return nil, apperr.Forbidden("only a root user may reassign the company")
	}
	return s.base.Update(ctx, userID, req.Fields(), profile.ID, nil)
}

func (s *userService) DeleteUser(ctx context.Context, profile *domain.UserProfile, userID string) error {
	if profile.ID == userID {
		return apperr.Validation("you cannot delete your own profile")
	}
	user, err := s.base.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(profile); err != nil {
		return err
	}
	if err := s.ensureCanManage(profile, user); err != nil {
		return err
	}
	return s.base.Delete(ctx, userID, profile.ID, map[string]interface{}{"email": user.Email})
}
