package services

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
)

// AccessPolicy enforces tenant isolation. Root callers may act across
// companies; everyone else is confined to their own.
type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// EnsureHasCompany returns the caller's company id. Failing here is only
// legal for non-root callers; root supplies companies explicitly per call.
func (p *AccessPolicy) EnsureHasCompany(profile *domain.UserProfile) (string, error) {
	if profile == nil || profile.CompanyID == nil || *profile.CompanyID == "" {
		return "", apperr.Validation("the user is not associated with any company")
	}
	return *profile.CompanyID, nil
}

func (p *AccessPolicy) EnsureCanAccessCompany(profile *domain.UserProfile, companyID string) error {
	if profile != nil && profile.Role == domain.RoleRoot {
		return nil
	}
	if profile == nil || profile.CompanyID == nil || *profile.CompanyID != companyID {
		return apperr.Forbidden("you do not have access to this company")
	}
	return nil
}

// ResolveCompany picks the company a call operates on: root may use the
// requested one (falling back to its own), others must match their own.
func (p *AccessPolicy) ResolveCompany(profile *domain.UserProfile, requested *string) (string, error) {
	if profile != nil && profile.Role == domain.RoleRoot {
		if requested != nil && *requested != "" {
			return *requested, nil
		}
		if profile.CompanyID != nil {
			return *profile.CompanyID, nil
		}
		return "", nil
	}

	companyID, err := p.EnsureHasCompany(profile)
	if err != nil {
		return "", err
	}
	if requested != nil && *requested != "" && *requested != companyID {
		return "", apperr.Forbidden("cannot operate on another company")
	}
	return companyID, nil
}
