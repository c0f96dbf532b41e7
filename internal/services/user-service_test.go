package services

import (
	"context"
	"testing"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	*memRepo[domain.UserProfile]
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{memRepo: newMemRepo(
		func(u *domain.UserProfile) string { return u.ID },
		func(u *domain.UserProfile, id string) { u.ID = id },
		func(u *domain.UserProfile, fields map[string]interface{}) {
			if v, ok := fields["full_name"].(string); ok {
				u.FullName = v
			}
			if v, ok := fields["role"].(string); ok {
				u.Role = v
			}
			if v, ok := fields["active"].(bool); ok {
				u.Active = v
			}
		},
	)}
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.UserProfile, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Email == email {
			user := all[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDs(ids []string) ([]domain.UserProfile, error) {
	var matched []domain.UserProfile
	for _, id := range ids {
		user, err := r.ByID(id)
		if err != nil {
			return nil, err
		}
		if user != nil {
			matched = append(matched, *user)
		}
	}
	return matched, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string) ([]domain.UserProfile, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var matched []domain.UserProfile
	for _, user := range all {
		if user.CompanyID != nil && *user.CompanyID == companyID {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func newUserFixture(t *testing.T) (*fakeUserRepo, UserService) {
	t.Helper()
	repo := newFakeUserRepo()
	return repo, NewUserService(repo, NewAccessPolicy(), &fakeAudit{})
}

func adminProfile(companyID string) *domain.UserProfile {
	return &domain.UserProfile{
		ID:        uuid.NewString(),
		Email:     "admin@acme.test",
		Role:      domain.RoleAdmin,
		CompanyID: &companyID,
		Active:    true,
	}
}

func TestCreateUserNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	_, svc := newUserFixture(t)
	companyID := uuid.NewString()
	admin := adminProfile(companyID)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, admin, dto.CreateUserRequest{Email: "  New.Person@Acme.Test "})
	require.NoError(t, err)
	assert.Equal(t, "new.person@acme.test", created.Email)
	assert.Equal(t, domain.RoleUser, created.Role)
	require.NotNil(t, created.CompanyID)
	assert.Equal(t, companyID, *created.CompanyID)

	_, err = svc.CreateUser(ctx, admin, dto.CreateUserRequest{Email: "new.person@acme.test"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateUserRoleRules(t *testing.T) {
	_, svc := newUserFixture(t)
	companyID := uuid.NewString()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, adminProfile(companyID), dto.CreateUserRequest{
		Email: "super@acme.test",
		Role:  domain.RoleRoot,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	_, err = svc.CreateUser(ctx, memberProfile(companyID), dto.CreateUserRequest{Email: "peer@acme.test"})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
}

func TestUpdateUserGuards(t *testing.T) {
	repo, svc := newUserFixture(t)
	companyID := uuid.NewString()
	admin := adminProfile(companyID)
	ctx := context.Background()

	target, err := repo.Insert(&domain.UserProfile{
		Email:     "target@acme.test",
		Role:      domain.RoleUser,
		CompanyID: &companyID,
		Active:    true,
	})
	require.NoError(t, err)

	// an admin from another company cannot touch the profile
	otherAdmin := adminProfile(uuid.NewString())
	_, err = svc.UpdateUser(ctx, otherAdmin, target.ID, dto.UpdateUserRequest{})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	// nobody changes their own role
	self := *target
	role := domain.RoleAdmin
	_, err = svc.UpdateUser(ctx, &self, self.ID, dto.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	// role changes are reserved to root, an admin cannot promote
	_, err = svc.UpdateUser(ctx, admin, target.ID, dto.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	promoted, err := svc.UpdateUser(ctx, rootProfile(), target.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)
}

func TestRootUsersOutOfAdminReach(t *testing.T) {
	repo, svc := newUserFixture(t)
	companyID := uuid.NewString()
	admin := adminProfile(companyID)
	ctx := context.Background()

	superuser, err := repo.Insert(&domain.UserProfile{
		Email:  "super@acme.test",
		Role:   domain.RoleRoot,
		Active: true,
	})
	require.NoError(t, err)

	name := "renamed"
	_, err = svc.UpdateUser(ctx, admin, superuser.ID, dto.UpdateUserRequest{FullName: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	err = svc.DeleteUser(ctx, admin, superuser.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	// root itself is not bounded
	_, err = svc.UpdateUser(ctx, rootProfile(), superuser.ID, dto.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)

	kept, err := repo.ByID(superuser.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestDeleteUserGuards(t *testing.T) {
	repo, svc := newUserFixture(t)
	companyID := uuid.NewString()
	admin := adminProfile(companyID)
	ctx := context.Background()

	err := svc.DeleteUser(ctx, admin, admin.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	target, err := repo.Insert(&domain.UserProfile{
		Email:     "leaver@acme.test",
		Role:      domain.RoleUser,
		CompanyID: &companyID,
		Active:    true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, admin, target.ID))

	gone, err := repo.ByID(target.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestFindByEmailNormalizes(t *testing.T) {
	repo, svc := newUserFixture(t)
	_, err := repo.Insert(&domain.UserProfile{Email: "someone@acme.test", Active: true})
	require.NoError(t, err)

	found, err := svc.FindByEmail(context.Background(), "  Someone@Acme.Test ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "someone@acme.test", found.Email)

	missing, err := svc.FindByEmail(context.Background(), "ghost@acme.test")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
