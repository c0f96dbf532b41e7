package repository

import (
	"errors"

	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	Repository[domain.UserProfile]
	FindByEmail(email string) (*domain.UserProfile, error)
	GetByIDs(ids []string) ([]domain.UserProfile, error)
	ListByCompany(companyID string) ([]domain.UserProfile, error)
}

type userRepository struct {
	*CrudRepository[domain.UserProfile]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		CrudRepository: NewCrudRepository[domain.UserProfile](db, "user_profiles"),
		db:             db,
	}
}

func (r *userRepository) FindByEmail(email string) (*domain.UserProfile, error) {
	user := &domain.UserProfile{}
	err := r.db.First(user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("find_by_email", err)
	}
	return user, nil
}

// GetByIDs is the batched lookup hydration uses to resolve display names.
func (r *userRepository) GetByIDs(ids []string) ([]domain.UserProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []domain.UserProfile
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, r.wrap("get_by_ids", err)
	}
	return users, nil
}

func (r *userRepository) ListByCompany(companyID string) ([]domain.UserProfile, error) {
	var users []domain.UserProfile
	err := r.db.Where("company_id = ?", companyID).Find(&users).Error
	if err != nil {
		return nil, r.wrap("list_by_company", err)
	}
	return users, nil
}
