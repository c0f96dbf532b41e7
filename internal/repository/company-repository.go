package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Repository[domain.Company]
}

type companyRepository struct {
	*CrudRepository[domain.Company]
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{
		CrudRepository: NewCrudRepository[domain.Company](db, "companies"),
	}
}
