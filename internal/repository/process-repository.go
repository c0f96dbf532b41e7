package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type ProcessRepository interface {
	Repository[domain.Process]
	ListByCompany(companyID string) ([]domain.Process, error)
	ResolveArtifact(id string) (*domain.ArtifactRef, error)
}

type processRepository struct {
	*CrudRepository[domain.Process]
	db *gorm.DB
}

func NewProcessRepository(db *gorm.DB) ProcessRepository {
	return &processRepository{
		CrudRepository: NewCrudRepository[domain.Process](db, "processes"),
		db:             db,
	}
}

func (r *processRepository) ListByCompany(companyID string) ([]domain.Process, error) {
	var processes []domain.Process
	err := r.db.Where("company_id = ?", companyID).Find(&processes).Error
	if err != nil {
		return nil, r.wrap("list_by_company", err)
	}
	return processes, nil
}

func (r *processRepository) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	process, err := r.ByID(id)
	if err != nil || process == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: process.ID, CompanyID: process.CompanyID}, nil
}
