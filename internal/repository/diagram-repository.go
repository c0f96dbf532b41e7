package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type DiagramRepository interface {
	Repository[domain.Diagram]
	ListByCompany(companyID string) ([]domain.Diagram, error)
	ResolveArtifact(id string) (*domain.ArtifactRef, error)
}

type diagramRepository struct {
	*CrudRepository[domain.Diagram]
	db *gorm.DB
}

func NewDiagramRepository(db *gorm.DB) DiagramRepository {
	return &diagramRepository{
		CrudRepository: NewCrudRepository[domain.Diagram](db, "diagrams"),
		db:             db,
	}
}

func (r *diagramRepository) ListByCompany(companyID string) ([]domain.Diagram, error) {
	var diagrams []domain.Diagram
	err := r.db.Where("company_id = ?", companyID).Find(&diagrams).Error
	if err != nil {
		return nil, r.wrap("list_by_company", err)
	}
	return diagrams, nil
}

func (r *diagramRepository) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	diagram, err := r.ByID(id)
	if err != nil || diagram == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: diagram.ID, CompanyID: diagram.CompanyID}, nil
}
