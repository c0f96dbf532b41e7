package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

// DocumentFilter narrows document listings. Nil company means "no tenant
// filter" and is only ever passed for root callers.
type DocumentFilter struct {
	CompanyID       *string
	ProcessID       *string
	IncludeInactive bool
}

type DocumentRepository interface {
	Repository[domain.Document]
	ListFiltered(filter DocumentFilter) ([]domain.Document, error)
	ResolveArtifact(id string) (*domain.ArtifactRef, error)
}

type documentRepository struct {
	*CrudRepository[domain.Document]
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{
		CrudRepository: NewCrudRepository[domain.Document](db, "documents"),
		db:             db,
	}
}

func (r *documentRepository) ListFiltered(filter DocumentFilter) ([]domain.Document, error) {
	query := r.db.Model(&domain.Document{})
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.ProcessID != nil {
		query = query.Where("process_id = ?", *filter.ProcessID)
	}
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}

	var documents []domain.Document
	if err := query.Find(&documents).Error; err != nil {
		return nil, r.wrap("list_filtered", err)
	}
	return documents, nil
}

func (r *documentRepository) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	document, err := r.ByID(id)
	if err != nil || document == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: document.ID, CompanyID: document.CompanyID}, nil
}
