package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository returns rows unordered; version ordering is a business
// rule (numeric-preferred comparison) and lives in the service layer.
type VersionRepository interface {
	Repository[domain.DocumentVersion]
	ListForDocument(documentID string) ([]domain.DocumentVersion, error)
	ListForDocuments(documentIDs []string) ([]domain.DocumentVersion, error)
}

type versionRepository struct {
	*CrudRepository[domain.DocumentVersion]
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{
		CrudRepository: NewCrudRepository[domain.DocumentVersion](db, "document_versions"),
		db:             db,
	}
}

func (r *versionRepository) ListForDocument(documentID string) ([]domain.DocumentVersion, error) {
	var versions []domain.DocumentVersion
	err := r.db.Where("document_id = ?", documentID).Find(&versions).Error
	if err != nil {
		return nil, r.wrap("list_for_document", err)
	}
	return versions, nil
}

// ListForDocuments is the batched query behind list-view hydration: one
// round trip for any number of documents.
func (r *versionRepository) ListForDocuments(documentIDs []string) ([]domain.DocumentVersion, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	var versions []domain.DocumentVersion
	err := r.db.Where("document_id IN ?", documentIDs).
		Order("document_id").
		Find(&versions).Error
	if err != nil {
		return nil, r.wrap("list_for_documents", err)
	}
	return versions, nil
}
