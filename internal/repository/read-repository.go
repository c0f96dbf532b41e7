package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadRepository interface {
	Repository[domain.DocumentRead]
	ListForDocuments(documentIDs []string) ([]domain.DocumentRead, error)
	UpsertRead(read *domain.DocumentRead) (*domain.DocumentRead, error)
	UserRead(documentID, userID string, version *string) (*domain.DocumentRead, error)
}

type readRepository struct {
	*CrudRepository[domain.DocumentRead]
	db *gorm.DB
}

func NewReadRepository(db *gorm.DB) ReadRepository {
	return &readRepository{
		CrudRepository: NewCrudRepository[domain.DocumentRead](db, "document_reads"),
		db:             db,
	}
}

func (r *readRepository) ListForDocuments(documentIDs []string) ([]domain.DocumentRead, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	var reads []domain.DocumentRead
	err := r.db.Where("document_id IN ?", documentIDs).Find(&reads).Error
	if err != nil {
		return nil, r.wrap("list_for_documents", err)
	}
	return reads, nil
}

// UpsertRead inserts or refreshes a receipt keyed on
// (document_id, user_id, version).
func (r *readRepository) UpsertRead(read *domain.DocumentRead) (*domain.DocumentRead, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "document_id"}, {Name: "user_id"}, {Name: "version"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"read_at", "due_date"}),
	}).Create(read).Error
	if err != nil {
		return nil, r.wrap("upsert_read", err)
	}
	return read, nil
}

func (r *readRepository) UserRead(documentID, userID string, version *string) (*domain.DocumentRead, error) {
	query := r.db.Where("document_id = ? AND user_id = ?", documentID, userID)
	if version != nil {
		query = query.Where("version = ?", *version)
	}

	var reads []domain.DocumentRead
	err := query.Order("read_at DESC").Limit(1).Find(&reads).Error
	if err != nil {
		return nil, r.wrap("user_read", err)
	}
	if len(reads) == 0 {
		return nil, nil
	}
	return &reads[0], nil
}
