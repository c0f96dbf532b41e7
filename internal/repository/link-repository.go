package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type LinkRepository interface {
	Repository[domain.ArtifactLink]
	ListForEntity(entityID string, kind domain.ArtifactKind) ([]domain.ArtifactLink, error)
	GetByPair(fromID string, fromType domain.ArtifactKind, toID string, toType domain.ArtifactKind) (*domain.ArtifactLink, error)
}

type linkRepository struct {
	*CrudRepository[domain.ArtifactLink]
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{
		CrudRepository: NewCrudRepository[domain.ArtifactLink](db, "artifact_links"),
		db:             db,
	}
}

// ListForEntity merges links where the entity is source or destination,
// deduplicated by link id. A self-referential link matches both sides of the
// OR and must still appear once.
func (r *linkRepository) ListForEntity(entityID string, kind domain.ArtifactKind) ([]domain.ArtifactLink, error) {
	var links []domain.ArtifactLink
	err := r.db.
		Where("(from_id = ? AND from_type = ?) OR (to_id = ? AND to_type = ?)",
			entityID, kind, entityID, kind).
		Find(&links).Error
	if err != nil {
		return nil, r.wrap("list_for_entity", err)
	}

	seen := make(map[string]struct{}, len(links))
	deduped := links[:0]
	for _, link := range links {
		if _, ok := seen[link.ID]; ok {
			continue
		}
		seen[link.ID] = struct{}{}
		deduped = append(deduped, link)
	}
	return deduped, nil
}

func (r *linkRepository) GetByPair(fromID string, fromType domain.ArtifactKind, toID string, toType domain.ArtifactKind) (*domain.ArtifactLink, error) {
	var links []domain.ArtifactLink
	err := r.db.
		Where("from_id = ? AND from_type = ? AND to_id = ? AND to_type = ?",
			fromID, fromType, toID, toType).
		Limit(1).
		Find(&links).Error
	if err != nil {
		return nil, r.wrap("get_by_pair", err)
	}
	if len(links) == 0 {
		return nil, nil
	}
	return &links[0], nil
}
