package repository

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

// AuditRepository is append-only on purpose: no update or delete methods.
type AuditRepository interface {
	Record(entry *domain.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(entry *domain.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return apperr.DataAccess("store failure during record on audit_log", err).
			WithDetails(map[string]interface{}{"entity": "audit_log", "error": err.Error()})
	}
	return nil
}
