package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/reqctx"
	"github.com/Procesia/docs_service/internal/repository"
	"github.com/rs/zerolog/log"
)

// AuditEntry describes one mutating action for the trail.
type AuditEntry struct {
	Entity      string
	Action      string
	EntityID    string
	PerformedBy string
	Metadata    map[string]interface{}
}

// AuditTrail records actions best effort. Record returns its error so callers
// can discard it explicitly; it never panics and it already logs failures, so
// discarding is the intended usage.
type AuditTrail interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type auditTrail struct {
	repo repository.AuditRepository
}

func NewAuditTrail(repo repository.AuditRepository) AuditTrail {
	return &auditTrail{repo: repo}
}

func (a *auditTrail) Record(ctx context.Context, entry AuditEntry) error {
	performedBy := entry.PerformedBy
	if performedBy == "" {
		performedBy = reqctx.UserID(ctx)
	}

	record := &domain.AuditLog{
		Entity:      entry.Entity,
		Action:      entry.Action,
		Metadata:    sanitizeMetadata(entry.Metadata),
		PerformedAt: time.Now().UTC(),
	}
	if entry.EntityID != "" {
		record.EntityID = &entry.EntityID
	}
	if performedBy != "" {
		record.PerformedBy = &performedBy
	}
	if requestID := reqctx.RequestID(ctx); requestID != "" {
		record.RequestID = &requestID
	}

	if err := a.repo.Record(record); err != nil {
		log.Warn().
			Err(err).
			Str("entity", entry.Entity).
			Str("action", entry.Action).
			Msg("audit record failed")
		return err
	}
	return nil
}

// sanitizeMetadata keeps primitive scalars as-is and stringifies everything
// else so the trail never rejects a payload.
func sanitizeMetadata(metadata map[string]interface{}) domain.JSONMap {
	if len(metadata) == 0 {
		return nil
	}
	sanitized := make(domain.JSONMap, len(metadata))
	for key, value := range metadata {
		switch value.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			sanitized[key] = value
		default:
			sanitized[key] = fmt.Sprintf("%v", value)
		}
	}
	return sanitized
}
