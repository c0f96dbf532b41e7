package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/repository"
)

// EntityService is the audited CRUD base shared by every entity kind. It
// wires a typed repository to the audit trail: each mutation produces exactly
// one best-effort audit entry and audit failures never fail the operation.
type EntityService[T any] struct {
	entity string
	repo   repository.Repository[T]
	audit  AuditTrail
	idOf   func(*T) string
}

func NewEntityService[T any](
	entity string,
	repo repository.Repository[T],
	audit AuditTrail,
	idOf func(*T) string,
) *EntityService[T] {
	return &EntityService[T]{entity: entity, repo: repo, audit: audit, idOf: idOf}
}

func (s *EntityService[T]) Entity() string {
	return s.entity
}

// classify keeps taxonomy errors untouched and wraps anything else so raw
// internals never cross the service boundary.
func (s *EntityService[T]) classify(err error, action string) error {
	if apperr.IsApp(err) {
		return err
	}
	return apperr.Service(fmt.Sprintf("unexpected failure during %s on %s", action, s.entity), err)
}

func (s *EntityService[T]) notFound(id string) error {
	return apperr.NotFound(fmt.Sprintf("record with id %s not found", id)).
		WithDetails(map[string]interface{}{"id": id, "entity": s.entity})
}

func (s *EntityService[T]) ListAll(ctx context.Context) ([]T, error) {
	records, err := s.repo.All()
	if err != nil {
		return nil, s.classify(err, "list")
	}
	return records, nil
}

func (s *EntityService[T]) GetByID(ctx context.Context, id string) (*T, error) {
	record, err := s.repo.ByID(id)
	if err != nil {
		return nil, s.classify(err, "get_by_id")
	}
	if record == nil {
		return nil, s.notFound(id)
	}
	return record, nil
}

func (s *EntityService[T]) Create(ctx context.Context, record *T, performedBy string, metadata map[string]interface{}) (*T, error) {
	created, err := s.repo.Insert(record)
	if err != nil {
		return nil, s.classify(err, "create")
	}

	// The trail is best effort by contract: a failed audit write is logged
	// inside Record and must not undo or fail the business operation.
	_ = s.audit.Record(ctx, AuditEntry{
		Entity:      s.entity,
		Action:      "create",
		EntityID:    s.idOf(created),
		PerformedBy: performedBy,
		Metadata:    metadata,
	})
	return created, nil
}

func (s *EntityService[T]) Update(ctx context.Context, id string, fields map[string]interface{}, performedBy string, metadata map[string]interface{}) (*T, error) {
	updated, err := s.repo.Update(id, fields)
	if err != nil {
		return nil, s.classify(err, "update")
	}
	if updated == nil {
		return nil, s.notFound(id)
	}

	merged := map[string]interface{}{"fields_updated": sortedKeys(fields)}
	for key, value := range metadata {
		merged[key] = value
	}
	// Best effort, see Create.
	_ = s.audit.Record(ctx, AuditEntry{
		Entity:      s.entity,
		Action:      "update",
		EntityID:    id,
		PerformedBy: performedBy,
		Metadata:    merged,
	})
	return updated, nil
}

func (s *EntityService[T]) Delete(ctx context.Context, id string, performedBy string, metadata map[string]interface{}) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return s.classify(err, "delete")
	}
	if !deleted {
		return s.notFound(id)
	}

	// Best effort, see Create.
	_ = s.audit.Record(ctx, AuditEntry{
		Entity:      s.entity,
		Action:      "delete",
		EntityID:    id,
		PerformedBy: performedBy,
		Metadata:    metadata,
	})
	return nil
}

func sortedKeys(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	joined := ""
	for i, key := range keys {
		if i > 0 {
			joined += ","
		}
		joined += key
	}
	return joined
}
