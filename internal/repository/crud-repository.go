package repository

import (
	"errors"
	"fmt"

	"github.com/Procesia/docs_service/internal/apperr"
	"gorm.io/gorm"
)

// Repository is the generic CRUD contract every entity repository satisfies.
// ByID returns (nil, nil) when the record does not exist; deciding whether
// that is a NotFoundError belongs to the service layer.
type Repository[T any] interface {
	All() ([]T, error)
	ByID(id string) (*T, error)
	Insert(record *T) (*T, error)
	Update(id string, fields map[string]interface{}) (*T, error)
	Delete(id string) (bool, error)
}

// CrudRepository is the shared GORM implementation. Per-entity repositories
// embed it and add their typed finders. Every store failure is wrapped as a
// DataAccessError that preserves the original error text.
type CrudRepository[T any] struct {
	db     *gorm.DB
	entity string
}

func NewCrudRepository[T any](db *gorm.DB, entity string) *CrudRepository[T] {
	return &CrudRepository[T]{db: db, entity: entity}
}

// Entity is the table-ish name used for audit records.
func (r *CrudRepository[T]) Entity() string {
	return r.entity
}

func (r *CrudRepository[T]) wrap(action string, err error) error {
	return apperr.DataAccess(
		fmt.Sprintf("store failure during %s on %s", action, r.entity), err,
	).WithDetails(map[string]interface{}{"entity": r.entity, "error": err.Error()})
}

func (r *CrudRepository[T]) All() ([]T, error) {
	var records []T
	if err := r.db.Find(&records).Error; err != nil {
		return nil, r.wrap("list", err)
	}
	return records, nil
}

func (r *CrudRepository[T]) ByID(id string) (*T, error) {
	record := new(T)
	err := r.db.First(record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("get_by_id", err)
	}
	return record, nil
}

func (r *CrudRepository[T]) Insert(record *T) (*T, error) {
	if record == nil {
		return nil, r.wrap("insert", errors.New("nil record"))
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, r.wrap("insert", err)
	}
	return record, nil
}

func (r *CrudRepository[T]) Update(id string, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return r.ByID(id)
	}
	res := r.db.Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, r.wrap("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.ByID(id)
}

func (r *CrudRepository[T]) Delete(id string) (bool, error) {
	res := r.db.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, r.wrap("delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}
