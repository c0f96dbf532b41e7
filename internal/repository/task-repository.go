package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Repository[domain.Task]
	ListForProcess(processID string) ([]domain.Task, error)
	ResolveArtifact(id string) (*domain.ArtifactRef, error)
}

type taskRepository struct {
	*CrudRepository[domain.Task]
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{
		CrudRepository: NewCrudRepository[domain.Task](db, "tasks"),
		db:             db,
	}
}

func (r *taskRepository) ListForProcess(processID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.Where("process_id = ?", processID).Find(&tasks).Error
	if err != nil {
		return nil, r.wrap("list_for_process", err)
	}
	return tasks, nil
}

func (r *taskRepository) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	task, err := r.ByID(id)
	if err != nil || task == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: task.ID, CompanyID: task.CompanyID}, nil
}
