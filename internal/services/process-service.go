package services

import (
	"context"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/repository"
)

type ProcessService interface {
	ListProcesses(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.Process, error)
	GetProcessDetail(ctx context.Context, profile *domain.UserProfile, processID string) (*dto.ProcessDetail, error)
	CreateProcess(ctx context.Context, profile *domain.UserProfile, req dto.CreateProcessRequest) (*domain.Process, error)
	UpdateProcess(ctx context.Context, profile *domain.UserProfile, processID string, req dto.UpdateProcessRequest) (*domain.Process, error)
	DeleteProcess(ctx context.Context, profile *domain.UserProfile, processID string) error

	ListTasks(ctx context.Context, profile *domain.UserProfile, processID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, profile *domain.UserProfile, processID string, req dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, profile *domain.UserProfile, processID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, profile *domain.UserProfile, processID, taskID string) error

	ListLinks(ctx context.Context, profile *domain.UserProfile, processID string) ([]domain.ArtifactLink, error)
	CreateLink(ctx context.Context, profile *domain.UserProfile, processID string, req dto.EntityLinkRequest) (*domain.ArtifactLink, error)
	DeleteLink(ctx context.Context, profile *domain.UserProfile, processID, linkID string) error

	ListTaskLinks(ctx context.Context, profile *domain.UserProfile, processID, taskID string) ([]domain.ArtifactLink, error)
	CreateTaskLink(ctx context.Context, profile *domain.UserProfile, processID, taskID string, req dto.EntityLinkRequest) (*domain.ArtifactLink, error)
	DeleteTaskLink(ctx context.Context, profile *domain.UserProfile, processID, taskID, linkID string) error
}

type processService struct {
	base     *EntityService[domain.Process]
	tasks    *EntityService[domain.Task]
	taskRepo repository.TaskRepository
	procRepo repository.ProcessRepository
	links    ArtifactLinkService
	policy   *AccessPolicy
}

func NewProcessService(
	procRepo repository.ProcessRepository,
	taskRepo repository.TaskRepository,
	links ArtifactLinkService,
	policy *AccessPolicy,
	audit AuditTrail,
) ProcessService {
	return &processService{
		base:     NewEntityService("processes", procRepo, audit, func(p *domain.Process) string { return p.ID }),
		tasks:    NewEntityService("tasks", taskRepo, audit, func(t *domain.Task) string { return t.ID }),
		taskRepo: taskRepo,
		procRepo: procRepo,
		links:    links,
		policy:   policy,
	}
}

func (s *processService) ensureProcessAccess(profile *domain.UserProfile, process *domain.Process) error {
	if profile.Role == domain.RoleRoot {
		return nil
	}
	companyID, err := s.policy.EnsureHasCompany(profile)
	if err != nil {
		return err
	}
	if process.CompanyID != companyID {
		return apperr.Forbidden("you do not have access to this process")
	}
	return nil
}

func (s *processService) loadProcess(ctx context.Context, profile *domain.UserProfile, processID string) (*domain.Process, error) {
	process, err := s.base.GetByID(ctx, processID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProcessAccess(profile, process); err != nil {
		return nil, err
	}
	return process, nil
}

func (s *processService) ensureTask(processID, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.ByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.ProcessID != processID {
		return nil, apperr.Validation("the task does not belong to this process")
	}
	return task, nil
}

// ------------------------------------------------------------------
// Processes
// ------------------------------------------------------------------

func (s *processService) ListProcesses(ctx context.Context, profile *domain.UserProfile, companyID *string) ([]domain.Process, error) {
	resolved, err := s.policy.ResolveCompany(profile, companyID)
	if err != nil {
		return nil, err
	}
	if resolved != "" {
		return s.procRepo.ListByCompany(resolved)
	}
	return s.base.ListAll(ctx)
}

func (s *processService) GetProcessDetail(ctx context.Context, profile *domain.UserProfile, processID string) (*dto.ProcessDetail, error) {
	process, err := s.loadProcess(ctx, profile, processID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListForProcess(processID)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListForEntity(ctx, profile, processID, domain.KindProcess)
	if err != nil {
		return nil, err
	}
	return &dto.ProcessDetail{Process: *process, Tasks: tasks, Links: links}, nil
}

func (s *processService) CreateProcess(ctx context.Context, profile *domain.UserProfile, req dto.CreateProcessRequest) (*domain.Process, error) {
	companyID, err := s.policy.ResolveCompany(profile, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if companyID == "" {
		return nil, apperr.Validation("a company is required for the process")
	}
	process := &domain.Process{
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	}
	return s.base.Create(ctx, process, profile.ID, map[string]interface{}{"company_id": companyID})
}

func (s *processService) UpdateProcess(ctx context.Context, profile *domain.UserProfile, processID string, req dto.UpdateProcessRequest) (*domain.Process, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	if req.CompanyID != nil && *req.CompanyID != "" && profile.Role != domain.RoleRoot {
		return nil, apperr.Forbidden("only a root user may reassign the company")
	}
	return s.base.Update(ctx, processID, req.Fields(), profile.ID, nil)
}

func (s *processService) DeleteProcess(ctx context.Context, profile *domain.UserProfile, processID string) error {
	process, err := s.loadProcess(ctx, profile, processID)
	if err != nil {
		return err
	}
	return s.base.Delete(ctx, processID, profile.ID, map[string]interface{}{"code": process.Code})
}

// ------------------------------------------------------------------
// Tasks
// ------------------------------------------------------------------

func (s *processService) ListTasks(ctx context.Context, profile *domain.UserProfile, processID string) ([]domain.Task, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListForProcess(processID)
}

func (s *processService) CreateTask(ctx context.Context, profile *domain.UserProfile, processID string, req dto.CreateTaskRequest) (*domain.Task, error) {
	process, err := s.loadProcess(ctx, profile, processID)
	if err != nil {
		return nil, err
	}
	task := &domain.Task{
		ProcessID:   processID,
		CompanyID:   process.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	}
	if req.Status != nil && *req.Status != "" {
		task.Status = *req.Status
	}
	return s.tasks.Create(ctx, task, profile.ID, map[string]interface{}{"process_id": processID})
}

func (s *processService) UpdateTask(ctx context.Context, profile *domain.UserProfile, processID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	if _, err := s.ensureTask(processID, taskID); err != nil {
		return nil, err
	}
	return s.tasks.Update(ctx, taskID, req.Fields(), profile.ID, nil)
}

func (s *processService) DeleteTask(ctx context.Context, profile *domain.UserProfile, processID, taskID string) error {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return err
	}
	if _, err := s.ensureTask(processID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID, profile.ID, map[string]interface{}{"process_id": processID})
}

// ------------------------------------------------------------------
// Links
// ------------------------------------------------------------------

func (s *processService) ListLinks(ctx context.Context, profile *domain.UserProfile, processID string) ([]domain.ArtifactLink, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	return s.links.ListForEntity(ctx, profile, processID, domain.KindProcess)
}

func (s *processService) CreateLink(ctx context.Context, profile *domain.UserProfile, processID string, req dto.EntityLinkRequest) (*domain.ArtifactLink, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	return s.links.CreateLink(ctx, profile, entityLinkPayload(processID, domain.KindProcess, req))
}

func (s *processService) DeleteLink(ctx context.Context, profile *domain.UserProfile, processID, linkID string) error {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return err
	}
	link, err := s.links.GetLink(ctx, linkID)
	if err != nil {
		return err
	}
	if !link.References(processID) {
		return apperr.Validation("the link does not belong to this process")
	}
	return s.links.DeleteLink(ctx, profile, linkID)
}

func (s *processService) ListTaskLinks(ctx context.Context, profile *domain.UserProfile, processID, taskID string) ([]domain.ArtifactLink, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	task, err := s.ensureTask(processID, taskID)
	if err != nil {
		return nil, err
	}
	return s.links.ListForEntity(ctx, profile, task.ID, domain.KindTask)
}

func (s *processService) CreateTaskLink(ctx context.Context, profile *domain.UserProfile, processID, taskID string, req dto.EntityLinkRequest) (*domain.ArtifactLink, error) {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return nil, err
	}
	task, err := s.ensureTask(processID, taskID)
	if err != nil {
		return nil, err
	}
	return s.links.CreateLink(ctx, profile, entityLinkPayload(task.ID, domain.KindTask, req))
}

func (s *processService) DeleteTaskLink(ctx context.Context, profile *domain.UserProfile, processID, taskID, linkID string) error {
	if _, err := s.loadProcess(ctx, profile, processID); err != nil {
		return err
	}
	task, err := s.ensureTask(processID, taskID)
	if err != nil {
		return err
	}
	link, err := s.links.GetLink(ctx, linkID)
	if err != nil {
		return err
	}
	if !link.References(task.ID) {
		return apperr.Validation("the link does not belong to this task")
	}
	return s.links.DeleteLink(ctx, profile, linkID)
}

// entityLinkPayload builds a full link request for a parent-scoped create;
// documents are the default target kind.
func entityLinkPayload(sourceID string, sourceKind domain.ArtifactKind, req dto.EntityLinkRequest) dto.CreateLinkRequest {
	targetType := req.TargetType
	if targetType == "" {
		targetType = string(domain.KindDocument)
	}
	return dto.CreateLinkRequest{
		FromID:       sourceID,
		FromType:     string(sourceKind),
		ToID:         req.TargetID,
		ToType:       targetType,
		RelationType: req.RelationType,
	}
}
