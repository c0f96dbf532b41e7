package services

import (
	"context"
	"testing"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type processFixture struct {
	processes *fakeProcessRepo
	tasks     *fakeTaskRepo
	documents *fakeDocumentRepo
	links     *fakeLinkRepo
	audit     *fakeAudit
	linkSvc   ArtifactLinkService
	svc       ProcessService
}

func newProcessFixture(t *testing.T) *processFixture {
	t.Helper()
	f := &processFixture{
		processes: newFakeProcessRepo(),
		tasks:     newFakeTaskRepo(),
		documents: newFakeDocumentRepo(),
		links:     newFakeLinkRepo(),
		audit:     &fakeAudit{},
	}
	policy := NewAccessPolicy()
	f.linkSvc = NewLinkService(
		f.links,
		f.audit,
		policy,
		f.documents,
		f.processes,
		f.tasks,
		f.documents,
	)
	f.svc = NewProcessService(f.processes, f.tasks, f.linkSvc, policy, f.audit)
	return f
}

func TestCreateTaskInheritsProcessCompany(t *testing.T) {
	f := newProcessFixture(t)
	companyID := uuid.NewString()
	profile := memberProfile(companyID)
	ctx := context.Background()

	process, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Onboarding"})
	require.NoError(t, err)
	assert.Equal(t, companyID, process.CompanyID)

	task, err := f.svc.CreateTask(ctx, profile, process.ID, dto.CreateTaskRequest{Title: "Sign contract"})
	require.NoError(t, err)
	assert.Equal(t, companyID, task.CompanyID)
	assert.Equal(t, process.ID, task.ProcessID)
}

func TestTaskOperationsGuardProcessOwnership(t *testing.T) {
	f := newProcessFixture(t)
	companyID := uuid.NewString()
	profile := memberProfile(companyID)
	ctx := context.Background()

	first, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Hiring"})
	require.NoError(t, err)
	second, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Billing"})
	require.NoError(t, err)

	task, err := f.svc.CreateTask(ctx, profile, first.ID, dto.CreateTaskRequest{Title: "Post opening"})
	require.NoError(t, err)

	// addressing a task through the wrong parent is rejected
	_, err = f.svc.UpdateTask(ctx, profile, second.ID, task.ID, dto.UpdateTaskRequest{})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	err = f.svc.DeleteTask(ctx, profile, second.ID, task.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteLinkGuardsOwnership(t *testing.T) {
	f := newProcessFixture(t)
	companyID := uuid.NewString()
	profile := memberProfile(companyID)
	ctx := context.Background()

	first, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Hiring"})
	require.NoError(t, err)
	second, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Billing"})
	require.NoError(t, err)

	document, err := f.documents.Insert(&domain.Document{CompanyID: companyID, Title: "Handbook", Active: true})
	require.NoError(t, err)

	link, err := f.svc.CreateLink(ctx, profile, first.ID, dto.EntityLinkRequest{TargetID: document.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, link.FromID)
	assert.Equal(t, domain.KindProcess, link.FromType)
	assert.Equal(t, domain.KindDocument, link.ToType)

	err = f.svc.DeleteLink(ctx, profile, second.ID, link.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, f.svc.DeleteLink(ctx, profile, first.ID, link.ID))
}

func TestTaskLinkGuardsOwnership(t *testing.T) {
	f := newProcessFixture(t)
	companyID := uuid.NewString()
	profile := memberProfile(companyID)
	ctx := context.Background()

	process, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Hiring"})
	require.NoError(t, err)
	task, err := f.svc.CreateTask(ctx, profile, process.ID, dto.CreateTaskRequest{Title: "Screen resumes"})
	require.NoError(t, err)
	other, err := f.svc.CreateTask(ctx, profile, process.ID, dto.CreateTaskRequest{Title: "Interview"})
	require.NoError(t, err)

	document, err := f.documents.Insert(&domain.Document{CompanyID: companyID, Title: "Rubric", Active: true})
	require.NoError(t, err)

	link, err := f.svc.CreateTaskLink(ctx, profile, process.ID, task.ID, dto.EntityLinkRequest{TargetID: document.ID})
	require.NoError(t, err)
	assert.Equal(t, task.ID, link.FromID)
	assert.Equal(t, domain.KindTask, link.FromType)

	err = f.svc.DeleteTaskLink(ctx, profile, process.ID, other.ID, link.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	listed, err := f.svc.ListTaskLinks(ctx, profile, process.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, link.ID, listed[0].ID)
}

func TestProcessDetailBundlesTasksAndLinks(t *testing.T) {
	f := newProcessFixture(t)
	companyID := uuid.NewString()
	profile := memberProfile(companyID)
	ctx := context.Background()

	process, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Hiring"})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, profile, process.ID, dto.CreateTaskRequest{Title: "Screen resumes"})
	require.NoError(t, err)

	document, err := f.documents.Insert(&domain.Document{CompanyID: companyID, Title: "Rubric", Active: true})
	require.NoError(t, err)
	_, err = f.svc.CreateLink(ctx, profile, process.ID, dto.EntityLinkRequest{TargetID: document.ID})
	require.NoError(t, err)

	detail, err := f.svc.GetProcessDetail(ctx, profile, process.ID)
	require.NoError(t, err)
	assert.Equal(t, process.ID, detail.Process.ID)
	assert.Len(t, detail.Tasks, 1)
	assert.Len(t, detail.Links, 1)
}

func TestProcessAccessScopedToCompany(t *testing.T) {
	f := newProcessFixture(t)
	companyID := uuid.NewString()
	profile := memberProfile(companyID)
	ctx := context.Background()

	process, err := f.svc.CreateProcess(ctx, profile, dto.CreateProcessRequest{Name: "Hiring"})
	require.NoError(t, err)

	outsider := memberProfile(uuid.NewString())
	_, err = f.svc.GetProcessDetail(ctx, outsider, process.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	processes, err := f.svc.ListProcesses(ctx, outsider, nil)
	require.NoError(t, err)
	assert.Empty(t, processes)
}
