package services

import (
	"context"
	"sync"

	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/repository"
	"github.com/google/uuid"
)

// memRepo is the in-memory Repository used by service tests. Field patches
// are applied through the per-entity apply callback.
type memRepo[T any] struct {
	mu    sync.Mutex
	order []string
	items map[string]T
	idOf  func(*T) string
	setID func(*T, string)
	apply func(*T, map[string]interface{})
	fail  error
}

func newMemRepo[T any](
	idOf func(*T) string,
	setID func(*T, string),
	apply func(*T, map[string]interface{}),
) *memRepo[T] {
	return &memRepo[T]{
		items: map[string]T{},
		idOf:  idOf,
		setID: setID,
		apply: apply,
	}
}

func (r *memRepo[T]) All() ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	records := make([]T, 0, len(r.order))
	for _, id := range r.order {
		records = append(records, r.items[id])
	}
	return records, nil
}

func (r *memRepo[T]) ByID(id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	record, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *memRepo[T]) Insert(record *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	if r.idOf(record) == "" {
		r.setID(record, uuid.NewString())
	}
	id := r.idOf(record)
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = *record
	return record, nil
}

func (r *memRepo[T]) Update(id string, fields map[string]interface{}) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	record, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	if r.apply != nil {
		r.apply(&record, fields)
	}
	r.items[id] = record
	return &record, nil
}

func (r *memRepo[T]) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return false, r.fail
	}
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// ------------------------------------------------------------------
// Entity fakes
// ------------------------------------------------------------------

type fakeDocumentRepo struct {
	*memRepo[domain.Document]
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{memRepo: newMemRepo(
		func(d *domain.Document) string { return d.ID },
		func(d *domain.Document, id string) { d.ID = id },
		func(d *domain.Document, fields map[string]interface{}) {
			if v, ok := fields["title"].(string); ok {
				d.Title = v
			}
			if v, ok := fields["code"].(string); ok {
				d.Code = v
			}
			if v, ok := fields["active"].(bool); ok {
				d.Active = v
			}
			if v, ok := fields["tags"].(domain.StringList); ok {
				d.Tags = v
			}
		},
	)}
}

func (r *fakeDocumentRepo) ListFiltered(filter repository.DocumentFilter) ([]domain.Document, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var filtered []domain.Document
	for _, document := range all {
		if filter.CompanyID != nil && document.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.ProcessID != nil {
			if document.ProcessID == nil || *document.ProcessID != *filter.ProcessID {
				continue
			}
		}
		if !filter.IncludeInactive && !document.Active {
			continue
		}
		filtered = append(filtered, document)
	}
	return filtered, nil
}

func (r *fakeDocumentRepo) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	document, err := r.ByID(id)
	if err != nil || document == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: document.ID, CompanyID: document.CompanyID}, nil
}

type fakeVersionRepo struct {
	*memRepo[domain.DocumentVersion]
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{memRepo: newMemRepo(
		func(v *domain.DocumentVersion) string { return v.ID },
		func(v *domain.DocumentVersion, id string) { v.ID = id },
		nil,
	)}
}

func (r *fakeVersionRepo) ListForDocument(documentID string) ([]domain.DocumentVersion, error) {
	return r.ListForDocuments([]string{documentID})
}

func (r *fakeVersionRepo) ListForDocuments(documentIDs []string) ([]domain.DocumentVersion, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	wanted := map[string]struct{}{}
	for _, id := range documentIDs {
		wanted[id] = struct{}{}
	}
	var matched []domain.DocumentVersion
	for _, version := range all {
		if _, ok := wanted[version.DocumentID]; ok {
			matched = append(matched, version)
		}
	}
	return matched, nil
}

type fakeReadRepo struct {
	*memRepo[domain.DocumentRead]
}

func newFakeReadRepo() *fakeReadRepo {
	return &fakeReadRepo{memRepo: newMemRepo(
		func(r *domain.DocumentRead) string { return r.ID },
		func(r *domain.DocumentRead, id string) { r.ID = id },
		nil,
	)}
}

func (r *fakeReadRepo) ListForDocuments(documentIDs []string) ([]domain.DocumentRead, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	wanted := map[string]struct{}{}
	for _, id := range documentIDs {
		wanted[id] = struct{}{}
	}
	var matched []domain.DocumentRead
	for _, read := range all {
		if _, ok := wanted[read.DocumentID]; ok {
			matched = append(matched, read)
		}
	}
	return matched, nil
}

// UpsertRead mirrors the store's conflict target on
// (document_id, user_id, version).
func (r *fakeReadRepo) UpsertRead(read *domain.DocumentRead) (*domain.DocumentRead, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	for _, existing := range all {
		if existing.DocumentID == read.DocumentID &&
			existing.UserID == read.UserID &&
			existing.Version == read.Version {
			existing.ReadAt = read.ReadAt
			existing.DueDate = read.DueDate
			return r.Insert(&existing)
		}
	}
	return r.Insert(read)
}

func (r *fakeReadRepo) UserRead(documentID, userID string, version *string) (*domain.DocumentRead, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var latest *domain.DocumentRead
	for i := range all {
		read := all[i]
		if read.DocumentID != documentID || read.UserID != userID {
			continue
		}
		if version != nil && read.Version != *version {
			continue
		}
		if latest == nil || read.ReadAt.After(latest.ReadAt) {
			latest = &read
		}
	}
	return latest, nil
}

type fakeLinkRepo struct {
	*memRepo[domain.ArtifactLink]
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{memRepo: newMemRepo(
		func(l *domain.ArtifactLink) string { return l.ID },
		func(l *domain.ArtifactLink, id string) { l.ID = id },
		nil,
	)}
}

func (r *fakeLinkRepo) ListForEntity(entityID string, kind domain.ArtifactKind) ([]domain.ArtifactLink, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var matched []domain.ArtifactLink
	for _, link := range all {
		fromSide := link.FromID == entityID && link.FromType == kind
		toSide := link.ToID == entityID && link.ToType == kind
		if !fromSide && !toSide {
			continue
		}
		if _, ok := seen[link.ID]; ok {
			continue
		}
		seen[link.ID] = struct{}{}
		matched = append(matched, link)
	}
	return matched, nil
}

func (r *fakeLinkRepo) GetByPair(fromID string, fromType domain.ArtifactKind, toID string, toType domain.ArtifactKind) (*domain.ArtifactLink, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range all {
		link := all[i]
		if link.FromID == fromID && link.FromType == fromType &&
			link.ToID == toID && link.ToType == toType {
			return &link, nil
		}
	}
	return nil, nil
}

type fakeProcessRepo struct {
	*memRepo[domain.Process]
}

func newFakeProcessRepo() *fakeProcessRepo {
	return &fakeProcessRepo{memRepo: newMemRepo(
		func(p *domain.Process) string { return p.ID },
		func(p *domain.Process, id string) { p.ID = id },
		func(p *domain.Process, fields map[string]interface{}) {
			if v, ok := fields["name"].(string); ok {
				p.Name = v
			}
			if v, ok := fields["code"].(string); ok {
				p.Code = v
			}
		},
	)}
}

func (r *fakeProcessRepo) ListByCompany(companyID string) ([]domain.Process, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var matched []domain.Process
	for _, process := range all {
		if process.CompanyID == companyID {
			matched = append(matched, process)
		}
	}
	return matched, nil
}

func (r *fakeProcessRepo) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	process, err := r.ByID(id)
	if err != nil || process == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: process.ID, CompanyID: process.CompanyID}, nil
}

type fakeTaskRepo struct {
	*memRepo[domain.Task]
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{memRepo: newMemRepo(
		func(t *domain.Task) string { return t.ID },
		func(t *domain.Task, id string) { t.ID = id },
		func(t *domain.Task, fields map[string]interface{}) {
			if v, ok := fields["title"].(string); ok {
				t.Title = v
			}
			if v, ok := fields["status"].(string); ok {
				t.Status = v
			}
		},
	)}
}

func (r *fakeTaskRepo) ListForProcess(processID string) ([]domain.Task, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var matched []domain.Task
	for _, task := range all {
		if task.ProcessID == processID {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

func (r *fakeTaskRepo) ResolveArtifact(id string) (*domain.ArtifactRef, error) {
	task, err := r.ByID(id)
	if err != nil || task == nil {
		return nil, err
	}
	return &domain.ArtifactRef{ID: task.ID, CompanyID: task.CompanyID}, nil
}

// ------------------------------------------------------------------
// Collaborator fakes
// ------------------------------------------------------------------

type fakeUserDirectory struct {
	users map[string]domain.UserProfile
}

func newFakeUserDirectory(users ...domain.UserProfile) *fakeUserDirectory {
	directory := &fakeUserDirectory{users: map[string]domain.UserProfile{}}
	for _, user := range users {
		directory.users[user.ID] = user
	}
	return directory
}

func (d *fakeUserDirectory) GetByIDs(ids []string) ([]domain.UserProfile, error) {
	var matched []domain.UserProfile
	for _, id := range ids {
		if user, ok := d.users[id]; ok {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
	fail    error
}

func (a *fakeAudit) Record(ctx context.Context, entry AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return a.fail
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *fakeAudit) byAction(action string) []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	var matched []AuditEntry
	for _, entry := range a.entries {
		if entry.Action == action {
			matched = append(matched, entry)
		}
	}
	return matched
}

type fakeProducer struct {
	mu   sync.Mutex
	keys []string
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, string(key))
	return nil
}

// ------------------------------------------------------------------
// Profiles
// ------------------------------------------------------------------

func rootProfile() *domain.UserProfile {
	return &domain.UserProfile{ID: uuid.NewString(), Email: "root@acme.test", Role: domain.RoleRoot, Active: true}
}

func memberProfile(companyID string) *domain.UserProfile {
	return &domain.UserProfile{
		ID:        uuid.NewString(),
		Email:     "member@acme.test",
		Role:      domain.RoleUser,
		CompanyID: &companyID,
		Active:    true,
	}
}
