package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/interfaces"
	"github.com/Procesia/docs_service/internal/repository"
)

// UserDirectory is the narrow lookup hydration needs from the users side.
type UserDirectory interface {
	GetByIDs(ids []string) ([]domain.UserProfile, error)
}

type DocumentService interface {
	ListDocuments(ctx context.Context, profile *domain.UserProfile, query dto.DocumentListQuery) ([]dto.DocumentView, error)
	GetDocumentDetail(ctx context.Context, profile *domain.UserProfile, documentID string) (*dto.DocumentDetail, error)
	CreateDocument(ctx context.Context, profile *domain.UserProfile, req dto.CreateDocumentRequest) (*dto.DocumentCreated, error)
	UpdateDocument(ctx context.Context, profile *domain.UserProfile, documentID string, req dto.UpdateDocumentRequest) (*domain.Document, error)
	DeleteDocument(ctx context.Context, profile *domain.UserProfile, documentID string) error
	ListVersions(ctx context.Context, profile *domain.UserProfile, documentID string) ([]domain.DocumentVersion, error)
	CreateVersion(ctx context.Context, profile *domain.UserProfile, documentID string, req dto.CreateVersionRequest) (*domain.DocumentVersion, error)
	RecordRead(ctx context.Context, profile *domain.UserProfile, documentID string, req dto.RecordReadRequest) (*domain.DocumentRead, error)
}

type documentService struct {
	base     *EntityService[domain.Document]
	docs     repository.DocumentRepository
	versions repository.VersionRepository
	reads    repository.ReadRepository
	users    UserDirectory
	policy   *AccessPolicy
	audit    AuditTrail
	producer interfaces.ProducerHandler
}

func NewDocumentService(
	docs repository.DocumentRepository,
	versions repository.VersionRepository,
	reads repository.ReadRepository,
	users UserDirectory,
	policy *AccessPolicy,
	audit AuditTrail,
	producer interfaces.ProducerHandler,
) DocumentService {
	return &documentService{
		base:     NewEntityService("documents", docs, audit, func(d *domain.Document) string { return d.ID }),
		docs:     docs,
		versions: versions,
		reads:    reads,
		users:    users,
		policy:   policy,
		audit:    audit,
		producer: producer,
	}
}

func (s *documentService) ensureDocumentAccess(profile *domain.UserProfile, document *domain.Document) error {
	if profile.Role == domain.RoleRoot {
		return nil
	}
	companyID, err := s.policy.EnsureHasCompany(profile)
	if err != nil {
		return err
	}
	if document.CompanyID != companyID {
		return apperr.Forbidden("you do not have access to this document")
	}
	return nil
}

// ------------------------------------------------------------------
// CRUD
// ------------------------------------------------------------------

func (s *documentService) ListDocuments(ctx context.Context, profile *domain.UserProfile, query dto.DocumentListQuery) ([]dto.DocumentView, error) {
	companyID, err := s.policy.ResolveCompany(profile, query.CompanyID)
	if err != nil {
		return nil, err
	}

	filter := repository.DocumentFilter{
		ProcessID:       query.ProcessID,
		IncludeInactive: query.IncludeInactive,
	}
	if companyID != "" {
		filter.CompanyID = &companyID
	}

	documents, err := s.docs.ListFiltered(filter)
	if err != nil {
		return nil, err
	}
	return s.hydrateDocuments(documents)
}

func (s *documentService) GetDocumentDetail(ctx context.Context, profile *domain.UserProfile, documentID string) (*dto.DocumentDetail, error) {
	document, err := s.base.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentAccess(profile, document); err != nil {
		return nil, err
	}

	versions, err := s.versions.ListForDocument(documentID)
	if err != nil {
		return nil, err
	}
	sortVersionsAscending(versions)
	latest := latestVersion(versions)

	var currentUserRead *domain.DocumentRead
	if profile.ID != "" {
		var versionValue *string
		if latest != nil {
			versionValue = &latest.Version
		}
		currentUserRead, err = s.reads.UserRead(documentID, profile.ID, versionValue)
		if err != nil {
			return nil, err
		}
	}

	return &dto.DocumentDetail{
		Document:        *document,
		Versions:        versions,
		LatestVersion:   latest,
		CurrentUserRead: currentUserRead,
	}, nil
}

func (s *documentService) CreateDocument(ctx context.Context, profile *domain.UserProfile, req dto.CreateDocumentRequest) (*dto.DocumentCreated, error) {
	companyID, err := s.policy.ResolveCompany(profile, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if companyID == "" {
		return nil, apperr.Validation("a company is required for the document")
	}

	document := &domain.Document{
		CompanyID:   companyID,
		ProcessID:   req.ProcessID,
		OwnerID:     req.OwnerID,
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Tags:        domain.StringList(req.Tags),
		Active:      true,
	}
	if req.Active != nil {
		document.Active = *req.Active
	}

	created, err := s.base.Create(ctx, document, profile.ID, map[string]interface{}{
		"company_id": companyID,
	})
	if err != nil {
		return nil, err
	}

	result := &dto.DocumentCreated{Document: *created}
	if req.InitialVersion != nil {
		// Second independent write: a failure here leaves the document
		// without a version rather than rolling it back.
		version, err := s.createVersionInternal(ctx, profile, created, *req.InitialVersion)
		if err != nil {
			return nil, err
		}
		result.LatestVersion = version
		result.Versions = []domain.DocumentVersion{*version}
	}
	return result, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, profile *domain.UserProfile, documentID string, req dto.UpdateDocumentRequest) (*domain.Document, error) {
	document, err := s.base.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentAccess(profile, document); err != nil {
		return nil, err
	}
	if req.CompanyID != nil && *req.CompanyID != "" && profile.Role != domain.RoleRoot {
		return nil, apperr.Forbidden("only a root user may change the company")
	}
	return s.base.Update(ctx, documentID, req.Fields(), profile.ID, nil)
}

func (s *documentService) DeleteDocument(ctx context.Context, profile *domain.UserProfile, documentID string) error {
	document, err := s.base.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.ensureDocumentAccess(profile, document); err != nil {
		return err
	}
	return s.base.Delete(ctx, documentID, profile.ID, map[string]interface{}{
		"code": document.Code,
	})
}

// ------------------------------------------------------------------
// Versions
// ------------------------------------------------------------------

func (s *documentService) ListVersions(ctx context.Context, profile *domain.UserProfile, documentID string) ([]domain.DocumentVersion, error) {
	document, err := s.base.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentAccess(profile, document); err != nil {
		return nil, err
	}
	versions, err := s.versions.ListForDocument(documentID)
	if err != nil {
		return nil, err
	}
	sortVersionsAscending(versions)
	return versions, nil
}

func (s *documentService) CreateVersion(ctx context.Context, profile *domain.UserProfile, documentID string, req dto.CreateVersionRequest) (*domain.DocumentVersion, error) {
	document, err := s.base.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentAccess(profile, document); err != nil {
		return nil, err
	}
	return s.createVersionInternal(ctx, profile, document, req)
}

func (s *documentService) createVersionInternal(ctx context.Context, profile *domain.UserProfile, document *domain.Document, req dto.CreateVersionRequest) (*domain.DocumentVersion, error) {
	versionValue := ""
	if req.Version != nil {
		versionValue = *req.Version
	}
	if versionValue == "" {
		existing, err := s.versions.ListForDocument(document.ID)
		if err != nil {
			return nil, err
		}
		versionValue = nextVersionValue(existing)
	}

	version := &domain.DocumentVersion{
		DocumentID: document.ID,
		Version:    versionValue,
		Status:     domain.VersionStatusBorrador,
		FileURL:    req.FileURL,
	}
	if req.Status != nil && *req.Status != "" {
		version.Status = *req.Status
	}

	created, err := s.versions.Insert(version)
	if err != nil {
		return nil, err
	}

	// Best effort by contract, see EntityService.Create.
	_ = s.audit.Record(ctx, AuditEntry{
		Entity:      "documents",
		Action:      "create_version",
		EntityID:    document.ID,
		PerformedBy: profile.ID,
		Metadata: map[string]interface{}{
			"version": created.Version,
			"status":  created.Status,
		},
	})
	s.publishEvent("document.version_created", document.ID, created.Version)
	return created, nil
}

// ------------------------------------------------------------------
// Read receipts
// ------------------------------------------------------------------

func (s *documentService) RecordRead(ctx context.Context, profile *domain.UserProfile, documentID string, req dto.RecordReadRequest) (*domain.DocumentRead, error) {
	document, err := s.base.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentAccess(profile, document); err != nil {
		return nil, err
	}

	versionValue := ""
	if req.Version != nil {
		versionValue = *req.Version
	}
	if versionValue == "" {
		existing, err := s.versions.ListForDocument(documentID)
		if err != nil {
			return nil, err
		}
		latest := latestVersion(existing)
		if latest == nil {
			return nil, apperr.Validation("the document has no published versions")
		}
		versionValue = latest.Version
	}

	readAt := time.Now().UTC()
	if req.ReadAt != nil {
		readAt = *req.ReadAt
	}

	read, err := s.reads.UpsertRead(&domain.DocumentRead{
		DocumentID: documentID,
		UserID:     profile.ID,
		Version:    versionValue,
		ReadAt:     readAt,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return nil, err
	}

	// Best effort by contract, see EntityService.Create.
	_ = s.audit.Record(ctx, AuditEntry{
		Entity:      "documents",
		Action:      "document_read",
		EntityID:    documentID,
		PerformedBy: profile.ID,
		Metadata:    map[string]interface{}{"version": versionValue},
	})
	s.publishEvent("document.read_recorded", documentID, versionValue)
	return read, nil
}

func (s *documentService) publishEvent(key, documentID, version string) {
	if s.producer == nil {
		return
	}
	payload := fmt.Sprintf(`{"document_id":%q,"version":%q}`, documentID, version)
	_ = s.producer.PublishMessage([]byte(key), []byte(payload))
}

// ------------------------------------------------------------------
// Hydration
// ------------------------------------------------------------------

// hydrateDocuments enriches a document list with versions, read receipts and
// display names using exactly three queries regardless of list size: one for
// versions, one for reads, one user lookup.
func (s *documentService) hydrateDocuments(documents []domain.Document) ([]dto.DocumentView, error) {
	if len(documents) == 0 {
		return []dto.DocumentView{}, nil
	}

	documentIDs := make([]string, 0, len(documents))
	for _, document := range documents {
		documentIDs = append(documentIDs, document.ID)
	}

	versions, err := s.versions.ListForDocuments(documentIDs)
	if err != nil {
		return nil, err
	}
	reads, err := s.reads.ListForDocuments(documentIDs)
	if err != nil {
		return nil, err
	}

	versionsByDocument := make(map[string][]domain.DocumentVersion)
	for _, version := range versions {
		versionsByDocument[version.DocumentID] = append(versionsByDocument[version.DocumentID], version)
	}
	for _, grouped := range versionsByDocument {
		sortVersionsAscending(grouped)
	}

	readsByDocument := make(map[string][]domain.DocumentRead)
	for _, read := range reads {
		readsByDocument[read.DocumentID] = append(readsByDocument[read.DocumentID], read)
	}
	for _, grouped := range readsByDocument {
		sortReadsDescending(grouped)
	}

	userIDs := collectUserIDs(documents, versions, reads)
	userLookup := map[string]domain.UserProfile{}
	if len(userIDs) > 0 {
		users, err := s.users.GetByIDs(userIDs)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			userLookup[user.ID] = user
		}
	}

	displayName := func(id *string) *string {
		if id == nil {
			return nil
		}
		user, ok := userLookup[*id]
		if !ok {
			return nil
		}
		name := user.DisplayName()
		return &name
	}

	hydrated := make([]dto.DocumentView, 0, len(documents))
	for _, document := range documents {
		view := dto.DocumentView{
			Document: document,
			Owner:    displayName(document.OwnerID),
			Versions: []dto.VersionView{},
			Reads:    []dto.ReadView{},
		}
		if view.Tags == nil {
			view.Tags = domain.StringList{}
		}

		for _, version := range versionsByDocument[document.ID] {
			view.Versions = append(view.Versions, dto.VersionView{
				DocumentVersion: version,
				ApprovedByName:  displayName(version.ApprovedBy),
			})
		}
		if len(view.Versions) > 0 {
			current := view.Versions[len(view.Versions)-1]
			view.CurrentVersion = &current
		}

		for _, read := range readsByDocument[document.ID] {
			readView := dto.ReadView{
				DocumentRead: read,
				User:         displayName(&read.UserID),
			}
			if user, ok := userLookup[read.UserID]; ok {
				readView.Position = user.Position
			}
			view.Reads = append(view.Reads, readView)
		}

		hydrated = append(hydrated, view)
	}
	return hydrated, nil
}

func sortReadsDescending(reads []domain.DocumentRead) {
	sort.SliceStable(reads, func(i, j int) bool {
		return reads[i].ReadAt.After(reads[j].ReadAt)
	})
}

func collectUserIDs(documents []domain.Document, versions []domain.DocumentVersion, reads []domain.DocumentRead) []string {
	seen := map[string]struct{}{}
	var ids []string
	add := func(id *string) {
		if id == nil || *id == "" {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}

	for i := range documents {
		add(documents[i].OwnerID)
	}
	for i := range versions {
		add(versions[i].ApprovedBy)
	}
	for i := range reads {
		add(&reads[i].UserID)
	}
	return ids
}
