package services

import (
	"context"
	"testing"
	"time"

	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	docs     *fakeDocumentRepo
	versions *fakeVersionRepo
	reads    *fakeReadRepo
	users    *fakeUserDirectory
	audit    *fakeAudit
	producer *fakeProducer
	svc      DocumentService
}

func newDocumentFixture(t *testing.T, users ...domain.UserProfile) *documentFixture {
	t.Helper()
	f := &documentFixture{
		docs:     newFakeDocumentRepo(),
		versions: newFakeVersionRepo(),
		reads:    newFakeReadRepo(),
		users:    newFakeUserDirectory(users...),
		audit:    &fakeAudit{},
		producer: &fakeProducer{},
	}
	f.svc = NewDocumentService(
		f.docs,
		f.versions,
		f.reads,
		f.users,
		NewAccessPolicy(),
		f.audit,
		f.producer,
	)
	return f
}

func (f *documentFixture) seedDocument(t *testing.T, companyID string, mutate func(*domain.Document)) *domain.Document {
	t.Helper()
	document := &domain.Document{
		CompanyID: companyID,
		Code:      "POL-001",
		Title:     "Quality policy",
		Active:    true,
	}
	if mutate != nil {
		mutate(document)
	}
	created, err := f.docs.Insert(document)
	require.NoError(t, err)
	return created
}

func (f *documentFixture) seedVersion(t *testing.T, documentID, value string, mutate func(*domain.DocumentVersion)) *domain.DocumentVersion {
	t.Helper()
	version := &domain.DocumentVersion{
		DocumentID: documentID,
		Version:    value,
		Status:     domain.VersionStatusBorrador,
	}
	if mutate != nil {
		mutate(version)
	}
	created, err := f.versions.Insert(version)
	require.NoError(t, err)
	return created
}

func TestVersionOrderingPrefersNumeric(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	document := f.seedDocument(t, companyID, nil)
	for _, value := range []string{"2", "10", "1"} {
		f.seedVersion(t, document.ID, value, nil)
	}
	profile := memberProfile(companyID)

	versions, err := f.svc.ListVersions(context.Background(), profile, document.ID)
	require.NoError(t, err)
	values := make([]string, 0, len(versions))
	for _, version := range versions {
		values = append(values, version.Version)
	}
	assert.Equal(t, []string{"1", "2", "10"}, values)

	views, err := f.svc.ListDocuments(context.Background(), profile, dto.DocumentListQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].CurrentVersion)
	assert.Equal(t, "10", views[0].CurrentVersion.Version)
}

func TestVersionOrderingMixedValuesNeverFails(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	document := f.seedDocument(t, companyID, nil)
	for _, value := range []string{"alpha", "1.0", "2.0"} {
		f.seedVersion(t, document.ID, value, nil)
	}

	versions, err := f.svc.ListVersions(context.Background(), memberProfile(companyID), document.ID)
	require.NoError(t, err)
	values := make([]string, 0, len(versions))
	for _, version := range versions {
		values = append(values, version.Version)
	}
	// numeric values first, unparseable text after them
	assert.Equal(t, []string{"1.0", "2.0", "alpha"}, values)
}

func TestListDocumentsHydratesNamesAndTags(t *testing.T) {
	companyID := uuid.NewString()
	position := "QA lead"
	owner := domain.UserProfile{ID: uuid.NewString(), FullName: "Ana Torres", Email: "ana@acme.test"}
	approver := domain.UserProfile{ID: uuid.NewString(), FullName: "", Email: "boss@acme.test"}
	reader := domain.UserProfile{ID: uuid.NewString(), FullName: "Luis Vega", Position: &position}

	f := newDocumentFixture(t, owner, approver, reader)
	document := f.seedDocument(t, companyID, func(d *domain.Document) {
		d.OwnerID = &owner.ID
		d.Tags = nil
	})
	f.seedVersion(t, document.ID, "1", func(v *domain.DocumentVersion) {
		v.ApprovedBy = &approver.ID
	})
	_, err := f.reads.UpsertRead(&domain.DocumentRead{
		DocumentID: document.ID,
		UserID:     reader.ID,
		Version:    "1",
		ReadAt:     time.Now().UTC(),
	})
	require.NoError(t, err)

	views, err := f.svc.ListDocuments(context.Background(), memberProfile(companyID), dto.DocumentListQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	view := views[0]

	require.NotNil(t, view.Owner)
	assert.Equal(t, "Ana Torres", *view.Owner)
	assert.NotNil(t, view.Tags)
	assert.Empty(t, view.Tags)

	require.Len(t, view.Versions, 1)
	require.NotNil(t, view.Versions[0].ApprovedByName)
	// approver has no full name, the email is the fallback
	assert.Equal(t, "boss@acme.test", *view.Versions[0].ApprovedByName)

	require.Len(t, view.Reads, 1)
	require.NotNil(t, view.Reads[0].User)
	assert.Equal(t, "Luis Vega", *view.Reads[0].User)
	require.NotNil(t, view.Reads[0].Position)
	assert.Equal(t, "QA lead", *view.Reads[0].Position)
}

func TestRecordReadUpsertsSingleReceipt(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	document := f.seedDocument(t, companyID, nil)
	f.seedVersion(t, document.ID, "1", nil)
	profile := memberProfile(companyID)

	first, err := f.svc.RecordRead(context.Background(), profile, document.ID, dto.RecordReadRequest{})
	require.NoError(t, err)
	assert.Equal(t, "1", first.Version)

	second, err := f.svc.RecordRead(context.Background(), profile, document.ID, dto.RecordReadRequest{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	receipts, err := f.reads.All()
	require.NoError(t, err)
	assert.Len(t, receipts, 1)

	assert.Contains(t, f.producer.keys, "document.read_recorded")
}

func TestRecordReadWithoutVersionsRejected(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	document := f.seedDocument(t, companyID, nil)

	_, err := f.svc.RecordRead(context.Background(), memberProfile(companyID), document.ID, dto.RecordReadRequest{})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateVersionAutoNumbers(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	document := f.seedDocument(t, companyID, nil)
	profile := memberProfile(companyID)

	first, err := f.svc.CreateVersion(context.Background(), profile, document.ID, dto.CreateVersionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "1", first.Version)
	assert.Equal(t, domain.VersionStatusBorrador, first.Status)

	second, err := f.svc.CreateVersion(context.Background(), profile, document.ID, dto.CreateVersionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2", second.Version)

	halfStep := "2.5"
	_, err = f.svc.CreateVersion(context.Background(), profile, document.ID, dto.CreateVersionRequest{Version: &halfStep})
	require.NoError(t, err)

	fourth, err := f.svc.CreateVersion(context.Background(), profile, document.ID, dto.CreateVersionRequest{})
	require.NoError(t, err)
	// floor of the highest numeric version plus one
	assert.Equal(t, "3", fourth.Version)

	assert.Len(t, f.audit.byAction("create_version"), 4)
	assert.Contains(t, f.producer.keys, "document.version_created")
}

func TestCreateDocumentRequiresCompany(t *testing.T) {
	f := newDocumentFixture(t)
	root := rootProfile()

	_, err := f.svc.CreateDocument(context.Background(), root, dto.CreateDocumentRequest{Title: "Unassigned"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateDocumentWithInitialVersion(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	profile := memberProfile(companyID)

	created, err := f.svc.CreateDocument(context.Background(), profile, dto.CreateDocumentRequest{
		Title:          "Safety manual",
		InitialVersion: &dto.CreateVersionRequest{},
	})
	require.NoError(t, err)
	require.NotNil(t, created.LatestVersion)
	assert.Equal(t, "1", created.LatestVersion.Version)
	assert.Equal(t, companyID, created.CompanyID)
	assert.True(t, created.Active)
}

func TestDocumentAccessScopedToCompany(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	document := f.seedDocument(t, companyID, nil)
	outsider := memberProfile(uuid.NewString())

	_, err := f.svc.GetDocumentDetail(context.Background(), outsider, document.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	// root crosses tenants freely
	detail, err := f.svc.GetDocumentDetail(context.Background(), rootProfile(), document.ID)
	require.NoError(t, err)
	assert.Equal(t, document.ID, detail.Document.ID)
}

func TestDocumentLifecycleEndToEnd(t *testing.T) {
	companyID := uuid.NewString()
	f := newDocumentFixture(t)
	profile := memberProfile(companyID)
	ctx := context.Background()

	created, err := f.svc.CreateDocument(ctx, profile, dto.CreateDocumentRequest{
		Title: "Procedure handbook",
		Tags:  []string{"ops"},
	})
	require.NoError(t, err)

	for _, value := range []string{"1", "2"} {
		v := value
		_, err := f.svc.CreateVersion(ctx, profile, created.ID, dto.CreateVersionRequest{Version: &v})
		require.NoError(t, err)
	}

	_, err = f.svc.RecordRead(ctx, profile, created.ID, dto.RecordReadRequest{})
	require.NoError(t, err)

	detail, err := f.svc.GetDocumentDetail(ctx, profile, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.LatestVersion)
	assert.Equal(t, "2", detail.LatestVersion.Version)
	require.NotNil(t, detail.CurrentUserRead)
	assert.Equal(t, "2", detail.CurrentUserRead.Version)

	require.NoError(t, f.svc.DeleteDocument(ctx, profile, created.ID))
	_, err = f.svc.GetDocumentDetail(ctx, profile, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
