package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/versioning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// versionedDoc is a minimal row type for exercising the chain semantics
// without dragging a domain table into the test.
type versionedDoc struct {
	versioning.RecordBase
	TenantID uuid.UUID `gorm:"type:uuid;column:tenant_id;index"`
	DocKey   string    `gorm:"type:varchar(50);index"`
	Title    string    `gorm:"type:varchar(200)"`
}

func (versionedDoc) TableName() string {
	return "versioned_docs"
}

func (d *versionedDoc) LogicalKey() string {
	return d.DocKey
}

func (d *versionedDoc) Tenant() uuid.UUID {
	return d.TenantID
}

var (
	testTenant  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	otherTenant = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func setupVersionStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&versionedDoc{}))
	return db
}

func newDoc(tenantID uuid.UUID, key, title string) *versionedDoc {
	return &versionedDoc{
		RecordBase: versioning.NewRecordBase(time.Now()),
		TenantID:   tenantID,
		DocKey:     key,
		Title:      title,
	}
}

func TestGormVersionStore_CreateVersion_OpensChain(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	created, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)
	assert.True(t, created.IsCurrent())

	current, err := store.Current(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "first draft", current.Title)
	assert.Nil(t, current.EndMarker)
}

func TestGormVersionStore_CreateVersion_DuplicateActive(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	dup := newDoc(testTenant, "doc-1", "second head")
	_, err = store.CreateVersion(ctx, dup, dup.StartMarker)
	assert.ErrorIs(t, err, versioning.ErrDuplicateActive)
}

func TestGormVersionStore_SameKeyAcrossTenants(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	// Sequence-minted keys restart per tenant, so two tenants legitimately
	// hold the same key. Each names its own chain.
	first := newDoc(testTenant, "DOC-000001", "alpha draft")
	_, err := store.CreateVersion(ctx, first, first.StartMarker)
	require.NoError(t, err)

	second := newDoc(otherTenant, "DOC-000001", "beta draft")
	_, err = store.CreateVersion(ctx, second, second.StartMarker)
	require.NoError(t, err, "the same key under another tenant opens a separate chain")

	current, err := store.Current(ctx, testTenant, "DOC-000001")
	require.NoError(t, err)
	assert.Equal(t, "alpha draft", current.Title)
	assert.Equal(t, testTenant, current.TenantID)

	current, err = store.Current(ctx, otherTenant, "DOC-000001")
	require.NoError(t, err)
	assert.Equal(t, "beta draft", current.Title)
	assert.Equal(t, otherTenant, current.TenantID)

	// A tenant that never opened the chain reads it as empty.
	_, err = store.Current(ctx, uuid.MustParse("44444444-4444-4444-4444-444444444444"), "DOC-000001")
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)
}

func TestGormVersionStore_EditAndDeleteScopedToTenant(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "DOC-000001", "alpha draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	// Another tenant cannot edit or close a chain it does not own.
	_, err = store.Edit(ctx, otherTenant, "DOC-000001", "editor@example.com", func(d *versionedDoc) {
		d.Title = "hijacked"
	})
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)

	err = store.Delete(ctx, otherTenant, "DOC-000001", "editor@example.com", time.Now())
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)

	current, err := store.Current(ctx, testTenant, "DOC-000001")
	require.NoError(t, err)
	assert.Equal(t, "alpha draft", current.Title)
	assert.Nil(t, current.EndMarker)
}

func TestGormVersionStore_Current_EmptyChain(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")

	_, err := store.Current(context.Background(), testTenant, "missing")
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)
}

func TestGormVersionStore_Edit_ClosesAndAppends(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	successor, err := store.Edit(ctx, testTenant, "doc-1", "editor@example.com", func(d *versionedDoc) {
		d.Title = "second draft"
	})
	require.NoError(t, err)
	assert.Equal(t, "second draft", successor.Title)
	assert.True(t, successor.IsCurrent())
	assert.NotEqual(t, doc.ID, successor.ID, "the successor is a new row")

	history, err := store.History(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	predecessor := history[0]
	assert.Equal(t, "first draft", predecessor.Title)
	require.NotNil(t, predecessor.EndMarker)
	assert.Equal(t, "editor@example.com", predecessor.LastEditor)
	assert.False(t, predecessor.StartMarker.After(history[1].StartMarker), "history is ordered by start marker")

	current, err := store.Current(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, successor.ID, current.ID)
}

func TestGormVersionStore_Edit_OverlayCannotChangeKey(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	_, err = store.Edit(ctx, testTenant, "doc-1", "editor@example.com", func(d *versionedDoc) {
		d.DocKey = "doc-2"
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not change the logical key")

	// The failed edit rolled back: the chain still has one open version.
	history, err := store.History(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].EndMarker)
}

func TestGormVersionStore_Edit_OverlayCannotChangeTenant(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	_, err = store.Edit(ctx, testTenant, "doc-1", "editor@example.com", func(d *versionedDoc) {
		d.TenantID = otherTenant
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not change the tenant")

	history, err := store.History(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].EndMarker)
}

func TestGormVersionStore_Edit_EmptyChain(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")

	_, err := store.Edit(context.Background(), testTenant, "missing", "editor@example.com", func(d *versionedDoc) {})
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)
}

func TestGormVersionStore_Delete_ClosesWithoutSuccessor(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	err = store.Delete(ctx, testTenant, "doc-1", "editor@example.com", time.Now())
	require.NoError(t, err)

	_, err = store.Current(ctx, testTenant, "doc-1")
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)

	// The closed row survives as history.
	history, err := store.History(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].EndMarker)
	assert.Equal(t, "editor@example.com", history[0].LastEditor)
}

func TestGormVersionStore_Delete_AlreadyClosed(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, testTenant, "doc-1", "editor@example.com", time.Now()))

	err = store.Delete(ctx, testTenant, "doc-1", "editor@example.com", time.Now())
	assert.ErrorIs(t, err, versioning.ErrAlreadyClosed)
}

func TestGormVersionStore_CloseCurrent_ReturnsClosedRow(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)

	closed, err := store.CloseCurrent(ctx, testTenant, "doc-1", "editor@example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, doc.ID, closed.ID)
	require.NotNil(t, closed.EndMarker)
	assert.Equal(t, "editor@example.com", closed.LastEditor)
}

func TestGormVersionStore_ReopenAfterDelete(t *testing.T) {
	db := setupVersionStoreDB(t)
	store := NewGormVersionStore[*versionedDoc](db, "doc_key")
	ctx := context.Background()

	doc := newDoc(testTenant, "doc-1", "first draft")
	_, err := store.CreateVersion(ctx, doc, doc.StartMarker)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, testTenant, "doc-1", "editor@example.com", time.Now()))

	// A closed chain admits a fresh open version.
	reopened := newDoc(testTenant, "doc-1", "revived")
	_, err = store.CreateVersion(ctx, reopened, reopened.StartMarker)
	require.NoError(t, err)

	current, err := store.Current(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "revived", current.Title)

	history, err := store.History(ctx, testTenant, "doc-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
