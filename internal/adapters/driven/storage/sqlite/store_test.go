package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "techpack-test-*")
	require.NoError(t, err)

	// Create store in temp directory
	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRevision(productID string, view domain.ViewType, number int, batchID string) domain.ViewRevision {
	return domain.ViewRevision{
		ID:             productID + "-" + string(view) + "-" + batchID,
		ProductID:      productID,
		ViewType:       view,
		RevisionNumber: number,
		BatchID:        batchID,
		ImageURL:       "file:///images/" + batchID + ".png",
		EditPrompt:     "test edit",
		IsActive:       true,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "techpack-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestTechPackStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	pack := domain.NewDefaultTechPack("tote-01", "Aria Tote")
	require.NoError(t, store.TechPackStore().Save(ctx, pack))

	loaded, err := store.TechPackStore().Get(ctx, "tote-01")
	require.NoError(t, err)

	assert.Equal(t, "tote-01", loaded.ProductID)
	assert.Equal(t, domain.Scalar("Aria Tote"), loaded.Sections[domain.SectionProductName])

	// Shapes survive the JSON round trip.
	for _, section := range domain.SectionNames() {
		v, ok := loaded.Sections[section]
		require.True(t, ok, "section %q missing after load", section)
		assert.Equal(t, domain.ShapeOf(section), v.Shape(), "section %q", section)
	}
}

func TestTechPackStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.TechPackStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTechPackStore_Save_Upserts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	pack := domain.NewDefaultTechPack("tote-01", "First")
	require.NoError(t, store.TechPackStore().Save(ctx, pack))

	pack.Sections[domain.SectionProductName] = domain.Scalar("Second")
	require.NoError(t, store.TechPackStore().Save(ctx, pack))

	loaded, err := store.TechPackStore().Get(ctx, "tote-01")
	require.NoError(t, err)
	assert.Equal(t, domain.Scalar("Second"), loaded.Sections[domain.SectionProductName])
}

func TestTechPackStore_UpdateSection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	pack := domain.NewDefaultTechPack("tote-01", "Aria")
	require.NoError(t, store.TechPackStore().Save(ctx, pack))

	value := domain.List{domain.Record{"material": "Canvas", "component": "", "specification": "", "quantityPerUnit": "", "unitCost": "", "notes": ""}}
	require.NoError(t, store.TechPackStore().UpdateSection(ctx, "tote-01", domain.SectionMaterials, "", value))

	loaded, err := store.TechPackStore().Get(ctx, "tote-01")
	require.NoError(t, err)

	list, ok := loaded.Sections[domain.SectionMaterials].(domain.List)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Canvas", list[0].(domain.Record)["material"])
}

func TestTechPackStore_UpdateSection_NestedField(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	pack := domain.NewDefaultTechPack("tote-01", "Aria")
	require.NoError(t, store.TechPackStore().Save(ctx, pack))

	value := domain.List{domain.Scalar("Navy")}
	require.NoError(t, store.TechPackStore().UpdateSection(ctx, "tote-01", domain.SectionColors, "primaryColors", value))

	loaded, err := store.TechPackStore().Get(ctx, "tote-01")
	require.NoError(t, err)

	colors, ok := loaded.Sections[domain.SectionColors].(domain.Object)
	require.True(t, ok)
	assert.Equal(t, domain.Value(domain.List{domain.Scalar("Navy")}), colors["primaryColors"])
	assert.Equal(t, domain.Value(domain.Scalar("")), colors["colorNotes"])
}

func TestTechPackStore_UpdateSection_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.TechPackStore().UpdateSection(context.Background(), "missing", domain.SectionProductName, "", domain.Scalar("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTechPackStore_ListAndDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.TechPackStore().Save(ctx, domain.NewDefaultTechPack("tote-01", "")))
	require.NoError(t, store.TechPackStore().Save(ctx, domain.NewDefaultTechPack("belt-02", "")))

	ids, err := store.TechPackStore().List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tote-01", "belt-02"}, ids)

	require.NoError(t, store.TechPackStore().Delete(ctx, "tote-01"))

	ids, err = store.TechPackStore().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"belt-02"}, ids)

	assert.ErrorIs(t, store.TechPackStore().Delete(ctx, "tote-01"), domain.ErrNotFound)
}

func TestRevisionStore_CommitDeactivatesPrevious(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	revisions := store.RevisionStore()

	first := testRevision("tote-01", domain.ViewFront, 1, "batch-a")
	require.NoError(t, revisions.Commit(ctx, first))

	second := testRevision("tote-01", domain.ViewFront, 2, "batch-b")
	require.NoError(t, revisions.Commit(ctx, second))

	active, err := revisions.ActiveRevision(ctx, "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	loaded, err := revisions.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsActive, "previous revision is deactivated")
	assert.False(t, loaded.IsDeleted)
}

func TestRevisionStore_CommitIsPerView(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	revisions := store.RevisionStore()

	front := testRevision("tote-01", domain.ViewFront, 1, "batch-a")
	back := testRevision("tote-01", domain.ViewBack, 1, "batch-a")
	require.NoError(t, revisions.Commit(ctx, front))
	require.NoError(t, revisions.Commit(ctx, back))

	// The back commit must not deactivate the front.
	active, err := revisions.ActiveRevision(ctx, "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, front.ID, active.ID)
}

func TestRevisionStore_NextRevisionNumber(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	revisions := store.RevisionStore()

	n, err := revisions.NextRevisionNumber(ctx, "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rev := testRevision("tote-01", domain.ViewFront, 1, "batch-a")
	require.NoError(t, revisions.Commit(ctx, rev))

	// Soft-deleted revisions still count toward numbering.
	require.NoError(t, revisions.SoftDeleteRevision(ctx, rev.ID))

	n, err = revisions.NextRevisionNumber(ctx, "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRevisionStore_ListByProduct_ExcludesDeleted(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	revisions := store.RevisionStore()

	kept := testRevision("tote-01", domain.ViewFront, 1, "batch-a")
	deleted := testRevision("tote-01", domain.ViewBack, 1, "batch-a")
	require.NoError(t, revisions.Commit(ctx, kept))
	require.NoError(t, revisions.Commit(ctx, deleted))
	require.NoError(t, revisions.SoftDeleteRevision(ctx, deleted.ID))

	revs, err := revisions.ListByProduct(ctx, "tote-01")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, kept.ID, revs[0].ID)
}

func TestRevisionStore_SoftDeleteBatch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	revisions := store.RevisionStore()

	for i, view := range domain.ViewTypes {
		rev := testRevision("tote-01", view, 1, "batch-a")
		rev.ID = rev.ID + "-" + string(rune('a'+i))
		require.NoError(t, revisions.Commit(ctx, rev))
	}
	other := testRevision("tote-01", domain.ViewFront, 2, "batch-b")
	require.NoError(t, revisions.Commit(ctx, other))

	require.NoError(t, revisions.SoftDeleteBatch(ctx, "batch-a"))

	revs, err := revisions.ListByProduct(ctx, "tote-01")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "batch-b", revs[0].BatchID)
}

func TestRevisionStore_SoftDelete_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	assert.ErrorIs(t, store.RevisionStore().SoftDeleteRevision(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, store.RevisionStore().SoftDeleteBatch(ctx, "batch-missing"), domain.ErrNotFound)
}
