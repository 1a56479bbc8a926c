package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

func newRevision(id string, view domain.ViewType, number int, batchID string, createdAt time.Time) domain.ViewRevision {
	return domain.ViewRevision{
		ID:             id,
		ProductID:      "tote-01",
		ViewType:       view,
		RevisionNumber: number,
		BatchID:        batchID,
		ImageURL:       "file:///images/" + id + ".png",
		IsActive:       true,
		CreatedAt:      createdAt,
	}
}

func TestRevisionStore_NextRevisionNumber_Empty(t *testing.T) {
	store := NewRevisionStore()

	n, err := store.NextRevisionNumber(context.Background(), "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRevisionStore_NextRevisionNumber_CountsDeleted(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	rev := newRevision("rev-1", domain.ViewFront, 1, "batch-a", time.Now())
	require.NoError(t, store.Commit(ctx, rev))
	require.NoError(t, store.SoftDeleteRevision(ctx, "rev-1"))

	n, err := store.NextRevisionNumber(ctx, "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "deleted revisions keep their numbers reserved")
}

func TestRevisionStore_Commit_DeactivatesPreviousForView(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, newRevision("front-1", domain.ViewFront, 1, "batch-a", time.Now())))
	require.NoError(t, store.Commit(ctx, newRevision("back-1", domain.ViewBack, 1, "batch-a", time.Now())))
	require.NoError(t, store.Commit(ctx, newRevision("front-2", domain.ViewFront, 2, "batch-b", time.Now())))

	active, err := store.ActiveRevision(ctx, "tote-01", domain.ViewFront)
	require.NoError(t, err)
	assert.Equal(t, "front-2", active.ID)

	// Other views keep their own active revision.
	active, err = store.ActiveRevision(ctx, "tote-01", domain.ViewBack)
	require.NoError(t, err)
	assert.Equal(t, "back-1", active.ID)

	old, err := store.Get(ctx, "front-1")
	require.NoError(t, err)
	assert.False(t, old.IsActive)
	assert.False(t, old.IsDeleted)
}

func TestRevisionStore_Get_NotFound(t *testing.T) {
	store := NewRevisionStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevisionStore_ActiveRevision_NoneActive(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, newRevision("rev-1", domain.ViewFront, 1, "batch-a", time.Now())))
	require.NoError(t, store.SoftDeleteRevision(ctx, "rev-1"))

	_, err := store.ActiveRevision(ctx, "tote-01", domain.ViewFront)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevisionStore_ListByProduct_NewestFirst(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Commit(ctx, newRevision("rev-1", domain.ViewFront, 1, "batch-a", base)))
	require.NoError(t, store.Commit(ctx, newRevision("rev-2", domain.ViewFront, 2, "batch-b", base.Add(time.Minute))))
	require.NoError(t, store.Commit(ctx, newRevision("rev-3", domain.ViewFront, 3, "batch-c", base.Add(2*time.Minute))))

	revs, err := store.ListByProduct(ctx, "tote-01")
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, "rev-3", revs[0].ID)
	assert.Equal(t, "rev-2", revs[1].ID)
	assert.Equal(t, "rev-1", revs[2].ID)
}

func TestRevisionStore_ListByProduct_ExcludesDeleted(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, newRevision("rev-1", domain.ViewFront, 1, "batch-a", time.Now())))
	require.NoError(t, store.Commit(ctx, newRevision("rev-2", domain.ViewBack, 1, "batch-a", time.Now())))
	require.NoError(t, store.SoftDeleteRevision(ctx, "rev-1"))

	revs, err := store.ListByProduct(ctx, "tote-01")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "rev-2", revs[0].ID)
}

func TestRevisionStore_SoftDeleteBatch(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, newRevision("front-1", domain.ViewFront, 1, "batch-a", time.Now())))
	require.NoError(t, store.Commit(ctx, newRevision("back-1", domain.ViewBack, 1, "batch-a", time.Now())))
	require.NoError(t, store.Commit(ctx, newRevision("front-2", domain.ViewFront, 2, "batch-b", time.Now())))

	require.NoError(t, store.SoftDeleteBatch(ctx, "batch-a"))

	revs, err := store.ListByProduct(ctx, "tote-01")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "front-2", revs[0].ID)
}

func TestRevisionStore_SoftDelete_NotFound(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.SoftDeleteRevision(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, store.SoftDeleteBatch(ctx, "batch-missing"), domain.ErrNotFound)
}

func TestRevisionStore_SoftDeleteRevision_AlreadyDeleted(t *testing.T) {
	store := NewRevisionStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, newRevision("rev-1", domain.ViewFront, 1, "batch-a", time.Now())))
	require.NoError(t, store.SoftDeleteRevision(ctx, "rev-1"))

	assert.ErrorIs(t, store.SoftDeleteRevision(ctx, "rev-1"), domain.ErrNotFound)
}
