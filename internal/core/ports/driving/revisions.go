package driving

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// RevisionService is the revision ledger: per-view, per-product revision
// numbering, the at-most-one-active invariant, batch grouping, and soft
// deletion.
type RevisionService interface {
	// NextRevisionNumber returns one more than the highest existing
	// revision number for the (product, view) pair, or 1 if none exist.
	NextRevisionNumber(ctx context.Context, productID string, view domain.ViewType) (int, error)

	// CommitRevision deactivates the current active revision for the
	// (product, view) pair and inserts a new active revision, as one
	// unit. Concurrent commits for the same pair are serialised.
	CommitRevision(ctx context.Context, productID string, view domain.ViewType, batchID, imageURL, editPrompt string) (*domain.ViewRevision, error)

	// SoftDelete reversibly deletes by revision ID, or by batch ID when
	// the identifier matches the batch-id pattern. Deleted revisions are
	// excluded from listing but remain in storage.
	SoftDelete(ctx context.Context, id string) error

	// ListGrouped returns all non-deleted revisions for a product,
	// grouped into batches, newest first.
	ListGrouped(ctx context.Context, productID string) ([]domain.RevisionBatch, error)

	// ActiveImageURL returns the image URL of the active revision for a
	// (product, view) pair, or "" when none exists.
	ActiveImageURL(ctx context.Context, productID string, view domain.ViewType) (string, error)
}
