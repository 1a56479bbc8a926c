package driven

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// RevisionStore provides relational persistence for view revisions.
// It supports the ledger's queries: max-by-group numbering, filtering by
// batch and active flags, and soft-delete updates.
type RevisionStore interface {
	// NextRevisionNumber returns max(existing)+1 for the (product, view)
	// pair, or 1 when no revisions exist. Soft-deleted revisions still
	// count so numbers never repeat.
	NextRevisionNumber(ctx context.Context, productID string, view domain.ViewType) (int, error)

	// Commit deactivates the current active revision for the revision's
	// (product, view) pair, if any, and inserts the new revision with
	// IsActive set, as one atomic unit. Readers never observe zero or
	// more than one active revision for the pair after a commit.
	Commit(ctx context.Context, rev domain.ViewRevision) error

	// Get retrieves a single revision by ID.
	// Returns domain.ErrNotFound when it does not exist.
	Get(ctx context.Context, id string) (*domain.ViewRevision, error)

	// ActiveRevision returns the active, non-deleted revision for a
	// (product, view) pair, or domain.ErrNotFound when none exists.
	ActiveRevision(ctx context.Context, productID string, view domain.ViewType) (*domain.ViewRevision, error)

	// ListByProduct returns all non-deleted revisions for a product.
	ListByProduct(ctx context.Context, productID string) ([]domain.ViewRevision, error)

	// SoftDeleteRevision marks a single revision deleted and inactive.
	SoftDeleteRevision(ctx context.Context, id string) error

	// SoftDeleteBatch marks every revision sharing a batch id deleted
	// and inactive.
	SoftDeleteBatch(ctx context.Context, batchID string) error
}
