package domain

import (
	"strings"
	"time"
)

// ViewType is one of the three canonical product photo perspectives.
type ViewType string

const (
	// ViewFront is the front view, generated first and used as the
	// visual reference for the other views.
	ViewFront ViewType = "front"

	// ViewBack is the back view.
	ViewBack ViewType = "back"

	// ViewSide is the side view.
	ViewSide ViewType = "side"
)

// ViewTypes lists all views in generation order: front first.
var ViewTypes = []ViewType{ViewFront, ViewBack, ViewSide}

// Valid reports whether the view type is recognised.
func (v ViewType) Valid() bool {
	switch v {
	case ViewFront, ViewBack, ViewSide:
		return true
	}
	return false
}

// BatchIDPrefix marks identifiers that name a revision batch rather than
// a single revision.
const BatchIDPrefix = "batch-"

// IsBatchID reports whether an identifier matches the batch-id pattern.
func IsBatchID(id string) bool {
	return strings.HasPrefix(id, BatchIDPrefix)
}

// ViewRevision is one persisted generated image for one (product, view)
// pair. For a given pair at most one non-deleted revision is active, and
// revision numbers increase monotonically.
type ViewRevision struct {
	// ID is the unique revision identifier.
	ID string

	// ProductID is the owning product.
	ProductID string

	// ViewType is the perspective this revision renders.
	ViewType ViewType

	// RevisionNumber is assigned as max(existing)+1 per (product, view).
	RevisionNumber int

	// BatchID groups the revisions produced by one logical edit.
	BatchID string

	// ImageURL locates the persisted image in the blob store.
	ImageURL string

	// EditPrompt is the user instruction that produced this revision.
	EditPrompt string

	// IsActive marks the revision currently displayed for its view.
	IsActive bool

	// IsDeleted marks a soft-deleted revision. Deleted revisions are
	// excluded from listing but remain in storage.
	IsDeleted bool

	// CreatedAt is when the revision was committed.
	CreatedAt time.Time
}

// RevisionBatch is the grouped view of all revisions sharing a batch id:
// one atomic user-requested edit or one initial generation.
type RevisionBatch struct {
	// BatchID is the shared batch identifier.
	BatchID string

	// EditPrompt is the instruction that produced the batch.
	EditPrompt string

	// Views holds whichever per-view revisions exist in the batch.
	Views map[ViewType]ViewRevision

	// Active reports whether any contained revision is active.
	Active bool

	// CreatedAt is the earliest creation time of the contained revisions.
	CreatedAt time.Time
}
