package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

// Ensure RevisionService implements the interface.
var _ driving.RevisionService = (*RevisionService)(nil)

// RevisionService is the revision ledger. Commits for the same
// (product, view) pair are serialised with a keyed mutex so the
// at-most-one-active invariant holds under concurrent writers.
type RevisionService struct {
	store driven.RevisionStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRevisionService creates the revision ledger over a revision store.
func NewRevisionService(store driven.RevisionStore) *RevisionService {
	return &RevisionService{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serialising commits for one (product, view)
// pair, creating it on first use.
func (s *RevisionService) lockFor(productID string, view domain.ViewType) *sync.Mutex {
	key := productID + "/" + string(view)
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// NextRevisionNumber returns one more than the highest existing revision
// number for the (product, view) pair, or 1 if none exist.
func (s *RevisionService) NextRevisionNumber(ctx context.Context, productID string, view domain.ViewType) (int, error) {
	if s.store == nil {
		return 0, domain.ErrNotImplemented
	}
	if !view.Valid() {
		return 0, domain.ErrUnknownView
	}
	return s.store.NextRevisionNumber(ctx, productID, view)
}

// CommitRevision deactivates the current active revision for the
// (product, view) pair and inserts a new active revision with the next
// number. The store performs the two writes atomically; this method
// additionally serialises commits per pair.
func (s *RevisionService) CommitRevision(ctx context.Context, productID string, view domain.ViewType, batchID, imageURL, editPrompt string) (*domain.ViewRevision, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if !view.Valid() {
		return nil, domain.ErrUnknownView
	}
	if productID == "" || imageURL == "" {
		return nil, domain.ErrInvalidInput
	}

	lock := s.lockFor(productID, view)
	lock.Lock()
	defer lock.Unlock()

	number, err := s.store.NextRevisionNumber(ctx, productID, view)
	if err != nil {
		return nil, err
	}

	rev := domain.ViewRevision{
		ID:             uuid.NewString(),
		ProductID:      productID,
		ViewType:       view,
		RevisionNumber: number,
		BatchID:        batchID,
		ImageURL:       imageURL,
		EditPrompt:     editPrompt,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Commit(ctx, rev); err != nil {
		return nil, err
	}

	logger.Debug("ledger: committed %s/%s revision %d (batch %s)", productID, view, number, batchID)
	return &rev, nil
}

// SoftDelete reversibly deletes by revision ID, or by batch ID when the
// identifier matches the batch-id pattern. Every revision sharing a batch
// id is deleted together.
func (s *RevisionService) SoftDelete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	if domain.IsBatchID(id) {
		logger.Debug("ledger: soft-deleting batch %s", id)
		return s.store.SoftDeleteBatch(ctx, id)
	}
	logger.Debug("ledger: soft-deleting revision %s", id)
	return s.store.SoftDeleteRevision(ctx, id)
}

// ListGrouped returns all non-deleted revisions for a product grouped by
// batch, newest first. A batch is active when any contained revision is.
func (s *RevisionService) ListGrouped(ctx context.Context, productID string) ([]domain.RevisionBatch, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	revs, err := s.store.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	byBatch := make(map[string]*domain.RevisionBatch)
	for _, rev := range revs {
		batch, ok := byBatch[rev.BatchID]
		if !ok {
			batch = &domain.RevisionBatch{
				BatchID:    rev.BatchID,
				EditPrompt: rev.EditPrompt,
				Views:      make(map[domain.ViewType]domain.ViewRevision),
				CreatedAt:  rev.CreatedAt,
			}
			byBatch[rev.BatchID] = batch
		}
		batch.Views[rev.ViewType] = rev
		if rev.IsActive {
			batch.Active = true
		}
		if rev.CreatedAt.Before(batch.CreatedAt) {
			batch.CreatedAt = rev.CreatedAt
		}
	}

	out := make([]domain.RevisionBatch, 0, len(byBatch))
	for _, b := range byBatch {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ActiveImageURL returns the image URL of the active revision for a
// (product, view) pair, or "" when none exists.
func (s *RevisionService) ActiveImageURL(ctx context.Context, productID string, view domain.ViewType) (string, error) {
	if s.store == nil {
		return "", domain.ErrNotImplemented
	}
	rev, err := s.store.ActiveRevision(ctx, productID, view)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return rev.ImageURL, nil
}
