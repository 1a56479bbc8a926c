package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
)

// Ensure RevisionStore implements the interface.
var _ driven.RevisionStore = (*RevisionStore)(nil)

// RevisionStore is an in-memory implementation of driven.RevisionStore.
type RevisionStore struct {
	mu        sync.RWMutex
	revisions []domain.ViewRevision
}

// NewRevisionStore creates a new in-memory revision store.
func NewRevisionStore() *RevisionStore {
	return &RevisionStore{}
}

// NextRevisionNumber returns one greater than the highest revision
// number ever recorded for the view, counting soft-deleted rows.
func (s *RevisionStore) NextRevisionNumber(_ context.Context, productID string, view domain.ViewType) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, rev := range s.revisions {
		if rev.ProductID == productID && rev.ViewType == view && rev.RevisionNumber > max {
			max = rev.RevisionNumber
		}
	}
	return max + 1, nil
}

// Commit deactivates the current active revision for the view and
// inserts rev as the new active one, as a single atomic step.
func (s *RevisionStore) Commit(_ context.Context, rev domain.ViewRevision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.revisions {
		if s.revisions[i].ProductID == rev.ProductID && s.revisions[i].ViewType == rev.ViewType {
			s.revisions[i].IsActive = false
		}
	}
	s.revisions = append(s.revisions, rev)
	return nil
}

// Get retrieves a revision by ID.
func (s *RevisionStore) Get(_ context.Context, id string) (*domain.ViewRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rev := range s.revisions {
		if rev.ID == id {
			out := rev
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ActiveRevision returns the active, non-deleted revision for a view.
func (s *RevisionStore) ActiveRevision(_ context.Context, productID string, view domain.ViewType) (*domain.ViewRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rev := range s.revisions {
		if rev.ProductID == productID && rev.ViewType == view && rev.IsActive && !rev.IsDeleted {
			out := rev
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByProduct returns all non-deleted revisions for a product,
// newest first.
func (s *RevisionStore) ListByProduct(_ context.Context, productID string) ([]domain.ViewRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ViewRevision
	for _, rev := range s.revisions {
		if rev.ProductID == productID && !rev.IsDeleted {
			out = append(out, rev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SoftDeleteRevision marks a single revision as deleted.
func (s *RevisionStore) SoftDeleteRevision(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.revisions {
		if s.revisions[i].ID == id && !s.revisions[i].IsDeleted {
			s.revisions[i].IsDeleted = true
			s.revisions[i].IsActive = false
			return nil
		}
	}
	return domain.ErrNotFound
}

// SoftDeleteBatch marks every revision in a batch as deleted.
func (s *RevisionStore) SoftDeleteBatch(_ context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i := range s.revisions {
		if s.revisions[i].BatchID == batchID && !s.revisions[i].IsDeleted {
			s.revisions[i].IsDeleted = true
			s.revisions[i].IsActive = false
			found = true
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
