// Package memory provides in-memory implementations of the driven store
// interfaces, used in tests and as a zero-setup fallback.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
)

// Ensure TechPackStore implements the interface.
var _ driven.TechPackStore = (*TechPackStore)(nil)

// TechPackStore is an in-memory implementation of driven.TechPackStore.
type TechPackStore struct {
	mu    sync.RWMutex
	packs map[string]domain.TechPack
}

// NewTechPackStore creates a new in-memory tech pack store.
func NewTechPackStore() *TechPackStore {
	return &TechPackStore{
		packs: make(map[string]domain.TechPack),
	}
}

// Save stores or replaces a whole tech pack.
func (s *TechPackStore) Save(_ context.Context, pack *domain.TechPack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *pack
	stored.Sections = cloneSections(pack.Sections)
	s.packs[pack.ProductID] = stored
	return nil
}

// Get retrieves a tech pack by product ID.
func (s *TechPackStore) Get(_ context.Context, productID string) (*domain.TechPack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pack, ok := s.packs[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := pack
	out.Sections = cloneSections(pack.Sections)
	return &out, nil
}

// UpdateSection replaces one section (or nested field) of a stored pack.
func (s *TechPackStore) UpdateSection(_ context.Context, productID, section, field string, value domain.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pack, ok := s.packs[productID]
	if !ok {
		return domain.ErrNotFound
	}
	pack.Sections = cloneSections(pack.Sections)
	if err := pack.SetSection(section, field, value); err != nil {
		return err
	}
	s.packs[productID] = pack
	return nil
}

// List returns the product IDs of all stored tech packs.
func (s *TechPackStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.packs))
	for id := range s.packs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a tech pack.
func (s *TechPackStore) Delete(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packs[productID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.packs, productID)
	return nil
}

// cloneSections deep-copies a section map so callers cannot mutate
// stored state through shared values.
func cloneSections(sections map[string]domain.Value) map[string]domain.Value {
	out := make(map[string]domain.Value, len(sections))
	for k, v := range sections {
		if v != nil {
			out[k] = v.Clone()
		}
	}
	return out
}
