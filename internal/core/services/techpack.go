package services

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
)

// Ensure TechPackService implements the interface.
var _ driving.TechPackService = (*TechPackService)(nil)

// TechPackService manages tech pack documents over a TechPackStore.
type TechPackService struct {
	store driven.TechPackStore
}

// NewTechPackService creates a new tech pack service.
func NewTechPackService(store driven.TechPackStore) *TechPackService {
	return &TechPackService{store: store}
}

// Create creates a tech pack seeded with registry defaults.
func (s *TechPackService) Create(ctx context.Context, productID, name string) (*domain.TechPack, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := s.store.Get(ctx, productID); err == nil && existing != nil {
		return nil, domain.ErrAlreadyExists
	}
	pack := domain.NewDefaultTechPack(productID, name)
	if err := s.store.Save(ctx, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// Get retrieves a tech pack by product ID.
func (s *TechPackService) Get(ctx context.Context, productID string) (*domain.TechPack, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, productID)
}

// SetSection coerces the candidate value against the schema and stores
// the result. Coercion never fails; storage errors are returned as-is.
func (s *TechPackService) SetSection(ctx context.Context, productID, section, field string, candidate any) (domain.Value, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if !domain.KnownSection(section) {
		return nil, domain.ErrUnknownSection
	}
	value := domain.Coerce(section, field, candidate)
	if err := s.store.UpdateSection(ctx, productID, section, field, value); err != nil {
		return nil, err
	}
	return value, nil
}

// Summary returns a bounded natural-language description of the tech pack.
func (s *TechPackService) Summary(ctx context.Context, productID string) (string, error) {
	pack, err := s.Get(ctx, productID)
	if err != nil {
		return "", err
	}
	return pack.Summary(), nil
}

// List returns the product IDs of all stored tech packs.
func (s *TechPackService) List(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}
