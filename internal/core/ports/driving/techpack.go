package driving

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// TechPackService manages tech pack documents.
type TechPackService interface {
	// Create creates a tech pack seeded with registry defaults.
	Create(ctx context.Context, productID, name string) (*domain.TechPack, error)

	// Get retrieves a tech pack by product ID.
	Get(ctx context.Context, productID string) (*domain.TechPack, error)

	// SetSection coerces the candidate value against the schema and
	// stores the result. It reports whether the stored value required
	// repair.
	SetSection(ctx context.Context, productID, section, field string, candidate any) (domain.Value, error)

	// Summary returns a bounded natural-language description of the
	// tech pack for use as completion grounding context.
	Summary(ctx context.Context, productID string) (string, error)

	// List returns the product IDs of all stored tech packs.
	List(ctx context.Context) ([]string, error)
}
