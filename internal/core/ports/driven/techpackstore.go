package driven

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// TechPackStore persists tech pack documents.
type TechPackStore interface {
	// Get retrieves a tech pack by product ID.
	// Returns domain.ErrNotFound when it does not exist.
	Get(ctx context.Context, productID string) (*domain.TechPack, error)

	// Save stores or replaces a whole tech pack.
	Save(ctx context.Context, pack *domain.TechPack) error

	// UpdateSection replaces one section (or one nested field of an
	// object-shaped section when field is non-empty) with a shape-valid
	// value.
	UpdateSection(ctx context.Context, productID, section, field string, value domain.Value) error

	// List returns the product IDs of all stored tech packs.
	List(ctx context.Context) ([]string, error)

	// Delete removes a tech pack. Returns domain.ErrNotFound when no
	// tech pack exists for the product.
	Delete(ctx context.Context, productID string) error
}
