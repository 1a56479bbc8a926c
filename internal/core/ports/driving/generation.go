package driving

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// GenerationService orders multi-view image generation. The front view
// is generated first and used as the visual reference for back and side,
// keeping the three views stylistically consistent.
type GenerationService interface {
	// ApplyEdit regenerates all three views for an edit prompt,
	// referencing the product's current front image. Views that fail to
	// generate or upload are skipped; partial success is reported.
	ApplyEdit(ctx context.Context, productID, editPrompt string) (*GenerationResult, error)

	// GenerateInitial produces the first three-view image set for a
	// product from its tech pack description, with no prior reference.
	GenerateInitial(ctx context.Context, productID string) (*GenerationResult, error)
}

// ViewOutcome reports the result of generating one view.
type ViewOutcome struct {
	// View is the perspective this outcome describes.
	View domain.ViewType

	// Revision is the committed revision, nil when the view was skipped.
	Revision *domain.ViewRevision

	// Err is the reason the view was skipped, nil on success.
	Err error
}

// GenerationResult reports a multi-view generation batch per view.
type GenerationResult struct {
	// BatchID is the shared batch identifier of the committed revisions.
	BatchID string

	// Outcomes holds one entry per attempted view, in generation order.
	Outcomes []ViewOutcome
}

// Succeeded returns the views that were generated and committed.
func (r *GenerationResult) Succeeded() []domain.ViewType {
	var out []domain.ViewType
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Revision != nil {
			out = append(out, o.View)
		}
	}
	return out
}

// Failed returns the views that were skipped, with their reasons.
func (r *GenerationResult) Failed() map[domain.ViewType]error {
	out := make(map[domain.ViewType]error)
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out[o.View] = o.Err
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
