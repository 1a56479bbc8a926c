package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

// defaultViewEditPrompt is the fallback per-view image-edit prompt.
const defaultViewEditPrompt = `Product %s view. Apply this change while keeping everything else identical to the reference image: %s`

// defaultViewInitialPrompt is the fallback per-view initial prompt.
const defaultViewInitialPrompt = `Clean studio photograph, %s view, of the following product: %s`

// initialGenerationPrompt labels revisions committed by an initial
// generation rather than a user edit.
const initialGenerationPrompt = "Initial generation"

// GenerationService is the multi-view generation sequencer. The front
// view is generated first; back and side are then generated concurrently
// using the newly generated front as their visual reference, a strict
// two-phase sequence that preserves cross-view stylistic consistency.
type GenerationService struct {
	imagegen    driven.ImageGenerator
	blob        driven.BlobStore
	ledger      driving.RevisionService
	techpack    driving.TechPackService
	promptStore driven.PromptStore
}

// NewGenerationService creates the sequencer.
func NewGenerationService(
	imagegen driven.ImageGenerator,
	blob driven.BlobStore,
	ledger driving.RevisionService,
	techpack driving.TechPackService,
) *GenerationService {
	return &GenerationService{
		imagegen: imagegen,
		blob:     blob,
		ledger:   ledger,
		techpack: techpack,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *GenerationService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// ApplyEdit regenerates all three views for an edit prompt. Views that
// fail to generate or upload are skipped with a log; the remaining views
// still commit, all sharing one batch id.
func (s *GenerationService) ApplyEdit(ctx context.Context, productID, editPrompt string) (*driving.GenerationResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if productID == "" || editPrompt == "" {
		return nil, domain.ErrInvalidInput
	}

	template := s.loadPrompt(driven.PromptViewEdit, defaultViewEditPrompt)
	prompts := make(map[domain.ViewType]string, len(domain.ViewTypes))
	for _, view := range domain.ViewTypes {
		prompts[view] = fmt.Sprintf(template, view, editPrompt)
	}

	frontRef, err := s.ledger.ActiveImageURL(ctx, productID, domain.ViewFront)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, productID, editPrompt, prompts, frontRef)
}

// GenerateInitial produces the first three-view image set for a product
// from its tech pack description, with no prior reference image.
func (s *GenerationService) GenerateInitial(ctx context.Context, productID string) (*driving.GenerationResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	description := productID
	if s.techpack != nil {
		if pack, err := s.techpack.Get(ctx, productID); err == nil {
			name := domain.Stringify(pack.Section(domain.SectionProductName))
			overview := domain.Stringify(pack.Section(domain.SectionProductOverview))
			if name != "" || overview != "" {
				description = name
				if overview != "" {
					description += ". " + overview
				}
			}
		}
	}

	template := s.loadPrompt(driven.PromptViewInitial, defaultViewInitialPrompt)
	prompts := make(map[domain.ViewType]string, len(domain.ViewTypes))
	for _, view := range domain.ViewTypes {
		prompts[view] = fmt.Sprintf(template, view, description)
	}

	return s.run(ctx, productID, initialGenerationPrompt, prompts, "")
}

// ready validates the collaborators required for generation.
func (s *GenerationService) ready() error {
	if s.imagegen == nil {
		return domain.ErrImageGenUnavailable
	}
	if s.blob == nil {
		return domain.ErrBlobStoreUnavailable
	}
	if s.ledger == nil {
		return domain.ErrNotImplemented
	}
	return nil
}

// run executes the two-phase sequence: front first, then back and side
// concurrently against the new front image.
func (s *GenerationService) run(ctx context.Context, productID, editPrompt string, prompts map[domain.ViewType]string, frontRef string) (*driving.GenerationResult, error) {
	batchID := domain.BatchIDPrefix + uuid.NewString()
	logger.Section("view generation " + batchID)

	// Phase one: the front view, referencing the current front image.
	frontOutcome := s.generateView(ctx, productID, domain.ViewFront, prompts[domain.ViewFront], frontRef, batchID, editPrompt)

	// Back and side reference the newly generated front so the set stays
	// stylistically consistent after the edit. If the front was skipped,
	// fall back to the previous front image rather than aborting.
	reference := frontRef
	if frontOutcome.Revision != nil {
		reference = frontOutcome.Revision.ImageURL
	}

	// Phase two: back and side may overlap each other, but never start
	// before the front result is known.
	rest := []domain.ViewType{domain.ViewBack, domain.ViewSide}
	outcomes := make([]driving.ViewOutcome, len(rest))
	var wg sync.WaitGroup
	for i, view := range rest {
		wg.Add(1)
		go func(i int, view domain.ViewType) {
			defer wg.Done()
			outcomes[i] = s.generateView(ctx, productID, view, prompts[view], reference, batchID, editPrompt)
		}(i, view)
	}
	wg.Wait()

	result := &driving.GenerationResult{
		BatchID:  batchID,
		Outcomes: append([]driving.ViewOutcome{frontOutcome}, outcomes...),
	}
	if failed := result.Failed(); failed != nil {
		for view, ferr := range failed {
			logger.Warn("generation: %s view skipped: %v", view, ferr)
		}
	}
	return result, nil
}

// generateView renders, uploads, and commits a single view. Failures are
// returned in the outcome, never propagated: one bad view must not abort
// the batch.
func (s *GenerationService) generateView(ctx context.Context, productID string, view domain.ViewType, prompt, referenceURL, batchID, editPrompt string) driving.ViewOutcome {
	outcome := driving.ViewOutcome{View: view}

	data, err := s.imagegen.Generate(ctx, prompt, referenceURL)
	if err != nil {
		outcome.Err = fmt.Errorf("generating %s view: %w", view, err)
		return outcome
	}

	fileName := fmt.Sprintf("%s-%s-%s.png", productID, view, batchID)
	url, err := s.blob.Upload(ctx, data, fileName)
	if err != nil {
		outcome.Err = fmt.Errorf("uploading %s view: %w", view, err)
		return outcome
	}

	rev, err := s.ledger.CommitRevision(ctx, productID, view, batchID, url, editPrompt)
	if err != nil {
		outcome.Err = fmt.Errorf("committing %s view: %w", view, err)
		return outcome
	}

	outcome.Revision = rev
	return outcome
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *GenerationService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
