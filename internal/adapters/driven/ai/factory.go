// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	openaiimg "github.com/stitchworks/techpack-cli/internal/adapters/driven/imagegen/openai"
	anthropicllm "github.com/stitchworks/techpack-cli/internal/adapters/driven/llm/anthropic"
	openaillm "github.com/stitchworks/techpack-cli/internal/adapters/driven/llm/openai"
	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateCompletionService creates a completion service and validates
// connectivity. Returns the service if successful, or an error with guidance.
func CreateAndValidateCompletionService(settings *domain.CompletionSettings) (driven.CompletionService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateCompletionService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'techpack config' to fix",
			domain.ErrCompletionUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'techpack config' to fix",
			domain.ErrCompletionUnavailable, err)
	}

	return svc, nil
}

// CreateCompletionService creates the appropriate completion service based on
// settings. Returns nil if the provider is not configured.
func CreateCompletionService(settings *domain.CompletionSettings) (driven.CompletionService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewCompletionService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewCompletionService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", settings.Provider)
	}
}

// CreateImageGenerator creates an image generator based on settings.
// Returns nil if image generation is not configured.
func CreateImageGenerator(settings *domain.ImageGenSettings) (driven.ImageGenerator, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	gen, err := openaiimg.NewImageGenerator(openaiimg.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		RateLimit: openaiimg.RateLimitConfig{
			RequestsPerSecond: settings.RequestsPerSecond,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageGenUnavailable, err)
	}
	return gen, nil
}

// ValidateCompletionConfig validates a completion configuration by creating a
// service and pinging it. Intended for use when settings are changed.
func ValidateCompletionConfig(settings *domain.CompletionSettings) error {
	if !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateCompletionService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
