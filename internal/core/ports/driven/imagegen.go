package driven

import "context"

// ImageGenerator produces product view imagery. A reference image keeps
// regenerated views stylistically consistent with the current imagery.
type ImageGenerator interface {
	// Generate renders an image for the prompt. referenceURL locates an
	// existing image to ground the style; it may be empty for an initial
	// generation. The returned bytes are the encoded image.
	Generate(ctx context.Context, prompt, referenceURL string) ([]byte, error)

	// ModelName returns the name of the image model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
