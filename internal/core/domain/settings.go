package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for completions or imagery.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API (completions only).
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud API)"
	case AIProviderAnthropic:
		return "Anthropic (cloud API)"
	default:
		return unknownDescription
	}
}

// CompletionSettings configures the text-completion provider.
type CompletionSettings struct {
	// Provider selects the completion backend.
	Provider AIProvider

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Model is the model identifier, empty for the provider default.
	Model string
}

// IsConfigured returns true when enough is set to build a service.
func (s *CompletionSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid() && s.APIKey != ""
}

// ImageGenSettings configures the image-generation provider.
type ImageGenSettings struct {
	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Model is the image model identifier, empty for the default.
	Model string

	// RequestsPerSecond bounds the sustained request rate, 0 for the
	// adapter default.
	RequestsPerSecond float64
}

// IsConfigured returns true when enough is set to build a service.
func (s *ImageGenSettings) IsConfigured() bool {
	return s != nil && s.APIKey != ""
}

// Settings aggregates all user-configurable service settings.
type Settings struct {
	// Completion configures the text-completion provider.
	Completion CompletionSettings

	// ImageGen configures the image-generation provider.
	ImageGen ImageGenSettings

	// DataDir is the root directory for local storage, empty for the
	// default (~/.techpack).
	DataDir string
}
