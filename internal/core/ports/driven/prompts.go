package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptChatSystem is the base system prompt for the assistant.
	// This prompt has no format placeholders.
	PromptChatSystem = "chat_system"

	// PromptEditInstructions teaches the model the fenced edit-action
	// block format. The template expects a %s placeholder for the list
	// of recognised section identifiers.
	PromptEditInstructions = "edit_instructions"

	// PromptViewEdit is the per-view image-edit prompt. The template
	// expects %s (view type) and %s (edit instruction) placeholders.
	PromptViewEdit = "view_edit"

	// PromptViewInitial is the per-view initial generation prompt. The
	// template expects %s (view type) and %s (product description)
	// placeholders.
	PromptViewInitial = "view_initial"
)

// PromptStoreAware is an optional interface for services that can use
// custom prompts. Services implementing it can have their templates
// customised by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable
	// prompts. If not set, the service uses hardcoded defaults.
	SetPromptStore(store PromptStore)
}
