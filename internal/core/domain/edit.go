package domain

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	// IntentEdit requests a change to the tech pack.
	IntentEdit Intent = "edit"

	// IntentQuestion asks about the tech pack or process.
	IntentQuestion Intent = "question"

	// IntentChat is general conversation.
	IntentChat Intent = "chat"
)

// EditAction is a structured, validated instruction to replace one
// section's (or nested field's) value. It is ephemeral: attached to the
// conversation message that produced it, never persisted on its own.
type EditAction struct {
	// Section is the target section identifier.
	Section string

	// Field is the nested key within an object-shaped section, empty
	// when the whole section is replaced.
	Field string

	// Value is the post-coercion, shape-valid replacement value.
	Value Value

	// Description is a short human-readable summary of the change.
	Description string
}
