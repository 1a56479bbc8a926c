package driving

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// EditorService runs conversational editing turns against a tech pack.
// Each turn yields exactly one terminal assistant message, even on
// failure; the transcript never silently drops a turn.
type EditorService interface {
	// HandleMessage processes one user message for the session: it
	// classifies intent, consults the completion service, applies any
	// extracted edit to the tech pack, and appends the assistant reply
	// to the session transcript. The returned message is the terminal
	// assistant message for the turn.
	HandleMessage(ctx context.Context, session *domain.Session, userText string) (*domain.Message, error)
}

// IntentClassifier classifies a raw user utterance. It is a seam: the
// deterministic rule list can be swapped for a learned classifier without
// touching callers.
type IntentClassifier interface {
	// Classify returns the intent of the utterance. Edit patterns take
	// precedence over question patterns, so an edit phrased as a
	// question still classifies as an edit.
	Classify(utterance string) domain.Intent
}
