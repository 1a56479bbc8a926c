package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

// Ensure EditorService implements the interface.
var _ driving.EditorService = (*EditorService)(nil)

// contextTurns is how many recent transcript messages are sent as
// grounding context with each completion call.
const contextTurns = 10

// defaultChatSystemPrompt is the fallback system prompt when no
// PromptStore is configured.
const defaultChatSystemPrompt = `You are a tech pack assistant for a product design team.
You help designers review and refine a manufacturing specification document.
Answer questions about the tech pack concisely and accurately.
When the user asks for a change, explain what you changed in plain language.`

// defaultEditInstructions teaches the model the fenced edit-action block
// format. It is only attached when the user's intent is an edit.
const defaultEditInstructions = `When the user requests a change to the tech pack, include exactly one fenced block in your reply:

` + "```techpack-edit" + `
{"type": "edit", "section": "<section>", "field": "<optional nested field>", "value": <new value>, "description": "<short summary>"}
` + "```" + `

"section" must be one of: %s.
Omit "field" unless you are changing a single nested key of an object section.
Everything outside the block is shown to the user as your reply.`

// EditorService is the edit application orchestrator. Each user turn runs
// classify, context building, one completion call, extraction, apply, and
// reporting, in that order, and always appends exactly one terminal
// assistant message to the session transcript.
type EditorService struct {
	classifier  driving.IntentClassifier
	extractor   *Extractor
	completion  driven.CompletionService
	techpack    driving.TechPackService
	promptStore driven.PromptStore
}

// NewEditorService creates the orchestrator.
func NewEditorService(
	classifier driving.IntentClassifier,
	extractor *Extractor,
	completion driven.CompletionService,
	techpack driving.TechPackService,
) *EditorService {
	return &EditorService{
		classifier: classifier,
		extractor:  extractor,
		completion: completion,
		techpack:   techpack,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *EditorService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// HandleMessage processes one user message for the session.
//
// Collaborator failures are reported conversationally: the returned
// message carries IsError and the method returns a nil error, leaving the
// session usable for the next turn. The only hard failures are a missing
// completion service and a turn already in flight.
func (s *EditorService) HandleMessage(ctx context.Context, session *domain.Session, userText string) (*domain.Message, error) {
	if s.completion == nil {
		return nil, domain.ErrCompletionUnavailable
	}
	if err := session.BeginTurn(); err != nil {
		return nil, err
	}
	defer session.EndTurn()

	logger.Section("editor turn")

	// Classifying.
	intent := s.classifier.Classify(userText)
	logger.Debug("editor: classified intent=%s", intent)

	// ContextBuilding. History is captured before this turn's messages
	// are appended so the user message is not sent twice.
	history := completionHistory(session.Recent(contextTurns))
	systemPrompt := s.buildSystemPrompt(ctx, session, intent)

	session.Append(domain.Message{
		ID:      uuid.NewString(),
		Role:    domain.RoleUser,
		Content: userText,
	})
	placeholder := session.AppendLoading(uuid.NewString())

	// AwaitingCompletion. A single call, never retried here; on failure
	// transition straight to reporting.
	completionText, err := s.completion.Complete(ctx, systemPrompt, history, userText)
	if err != nil {
		logger.Warn("editor: completion failed: %v", err)
		msg := domain.Message{
			Content: "I couldn't reach the completion service, so nothing was changed. Please try again.",
			IsError: true,
		}
		session.ResolveLoading(placeholder.ID, msg)
		resolved := msg
		resolved.ID = placeholder.ID
		resolved.Role = domain.RoleAssistant
		return &resolved, nil
	}

	// Extracting. A malformed block is the same as no block: free-text
	// generation legitimately produces either.
	action, extractErr := s.extractor.Extract(completionText)
	var parseErr *ParseError
	if errors.As(extractErr, &parseErr) {
		logger.Debug("editor: discarding malformed edit block: %v", parseErr)
		action = nil
	}

	// Applying.
	var applyErr error
	if action != nil {
		session.SetActiveSection(action.Section)
		_, applyErr = s.techpack.SetSection(ctx, session.ProductID, action.Section, action.Field, action.Value)
		if applyErr != nil {
			logger.Warn("editor: apply failed for %s: %v", action.Section, applyErr)
		}
	}

	// Reporting.
	reply := buildReply(completionText, action, applyErr)
	msg := domain.Message{
		Content:    reply,
		EditAction: action,
		IsError:    applyErr != nil,
	}
	session.ResolveLoading(placeholder.ID, msg)

	resolved := msg
	resolved.ID = placeholder.ID
	resolved.Role = domain.RoleAssistant
	return &resolved, nil
}

// buildSystemPrompt assembles the bounded grounding context: the base
// system prompt, the current tech pack summary, the active UI section,
// and, for edit intents only, the edit-action schema instructions.
func (s *EditorService) buildSystemPrompt(ctx context.Context, session *domain.Session, intent domain.Intent) string {
	var b strings.Builder
	b.WriteString(s.loadPrompt(driven.PromptChatSystem, defaultChatSystemPrompt))

	if summary, err := s.techpack.Summary(ctx, session.ProductID); err == nil && summary != "" {
		b.WriteString("\n\nCurrent tech pack:\n")
		b.WriteString(summary)
	} else if err != nil {
		logger.Debug("editor: no tech pack summary available: %v", err)
	}

	if active := session.ActiveSection(); active != "" {
		b.WriteString("\nThe user is currently viewing the ")
		b.WriteString(active)
		b.WriteString(" section.\n")
	}

	if intent == domain.IntentEdit {
		instructions := s.loadPrompt(driven.PromptEditInstructions, defaultEditInstructions)
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf(instructions, strings.Join(domain.SectionNames(), ", ")))
	}

	return b.String()
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *EditorService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// buildReply combines the completion text, edit block stripped, with an
// explicit success or failure annotation when an edit was attempted.
func buildReply(completionText string, action *domain.EditAction, applyErr error) string {
	reply := StripEditBlock(completionText)
	if action == nil {
		return reply
	}

	var note string
	if applyErr != nil {
		note = "I could not apply this change automatically; please update the section manually."
	} else if action.Description != "" {
		note = "Applied: " + action.Description
	} else {
		note = "Applied the change to " + action.Section + "."
	}

	if reply == "" {
		return note
	}
	return reply + "\n\n" + note
}

// completionHistory converts transcript messages into completion-service
// chat messages, skipping loading placeholders.
func completionHistory(messages []domain.Message) []driven.ChatMessage {
	out := make([]driven.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Loading {
			continue
		}
		out = append(out, driven.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
