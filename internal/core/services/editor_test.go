package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchworks/techpack-cli/internal/adapters/driven/storage/memory"
	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
)

// mockCompletion returns a canned response and records what it was asked.
type mockCompletion struct {
	response     string
	err          error
	systemPrompt string
	history      []driven.ChatMessage
	userMessage  string
	calls        int
}

func (m *mockCompletion) Complete(_ context.Context, systemPrompt string, history []driven.ChatMessage, userMessage string) (string, error) {
	m.calls++
	m.systemPrompt = systemPrompt
	m.history = history
	m.userMessage = userMessage
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockCompletion) ModelName() string { return "mock" }

func (m *mockCompletion) Ping(_ context.Context) error { return nil }

func (m *mockCompletion) Close() error { return nil }

func newTestEditor(t *testing.T, completion driven.CompletionService) (*EditorService, *TechPackService) {
	t.Helper()
	techpacks := NewTechPackService(memory.NewTechPackStore())
	_, err := techpacks.Create(context.Background(), "tote-01", "Aria Tote")
	require.NoError(t, err)

	editor := NewEditorService(NewRuleClassifier(), NewExtractor(), completion, techpacks)
	return editor, techpacks
}

func TestEditorService_HandleMessage_AppliesEdit(t *testing.T) {
	completion := &mockCompletion{
		response: "Renamed it.\n\n```techpack-edit\n" +
			`{"type": "edit", "section": "productName", "value": "Nova Tote", "description": "Renamed to Nova Tote"}` +
			"\n```",
	}
	editor, techpacks := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	msg, err := editor.HandleMessage(context.Background(), session, "change the product name to Nova Tote")
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.Equal(t, domain.RoleAssistant, msg.Role)
	assert.False(t, msg.IsError)
	assert.Contains(t, msg.Content, "Renamed it.")
	assert.Contains(t, msg.Content, "Applied: Renamed to Nova Tote")
	assert.NotContains(t, msg.Content, "techpack-edit", "edit block is stripped from the reply")

	require.NotNil(t, msg.EditAction)
	assert.Equal(t, domain.SectionProductName, msg.EditAction.Section)

	pack, err := techpacks.Get(context.Background(), "tote-01")
	require.NoError(t, err)
	assert.Equal(t, domain.Scalar("Nova Tote"), pack.Sections[domain.SectionProductName])

	// Active section follows the edit.
	assert.Equal(t, domain.SectionProductName, session.ActiveSection())
}

func TestEditorService_HandleMessage_ExactlyOneTerminalMessage(t *testing.T) {
	completion := &mockCompletion{response: "Just chatting."}
	editor, _ := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	_, err := editor.HandleMessage(context.Background(), session, "hello")
	require.NoError(t, err)

	msgs := session.Messages()
	require.Len(t, msgs, 2, "one user message, one terminal assistant message")
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.False(t, msgs[1].Loading, "the loading placeholder is resolved")
}

func TestEditorService_HandleMessage_EditInstructionsOnlyForEdits(t *testing.T) {
	completion := &mockCompletion{response: "ok"}
	editor, _ := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	_, err := editor.HandleMessage(context.Background(), session, "what is the price?")
	require.NoError(t, err)
	assert.NotContains(t, completion.systemPrompt, "techpack-edit",
		"question turns omit the edit-action schema")
	assert.Contains(t, completion.systemPrompt, "productName: Aria Tote",
		"the tech pack summary grounds every turn")

	_, err = editor.HandleMessage(context.Background(), session, "change the price to 120")
	require.NoError(t, err)
	assert.Contains(t, completion.systemPrompt, "techpack-edit",
		"edit turns include the edit-action schema")
}

func TestEditorService_HandleMessage_HistoryExcludesCurrentTurn(t *testing.T) {
	completion := &mockCompletion{response: "first reply"}
	editor, _ := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	_, err := editor.HandleMessage(context.Background(), session, "first message")
	require.NoError(t, err)
	assert.Empty(t, completion.history, "first turn has no history")
	assert.Equal(t, "first message", completion.userMessage)

	completion.response = "second reply"
	_, err = editor.HandleMessage(context.Background(), session, "second message")
	require.NoError(t, err)

	require.Len(t, completion.history, 2)
	assert.Equal(t, "first message", completion.history[0].Content)
	assert.Equal(t, "first reply", completion.history[1].Content)
}

func TestEditorService_HandleMessage_CompletionFailure(t *testing.T) {
	completion := &mockCompletion{err: errors.New("connection refused")}
	editor, _ := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	msg, err := editor.HandleMessage(context.Background(), session, "change the name to X")
	require.NoError(t, err, "collaborator failure is reported conversationally, not returned")
	require.NotNil(t, msg)

	assert.True(t, msg.IsError)
	assert.Contains(t, msg.Content, "nothing was changed")

	// The session remains usable for the next turn.
	completion.err = nil
	completion.response = "ok now"
	_, err = editor.HandleMessage(context.Background(), session, "hello again")
	assert.NoError(t, err)
}

func TestEditorService_HandleMessage_MalformedBlockIsNoEdit(t *testing.T) {
	completion := &mockCompletion{
		response: "I tried.\n\n```techpack-edit\n{broken json\n```",
	}
	editor, techpacks := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	msg, err := editor.HandleMessage(context.Background(), session, "change the name to X")
	require.NoError(t, err)

	assert.Nil(t, msg.EditAction)
	assert.False(t, msg.IsError)
	assert.Contains(t, msg.Content, "I tried.")

	pack, err := techpacks.Get(context.Background(), "tote-01")
	require.NoError(t, err)
	assert.Equal(t, domain.Scalar("Aria Tote"), pack.Sections[domain.SectionProductName],
		"a malformed block changes nothing")
}

func TestEditorService_HandleMessage_ApplyFailureAnnotated(t *testing.T) {
	completion := &mockCompletion{
		response: "Done.\n\n```techpack-edit\n" +
			`{"type": "edit", "section": "productName", "value": "X"}` +
			"\n```",
	}
	techpacks := NewTechPackService(memory.NewTechPackStore())
	// No tech pack created: the apply step fails with not-found.
	editor := NewEditorService(NewRuleClassifier(), NewExtractor(), completion, techpacks)
	session := domain.NewSession("s1", "missing")

	msg, err := editor.HandleMessage(context.Background(), session, "change the name to X")
	require.NoError(t, err)

	assert.True(t, msg.IsError)
	assert.Contains(t, msg.Content, "could not apply this change")
}

func TestEditorService_HandleMessage_SessionBusy(t *testing.T) {
	completion := &mockCompletion{response: "ok"}
	editor, _ := newTestEditor(t, completion)
	session := domain.NewSession("s1", "tote-01")

	require.NoError(t, session.BeginTurn())
	_, err := editor.HandleMessage(context.Background(), session, "hello")
	assert.ErrorIs(t, err, domain.ErrSessionBusy)
}

func TestEditorService_HandleMessage_NoCompletionService(t *testing.T) {
	techpacks := NewTechPackService(memory.NewTechPackStore())
	editor := NewEditorService(NewRuleClassifier(), NewExtractor(), nil, techpacks)

	_, err := editor.HandleMessage(context.Background(), domain.NewSession("s1", "p"), "hi")
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
}
