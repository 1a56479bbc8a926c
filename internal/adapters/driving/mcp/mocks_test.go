package mcp

import (
	"context"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// mockTechPackService is a mock implementation of driving.TechPackService.
type mockTechPackService struct {
	pack    *domain.TechPack
	stored  domain.Value
	summary string
	ids     []string
	err     error

	setSectionCalls []setSectionCall
}

type setSectionCall struct {
	productID string
	section   string
	field     string
	candidate any
}

func (m *mockTechPackService) Create(_ context.Context, productID, name string) (*domain.TechPack, error) {
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewDefaultTechPack(productID, name), nil
}

func (m *mockTechPackService) Get(_ context.Context, _ string) (*domain.TechPack, error) {
	return m.pack, m.err
}

func (m *mockTechPackService) SetSection(_ context.Context, productID, section, field string, candidate any) (domain.Value, error) {
	m.setSectionCalls = append(m.setSectionCalls, setSectionCall{productID, section, field, candidate})
	return m.stored, m.err
}

func (m *mockTechPackService) Summary(_ context.Context, _ string) (string, error) {
	return m.summary, m.err
}

func (m *mockTechPackService) List(_ context.Context) ([]string, error) {
	return m.ids, m.err
}

// mockEditorService is a mock implementation of driving.EditorService.
type mockEditorService struct {
	msg *domain.Message
	err error

	sessions []string
	texts    []string
}

func (m *mockEditorService) HandleMessage(_ context.Context, session *domain.Session, userText string) (*domain.Message, error) {
	m.sessions = append(m.sessions, session.ID)
	m.texts = append(m.texts, userText)
	return m.msg, m.err
}

// mockRevisionService is a mock implementation of driving.RevisionService.
type mockRevisionService struct {
	batches []domain.RevisionBatch
	rev     *domain.ViewRevision
	url     string
	err     error

	deleted []string
}

func (m *mockRevisionService) NextRevisionNumber(_ context.Context, _ string, _ domain.ViewType) (int, error) {
	return 1, m.err
}

func (m *mockRevisionService) CommitRevision(_ context.Context, _ string, _ domain.ViewType, _, _, _ string) (*domain.ViewRevision, error) {
	return m.rev, m.err
}

func (m *mockRevisionService) SoftDelete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockRevisionService) ListGrouped(_ context.Context, _ string) ([]domain.RevisionBatch, error) {
	return m.batches, m.err
}

func (m *mockRevisionService) ActiveImageURL(_ context.Context, _ string, _ domain.ViewType) (string, error) {
	return m.url, m.err
}
