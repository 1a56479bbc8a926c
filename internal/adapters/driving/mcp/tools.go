package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

// EditInput is the input schema for the techpack_edit tool.
type EditInput struct {
	ProductID   string `json:"product_id" jsonschema:"the product whose tech pack to edit"`
	Instruction string `json:"instruction" jsonschema:"a natural-language edit request or question"`
}

// EditOutput is the output schema for the techpack_edit tool.
type EditOutput struct {
	Reply       string `json:"reply"`
	Applied     bool   `json:"applied"`
	Section     string `json:"section,omitempty"`
	Field       string `json:"field,omitempty"`
	Description string `json:"description,omitempty"`
}

// SetSectionInput is the input schema for the techpack_set tool.
type SetSectionInput struct {
	ProductID string `json:"product_id" jsonschema:"the product whose tech pack to modify"`
	Section   string `json:"section" jsonschema:"the section identifier to set"`
	Field     string `json:"field,omitempty" jsonschema:"optional nested field within an object section"`
	Value     any    `json:"value" jsonschema:"the new value; coerced to the section's canonical shape"`
}

// SetSectionOutput is the output schema for the techpack_set tool.
type SetSectionOutput struct {
	Section string `json:"section"`
	Stored  any    `json:"stored"`
}

// RevisionListInput is the input schema for the revision_list tool.
type RevisionListInput struct {
	ProductID string `json:"product_id" jsonschema:"the product whose revision history to list"`
}

// RevisionListOutput is the output schema for the revision_list tool.
type RevisionListOutput struct {
	Batches []BatchOutput `json:"batches"`
	Count   int           `json:"count"`
}

// BatchOutput represents one revision batch.
type BatchOutput struct {
	BatchID    string           `json:"batch_id"`
	EditPrompt string           `json:"edit_prompt"`
	Active     bool             `json:"active"`
	CreatedAt  string           `json:"created_at"`
	Views      []RevisionOutput `json:"views"`
}

// RevisionOutput represents a single view revision.
type RevisionOutput struct {
	ID             string `json:"id"`
	ViewType       string `json:"view_type"`
	RevisionNumber int    `json:"revision_number"`
	ImageURL       string `json:"image_url"`
	Active         bool   `json:"active"`
}

// RevisionDeleteInput is the input schema for the revision_delete tool.
type RevisionDeleteInput struct {
	ID string `json:"id" jsonschema:"a revision id, or a batch id (batch- prefix) to delete the whole batch"`
}

// RevisionDeleteOutput is the output schema for the revision_delete tool.
type RevisionDeleteOutput struct {
	Deleted string `json:"deleted"`
	Batch   bool   `json:"batch"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "techpack_set",
		Description: "Set a tech pack section to a new value",
	}, s.handleSetSection)

	if s.ports.Editor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "techpack_edit",
			Description: "Apply a natural-language edit or question to a tech pack",
		}, s.handleEdit)
	}

	if s.ports.Revisions != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "revision_list",
			Description: "List image revision batches for a product",
		}, s.handleRevisionList)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "revision_delete",
			Description: "Soft-delete a revision or a whole batch",
		}, s.handleRevisionDelete)
	}
}

// handleEdit runs one conversational edit turn.
func (s *Server) handleEdit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditInput,
) (*mcp.CallToolResult, EditOutput, error) {
	if input.ProductID == "" {
		return nil, EditOutput{}, errors.New("product_id is required")
	}
	if input.Instruction == "" {
		return nil, EditOutput{}, errors.New("instruction is required")
	}

	sess := s.session(input.ProductID)
	msg, err := s.ports.Editor.HandleMessage(ctx, sess, input.Instruction)
	if err != nil {
		return nil, EditOutput{}, err
	}

	output := EditOutput{Reply: msg.Content}
	if msg.EditAction != nil && !msg.IsError {
		output.Applied = true
		output.Section = msg.EditAction.Section
		output.Field = msg.EditAction.Field
		output.Description = msg.EditAction.Description
	}

	return nil, output, nil
}

// handleSetSection sets a section value directly, bypassing the LLM.
func (s *Server) handleSetSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetSectionInput,
) (*mcp.CallToolResult, SetSectionOutput, error) {
	if input.ProductID == "" {
		return nil, SetSectionOutput{}, errors.New("product_id is required")
	}
	if !domain.KnownSection(input.Section) {
		return nil, SetSectionOutput{}, fmt.Errorf("%w: %s", domain.ErrUnknownSection, input.Section)
	}

	stored, err := s.ports.TechPack.SetSection(ctx, input.ProductID, input.Section, input.Field, input.Value)
	if err != nil {
		return nil, SetSectionOutput{}, err
	}

	return nil, SetSectionOutput{Section: input.Section, Stored: stored}, nil
}

// handleRevisionList lists revision batches for a product.
func (s *Server) handleRevisionList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RevisionListInput,
) (*mcp.CallToolResult, RevisionListOutput, error) {
	if input.ProductID == "" {
		return nil, RevisionListOutput{}, errors.New("product_id is required")
	}

	batches, err := s.ports.Revisions.ListGrouped(ctx, input.ProductID)
	if err != nil {
		return nil, RevisionListOutput{}, err
	}

	output := RevisionListOutput{
		Batches: make([]BatchOutput, len(batches)),
		Count:   len(batches),
	}
	for i, b := range batches {
		out := BatchOutput{
			BatchID:    b.BatchID,
			EditPrompt: b.EditPrompt,
			Active:     b.Active,
			CreatedAt:  b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for _, view := range domain.ViewTypes {
			rev, ok := b.Views[view]
			if !ok {
				continue
			}
			out.Views = append(out.Views, RevisionOutput{
				ID:             rev.ID,
				ViewType:       string(rev.ViewType),
				RevisionNumber: rev.RevisionNumber,
				ImageURL:       rev.ImageURL,
				Active:         rev.IsActive,
			})
		}
		output.Batches[i] = out
	}

	return nil, output, nil
}

// handleRevisionDelete soft-deletes a revision or batch.
func (s *Server) handleRevisionDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RevisionDeleteInput,
) (*mcp.CallToolResult, RevisionDeleteOutput, error) {
	if input.ID == "" {
		return nil, RevisionDeleteOutput{}, errors.New("id is required")
	}

	if err := s.ports.Revisions.SoftDelete(ctx, input.ID); err != nil {
		return nil, RevisionDeleteOutput{}, err
	}

	return nil, RevisionDeleteOutput{
		Deleted: input.ID,
		Batch:   domain.IsBatchID(input.ID),
	}, nil
}
