package mcp

import (
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// TechPack manages tech pack documents.
	TechPack driving.TechPackService

	// Editor runs conversational edit turns. Optional; the edit tool is
	// unavailable without it.
	Editor driving.EditorService

	// Revisions is the image revision ledger. Optional; revision tools
	// are unavailable without it.
	Revisions driving.RevisionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.TechPack == nil {
		return ErrMissingTechPackService
	}
	// Editor and Revisions are optional
	return nil
}
