// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants read and edit tech packs and browse the revision
// ledger over stdio or HTTP.
package mcp

import "errors"

// ErrMissingTechPackService is returned when the tech pack service is not provided.
var ErrMissingTechPackService = errors.New("mcp: tech pack service is required")
