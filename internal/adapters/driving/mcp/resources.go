package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for techpack resources.
	uriScheme = "techpack://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing products.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "products",
		Name:        "products",
		Description: "List of all tech pack product IDs",
		MIMEType:    "application/json",
	}, s.handleProductsResource)

	// Template for a single tech pack.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}",
		Name:        "tech-pack",
		Description: "Full tech pack document for a product",
		MIMEType:    "application/json",
	}, s.handleTechPackResource)

	// Template for the bounded summary used as LLM context.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}/summary",
		Name:        "tech-pack-summary",
		Description: "Bounded natural-language summary of a tech pack",
		MIMEType:    "text/plain",
	}, s.handleSummaryResource)
}

// handleProductsResource returns the IDs of all stored tech packs.
func (s *Server) handleProductsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	ids, err := s.ports.TechPack.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling products: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTechPackResource returns the full tech pack for a product.
func (s *Server) handleTechPackResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	productID := extractProductID(req.Params.URI, "")
	if productID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pack, err := s.ports.TechPack.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("getting tech pack: %w", err)
	}

	data, err := json.MarshalIndent(pack.Sections, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tech pack: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSummaryResource returns the bounded summary of a tech pack.
func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	productID := extractProductID(req.Params.URI, "/summary")
	if productID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	summary, err := s.ports.TechPack.Summary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("summarising tech pack: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     summary,
		}},
	}, nil
}

// extractProductID extracts the product ID from a URI like
// techpack://products/{productId}{suffix}.
func extractProductID(uri, suffix string) string {
	const prefix = uriScheme + "products/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	uri = strings.TrimPrefix(uri, prefix)

	if suffix != "" {
		if !strings.HasSuffix(uri, suffix) {
			return ""
		}
		uri = strings.TrimSuffix(uri, suffix)
	}

	if strings.Contains(uri, "/") {
		return ""
	}
	return uri
}
