package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitchworks/techpack-cli/internal/adapters/driving/mcp"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  techpack mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  techpack mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "techpack": {
        "command": "/path/to/techpack",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	// The editor is optional: without a configured completion provider
	// the server still exposes direct edits and the revision ledger.
	var editor driving.EditorService
	if e, completion, err := buildEditor(); err == nil {
		editor = e
		defer completion.Close()
	} else {
		logger.Warn("mcp: conversational editing disabled: %v", err)
	}

	ports := &mcp.Ports{
		TechPack:  techpackService,
		Editor:    editor,
		Revisions: revisionService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
