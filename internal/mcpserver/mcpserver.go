// Package mcpserver exposes the dead-method analysis pipeline as MCP
// tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server with all tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "deadcode",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "extract_inventory",
		Description: "Extract the static method inventory from module metadata " +
			"documents. Every declared method is classified into a removal-risk " +
			"tier (high, medium, low, do-not-remove) from its visibility, " +
			"modifiers, and attributes.",
	}, handleExtractInventory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "parse_trace",
		Description: "Parse execution trace files (binary event stream or " +
			"Method Enter text log, auto-detected) into the deduplicated set of " +
			"canonical method keys that were observed running.",
	}, handleParseTrace)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_redundancy",
		Description: "Run the full dead-method analysis: extract the inventory " +
			"from module metadata, ingest execution traces, and report every " +
			"method that never ran, grouped by removal confidence.",
	}, handleAnalyzeRedundancy)
}
