package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/endjin/deadcode/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes the analysis
pipeline as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "deadcode": {
        "command": "deadcode",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - extract_inventory   Classified static method inventory
  - parse_trace         Executed method keys from trace files
  - analyze_redundancy  Full dead-method report`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
