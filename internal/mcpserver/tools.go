package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/endjin/deadcode/internal/report"
	"github.com/endjin/deadcode/internal/service/analysis"
)

// ExtractInput configures the extract_inventory tool.
type ExtractInput struct {
	Modules []string `json:"modules" jsonschema:"Paths to module metadata documents (JSON)."`
}

// TraceInput configures the parse_trace tool.
type TraceInput struct {
	Traces []string `json:"traces" jsonschema:"Paths to execution trace files, binary or text."`
}

// AnalyzeInput configures the analyze_redundancy tool.
type AnalyzeInput struct {
	Modules  []string `json:"modules" jsonschema:"Paths to module metadata documents (JSON)."`
	Traces   []string `json:"traces" jsonschema:"Paths to execution trace files, binary or text."`
	RepoPath string   `json:"repo_path,omitempty" jsonschema:"Source checkout to stamp the report revision from."`
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleExtractInventory(ctx context.Context, req *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, any, error) {
	if len(input.Modules) == 0 {
		return toolError("no module metadata documents given")
	}

	svc := analysis.New()
	var skipped []string
	inv, err := svc.ExtractInventory(ctx, input.Modules, analysis.ExtractOptions{
		OnSkip: func(path string, err error) { skipped = append(skipped, path) },
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Methods any      `json:"methods" toon:"methods"`
		Skipped []string `json:"skipped,omitempty" toon:"skipped,omitempty"`
	}{inv.Methods, skipped}
	return toolResult(out)
}

func handleParseTrace(ctx context.Context, req *mcp.CallToolRequest, input TraceInput) (*mcp.CallToolResult, any, error) {
	if len(input.Traces) == 0 {
		return toolError("no trace files given")
	}

	svc := analysis.New()
	var skipped []string
	result, err := svc.ParseTraces(input.Traces, analysis.TraceOptions{
		OnSkip: func(path string, err error) { skipped = append(skipped, path) },
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Scenarios []string `json:"scenarios" toon:"scenarios"`
		Executed  []string `json:"executed" toon:"executed"`
		Skipped   []string `json:"skipped,omitempty" toon:"skipped,omitempty"`
	}{result.Scenarios, result.Executed.Keys(), skipped}
	return toolResult(out)
}

func handleAnalyzeRedundancy(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	if len(input.Modules) == 0 {
		return toolError("no module metadata documents given")
	}

	svc := analysis.New()
	skip := func(path string, err error) {}
	r, err := svc.Analyze(ctx, analysis.AnalyzeOptions{
		ModulePaths: input.Modules,
		TracePaths:  input.Traces,
		RepoPath:    input.RepoPath,
		Extract:     analysis.ExtractOptions{OnSkip: skip},
		Trace:       analysis.TraceOptions{OnSkip: skip},
	})
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(report.NewGenerator().Build(r))
}
