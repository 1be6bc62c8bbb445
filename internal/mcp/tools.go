// ABOUTME: MCP tool implementations for article categorization operations.
// ABOUTME: Registers categorize_articles, load_articles, and search_articles.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CodeAKrome/NewsKitten/internal/categorize"
	"github.com/CodeAKrome/NewsKitten/internal/config"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "categorize_articles",
		Description: "Run the full categorization pipeline on a TSV file of article titles: embed, persist vectors, cluster, name categories, and write the report file.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"input": {"type": "string", "description": "Input TSV file path"},
				"output": {"type": "string", "description": "Output JSON file path (default categories.json)"},
				"min_cluster_size": {"type": "number", "description": "Minimum articles per category (default 2)"},
				"similarity_threshold": {"type": "number", "description": "Similarity threshold in (0, 1] (default 0.75)"},
				"persist_dir": {"type": "string", "description": "Vector store persistence directory"}
			},
			"required": ["input"]
		}`),
	}, s.handleCategorize)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "load_articles",
		Description: "Load articles from a TSV file. Returns the total row count and the first N articles as {article_id, title}.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"input": {"type": "string", "description": "Input TSV file path"},
				"limit": {"type": "number", "description": "Maximum articles to return (default 50)"}
			},
			"required": ["input"]
		}`),
	}, s.handleLoad)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_articles",
		Description: "Search stored articles by semantic similarity to a query. Requires a prior categorize run against the same persist directory.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query text"},
				"persist_dir": {"type": "string", "description": "Vector store persistence directory"},
				"n_results": {"type": "number", "description": "Number of results (default 5)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearch)
}

func (s *Server) handleCategorize(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Input               string  `json:"input"`
		Output              string  `json:"output"`
		MinClusterSize      int     `json:"min_cluster_size"`
		SimilarityThreshold float64 `json:"similarity_threshold"`
		PersistDir          string  `json:"persist_dir"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Input == "" {
		return toolError("input is required"), nil
	}
	if args.Output == "" {
		args.Output = config.DefaultOutputFile
	}
	if args.MinClusterSize <= 0 {
		args.MinClusterSize = config.DefaultMinClusterSize
	}
	if args.SimilarityThreshold == 0 {
		args.SimilarityThreshold = config.DefaultSimilarityThreshold
	}
	if args.PersistDir == "" {
		args.PersistDir = s.persistDir
	}

	summary, err := s.pipeline.Categorize(ctx, categorize.CategorizeOptions{
		InputPath:           args.Input,
		OutputPath:          args.Output,
		MinClusterSize:      args.MinClusterSize,
		SimilarityThreshold: args.SimilarityThreshold,
		PersistDir:          args.PersistDir,
	})
	if err != nil {
		return toolError("categorization failed: %v", err), nil
	}
	return toolJSON(summary)
}

func (s *Server) handleLoad(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Input string `json:"input"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Input == "" {
		return toolError("input is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 50
	}

	result, err := s.pipeline.Load(ctx, args.Input, args.Limit)
	if err != nil {
		return toolError("load failed: %v", err), nil
	}
	return toolJSON(result)
}

func (s *Server) handleSearch(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query      string `json:"query"`
		PersistDir string `json:"persist_dir"`
		NResults   int    `json:"n_results"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if args.PersistDir == "" {
		args.PersistDir = s.persistDir
	}
	if args.NResults <= 0 {
		args.NResults = 5
	}

	result, err := s.pipeline.Search(ctx, args.Query, args.PersistDir, args.NResults)
	if err != nil {
		return toolError("search failed: %v", err), nil
	}
	return toolJSON(result)
}

// toolJSON wraps a result object as a JSON text content block.
func toolJSON(v any) (*gomcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError("marshal result: %v", err), nil
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: string(data)}},
	}, nil
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
