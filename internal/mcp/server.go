// ABOUTME: MCP server initialization and configuration for newskitten.
// ABOUTME: Sets up the stdio server exposing categorization and search tools to AI agents.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CodeAKrome/NewsKitten/internal/categorize"
)

// Server wraps the MCP server around the categorization pipeline.
type Server struct {
	mcp        *gomcp.Server
	pipeline   *categorize.Pipeline
	persistDir string
}

// NewServer creates an MCP server exposing categorize, load, and search
// tools. persistDir is the default vector store location used when a tool
// call does not override it.
func NewServer(pipeline *categorize.Pipeline, persistDir string) (*Server, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	if persistDir == "" {
		return nil, fmt.Errorf("persist dir is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "newskitten",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:        mcpServer,
		pipeline:   pipeline,
		persistDir: persistDir,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
