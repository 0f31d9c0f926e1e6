// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the progress MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"PhotoChop Progress Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: get_progress ---
	s.AddTool(mcp.NewTool("get_progress",
		mcp.WithDescription("Scan the monitored directory and report completion progress with rate, trend, ETA and stagnation analytics. Appends one snapshot to the history."),
		mcp.WithString("base_path", mcp.Description("Directory to scan (defaults to the configured base path).")),
	), h.handleGetProgress)

	// --- 2. Tool: get_pending_folders ---
	s.AddTool(mcp.NewTool("get_pending_folders",
		mcp.WithDescription("List folders that still have no marker output files. Read-only; does not touch the history."),
		mcp.WithString("base_path", mcp.Description("Directory to scan (defaults to the configured base path).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of folders returned.")),
	), h.handleGetPendingFolders)

	// --- 3. Tool: get_history ---
	s.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Return persisted progress snapshots in ascending time order."),
		mcp.WithNumber("limit", mcp.Description("Return only the most recent N snapshots.")),
	), h.handleGetHistory)

	return s
}

// StartMCPServer starts the progress MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
