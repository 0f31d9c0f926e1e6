package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aaronvstory/photochop-progress-analyzer/core"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// progressView is the JSON shape returned by the get_progress tool.
type progressView struct {
	Scan      schema.ScanResult      `json:"scan"`
	Analytics schema.AnalyticsResult `json:"analytics"`
}

func (h *toolHandler) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("base_path", ""); p != "" {
		cfg.BasePath = p
	}

	scan, result, err := core.GetProgressResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(progressView{Scan: scan, Analytics: result}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPendingFolders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("base_path", ""); p != "" {
		cfg.BasePath = p
	}
	limit := request.GetInt("limit", 0)

	scanner := contract.NewLocalScanner(cfg.MarkerPrefix, cfg.ImageExts)
	scan, err := scanner.Scan(ctx, cfg.BasePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	pending := scan.Pending()
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}

	jsonData, _ := json.MarshalIndent(pending, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	limit := request.GetInt("limit", 0)

	store, err := core.OpenStore(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open history: %v", err)), nil
	}
	defer func() { _ = store.Close() }()

	snaps, err := store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load history: %v", err)), nil
	}
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[len(snaps)-limit:]
	}

	jsonData, _ := json.MarshalIndent(snaps, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
