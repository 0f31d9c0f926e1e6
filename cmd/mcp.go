package cmd

import (
	"github.com/aaronvstory/photochop-progress-analyzer/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the photochop MCP server",
	Long:  `Launch an MCP server that allows AI agents to query batch progress via standard tools.`,
	// Stdout carries the protocol in MCP mode, so nothing else may print there.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
