package cmd

import (
	"github.com/hpmalabs/hpma/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the HPMA MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents score responses, classify
probability vectors, evaluate rule conditions and render reports via standard tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
