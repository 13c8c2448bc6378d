package cli

import (
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run hubcard as an MCP server",
	Long: `Run hubcard as an MCP (Model Context Protocol) server.

This exposes the Hub tools (list_models, get_model_info, get_model_card,
update_model_card) to LLM agents over a standardized protocol.

The server communicates over stdin/stdout using JSON-RPC 2.0; logs go
to stderr.

For use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "hubcard": {
        "command": "hubcard",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdout belongs to the MCP transport from here on.
		server, err := mcp.NewServer(mcp.Config{
			Name:    "hubcard",
			Version: currentVersionInfo().Version,
			Hub:     getHub(),
			Cards:   getService(),
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		if err := server.Run(cmd.Context(), &sdkmcp.StdioTransport{}); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
