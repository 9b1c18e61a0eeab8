package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codewatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing the analysis tools",
	Long: `Start a Model Context Protocol stdio server that an MCP client can
query. The server exposes three tools:

  detect_monoliths          Ranked list of files over the code-line threshold
  analyze_file_complexity   Line counts and complexity for a single file
  get_code_metrics_summary  Codebase-wide totals and language breakdown

Add to your MCP client configuration:
  {"mcpServers":{"codewatch":{"command":"codewatch","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, cfg, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcp.NewServer(e, cfg.Scan)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
