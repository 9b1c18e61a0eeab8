// Package app contains the Cobra command tree for codewatch.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codewatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagNoCache bool
	flagWorkers int
)

var rootCmd = &cobra.Command{
	Use:   "codewatch",
	Short: "Find monolith files and complexity hot spots in a codebase",
	Long: `codewatch scans a codebase, counts comment-excluded code lines per
file, and scores structural complexity from function, class, and control
counts. It surfaces the files most in need of splitting.

Run a subcommand, or 'codewatch mcp' to serve the same analysis to an
MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Color goes away for pipes and for anyone who asked.
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("codewatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  detect    Rank files whose code-line count exceeds the threshold")
		fmt.Println("  file      Analyze a single file's line counts and complexity")
		fmt.Println("  summary   Codebase-wide totals and per-language breakdown")
		fmt.Println("  cache     Inspect or clear the metrics cache")
		fmt.Println("  mcp       Run an MCP stdio server exposing the analysis tools")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/codewatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the metrics cache for this run")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Analysis worker count (default: one per CPU)")
}
