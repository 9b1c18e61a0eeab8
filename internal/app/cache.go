package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codewatch/internal/config"
	"github.com/blackwell-systems/codewatch/internal/output"
	"github.com/blackwell-systems/codewatch/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the metrics cache",
	Long: `The metrics cache stores per-file analysis results keyed by path,
modification time, and size, so repeat scans only re-analyze files that
changed. Results are identical with or without it.`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and entry count",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached metrics",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*store.DB, string, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	db, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return nil, "", fmt.Errorf("opening cache: %w", err)
	}
	return db, cfg.Cache.Path, nil
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	db, path, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Count()
	if err != nil {
		return fmt.Errorf("counting entries: %w", err)
	}

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Cache path:"),
		path)
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Entries:"),
		output.StyleValue.Render(fmt.Sprintf("%d", n)))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db, _, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Println(output.StyleSuccess.Render("Cache cleared."))
	return nil
}
