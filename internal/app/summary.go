package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codewatch/internal/engine"
	"github.com/blackwell-systems/codewatch/internal/output"
	"github.com/blackwell-systems/codewatch/internal/report"
)

var summaryFlagExts []string

var summaryCmd = &cobra.Command{
	Use:   "summary [directories...]",
	Short: "Codebase-wide totals and per-language breakdown",
	Long: `Summary scans the given directories (default: the current one) and
reports total files, code lines, the per-language breakdown, how many
files sit over the threshold, and the overall comment ratio.`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringSliceVar(&summaryFlagExts, "ext", nil, "File extensions to analyze (default: from config)")
	rootCmd.AddCommand(summaryCmd)
}

// summaryReport is the JSON output shape for the summary command.
type summaryReport struct {
	report.CodebaseSummary
	Warnings []engine.Warning `json:"warnings"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	e, cfg, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	req := engine.Request{
		Directories:     args,
		FileTypes:       summaryFlagExts,
		MaxLines:        cfg.Scan.MaxLines,
		ExcludeComments: true,
	}
	if len(req.FileTypes) == 0 {
		req.FileTypes = cfg.Scan.FileTypes
	}

	summary, warnings, err := e.Summarize(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("summarizing: %w", err)
	}

	if flagJSON {
		if warnings == nil {
			warnings = []engine.Warning{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaryReport{CodebaseSummary: *summary, Warnings: warnings})
	}

	renderSummary(summary)
	printWarnings(warnings)
	return nil
}

func renderSummary(s *report.CodebaseSummary) {
	fmt.Println(output.Section("Codebase Summary"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Files analyzed:"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.TotalFiles)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total lines:"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.TotalLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Code lines:"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.TotalCodeLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render(fmt.Sprintf("Over %d lines:", s.MaxLines)),
		output.StyleValue.Render(fmt.Sprintf("%d", s.LargeFileCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Comment ratio:"),
		output.RatioBar(s.CommentRatio, 20))

	if len(s.Languages) == 0 {
		fmt.Println()
		return
	}

	// Stable order: most code first.
	names := make([]string, 0, len(s.Languages))
	for name := range s.Languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Languages[names[i]].CodeLines != s.Languages[names[j]].CodeLines {
			return s.Languages[names[i]].CodeLines > s.Languages[names[j]].CodeLines
		}
		return names[i] < names[j]
	})

	fmt.Println(output.Section("By Language"))
	fmt.Println()
	tbl := output.NewTable("Language", "Files", "Code", "Total")
	for _, name := range names {
		lt := s.Languages[name]
		tbl.AddRow(
			name,
			fmt.Sprintf("%d", lt.Files),
			fmt.Sprintf("%d", lt.CodeLines),
			fmt.Sprintf("%d", lt.TotalLines),
		)
	}
	tbl.Print()
	fmt.Println()
}
