package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codewatch/internal/engine"
	"github.com/blackwell-systems/codewatch/internal/output"
	"github.com/blackwell-systems/codewatch/internal/report"
)

var (
	detectFlagMaxLines        int
	detectFlagTop             int
	detectFlagExts            []string
	detectFlagIncludeComments bool
	detectFlagNoMetrics       bool
)

var detectCmd = &cobra.Command{
	Use:   "detect [directories...]",
	Short: "Rank files whose code-line count exceeds the threshold",
	Long: `Detect scans the given directories (default: the current one),
counts comment-excluded code lines per file, and lists the files over
the threshold, largest first. Each entry carries structure counts and a
complexity score (functions + 2*classes + control structures).`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().IntVar(&detectFlagMaxLines, "max-lines", 0, "Code-line threshold (default: from config, 140)")
	detectCmd.Flags().IntVar(&detectFlagTop, "top", -1, "Number of files to show, 0 for all (default: from config, 20)")
	detectCmd.Flags().StringSliceVar(&detectFlagExts, "ext", nil, "File extensions to analyze (default: from config)")
	detectCmd.Flags().BoolVar(&detectFlagIncludeComments, "include-comments", false, "Count comment and blank lines as code")
	detectCmd.Flags().BoolVar(&detectFlagNoMetrics, "no-metrics", false, "Omit per-file structure counts")

	rootCmd.AddCommand(detectCmd)
}

// detectReport is the JSON output shape for the detect command.
type detectReport struct {
	report.MonolithList
	Warnings []engine.Warning `json:"warnings"`
	Elapsed  float64          `json:"elapsed_seconds"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	e, cfg, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	req := engine.Request{
		Directories:     args,
		FileTypes:       detectFlagExts,
		MaxLines:        cfg.Scan.MaxLines,
		TopN:            cfg.Scan.TopN,
		ExcludeComments: !detectFlagIncludeComments,
	}
	if len(req.FileTypes) == 0 {
		req.FileTypes = cfg.Scan.FileTypes
	}
	if cmd.Flags().Changed("max-lines") {
		req.MaxLines = detectFlagMaxLines
	}
	if cmd.Flags().Changed("top") {
		req.TopN = detectFlagTop
	}

	start := time.Now()
	list, warnings, err := e.DetectMonoliths(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("detecting monoliths: %w", err)
	}
	elapsed := time.Since(start)

	if flagJSON {
		if warnings == nil {
			warnings = []engine.Warning{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(detectReport{
			MonolithList: *list,
			Warnings:     warnings,
			Elapsed:      elapsed.Seconds(),
		})
	}

	renderDetectTable(list, !detectFlagNoMetrics)
	renderDetectSummary(list, elapsed)
	printWarnings(warnings)
	return nil
}

func renderDetectTable(list *report.MonolithList, withMetrics bool) {
	fmt.Println(output.Section(fmt.Sprintf("Monoliths (> %d code lines)", list.MaxLines)))
	fmt.Println()

	if len(list.Files) == 0 {
		fmt.Println(output.StyleSuccess.Render(" No files over the threshold."))
		return
	}

	var tbl *output.Table
	if withMetrics {
		tbl = output.NewTable("#", "File", "Code", "Total", "Funcs", "Classes", "Imports", "Score", "Over")
	} else {
		tbl = output.NewTable("#", "File", "Code", "Total", "Over")
	}

	for i, f := range list.Files {
		style := output.SeverityStyle(f.CodeLines, list.MaxLines)
		codeStr := style.Render(fmt.Sprintf("%d", f.CodeLines))
		over := output.Overshoot(f.CodeLines, list.MaxLines)

		if withMetrics {
			tbl.AddRow(
				fmt.Sprintf("%d", i+1),
				f.RelPath,
				codeStr,
				fmt.Sprintf("%d", f.TotalLines),
				fmt.Sprintf("%d", f.FunctionCount),
				fmt.Sprintf("%d", f.ClassCount),
				fmt.Sprintf("%d", f.ImportCount),
				output.StyleBold.Render(fmt.Sprintf("%d", f.ComplexityScore)),
				over,
			)
		} else {
			tbl.AddRow(
				fmt.Sprintf("%d", i+1),
				f.RelPath,
				codeStr,
				fmt.Sprintf("%d", f.TotalLines),
				over,
			)
		}
	}

	tbl.Print()
}

func renderDetectSummary(list *report.MonolithList, elapsed time.Duration) {
	filesPerSec := 0.0
	if elapsed > 0 {
		filesPerSec = float64(list.TotalFiles) / elapsed.Seconds()
	}

	fmt.Println(output.Section("Summary"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Files analyzed:"),
		output.StyleValue.Render(fmt.Sprintf("%d", list.TotalFiles)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total code lines:"),
		output.StyleValue.Render(fmt.Sprintf("%d", list.TotalCodeLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Over threshold:"),
		output.StyleValue.Render(fmt.Sprintf("%d", list.MonolithCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Elapsed:"),
		output.StyleValue.Render(fmt.Sprintf("%.2fs (%.0f files/s)", elapsed.Seconds(), filesPerSec)))
	fmt.Println()
}
