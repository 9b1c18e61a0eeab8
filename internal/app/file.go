package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codewatch/internal/engine"
	"github.com/blackwell-systems/codewatch/internal/output"
	"github.com/blackwell-systems/codewatch/internal/report"
)

var fileFlagIncludeComments bool

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Analyze a single file's line counts and complexity",
	Long: `File analyzes one file: total and comment-excluded line counts,
function/class/control/import counts, the complexity score, and the
comment ratio.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	fileCmd.Flags().BoolVar(&fileFlagIncludeComments, "include-comments", false, "Count comment and blank lines as code")
	rootCmd.AddCommand(fileCmd)
}

// fileReport is the JSON output shape for the file command.
type fileReport struct {
	report.FileDetail
	Warnings []engine.Warning `json:"warnings"`
}

func runFile(cmd *cobra.Command, args []string) error {
	e, _, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	detail, warnings, err := e.AnalyzeFile(cmd.Context(), args[0], !fileFlagIncludeComments)
	if err != nil {
		return fmt.Errorf("analyzing file: %w", err)
	}

	if flagJSON {
		if warnings == nil {
			warnings = []engine.Warning{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fileReport{FileDetail: *detail, Warnings: warnings})
	}

	renderFileDetail(detail)
	printWarnings(warnings)
	return nil
}

func renderFileDetail(d *report.FileDetail) {
	fmt.Println(output.Section(d.RelPath))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Language:"),
		output.StyleValue.Render(d.Language))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total lines:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.TotalLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Code lines:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.CodeLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Functions:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.FunctionCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Classes:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.ClassCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Control structures:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.ControlCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Imports:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.ImportCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Complexity score:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.ComplexityScore)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Comment ratio:"),
		output.RatioBar(d.CommentRatio, 20))
	if d.ParseFailed {
		fmt.Println()
		fmt.Println(output.StyleWarning.Render(" Parse failed; counts come from the raw-line fallback."))
	}
	fmt.Println()
}
