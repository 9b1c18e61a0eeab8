package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RatioBar renders a visual bar for a 0-1 ratio.
// Example: "███░░░░░░░ 25%"
func RatioBar(ratio float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", StyleMuted.Render(bar), StyleMuted.Render(fmt.Sprintf("%.0f%%", ratio*100)))
}

// SeverityStyle picks a style for a code-line count relative to the
// threshold: green at or under, yellow up to 1.5x, red beyond.
func SeverityStyle(codeLines, maxLines int) lipgloss.Style {
	switch {
	case codeLines <= maxLines:
		return StyleSuccess
	case maxLines > 0 && float64(codeLines) > 1.5*float64(maxLines):
		return StyleError
	default:
		return StyleWarning
	}
}

// Overshoot formats how far a file is over the threshold, e.g. "+60".
func Overshoot(codeLines, maxLines int) string {
	if codeLines <= maxLines {
		return StyleMuted.Render("─")
	}
	return SeverityStyle(codeLines, maxLines).Render(fmt.Sprintf("+%d", codeLines-maxLines))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
