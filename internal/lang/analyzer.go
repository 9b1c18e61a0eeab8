// Package lang contains the per-language analyzers. Python gets a precise
// tree-sitter pass; curly-brace languages get a line-oriented state machine
// with keyword heuristics. Dispatch is by file extension.
package lang

import (
	"strings"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

// Analyzer turns raw file content into an AnalysisResult. Implementations
// are pure: no filesystem access, no shared state, safe for concurrent use.
type Analyzer interface {
	// Language returns the language tag attached to results.
	Language() string

	// Analyze measures content. excludeComments controls whether comments
	// and docstrings are stripped from the code-line count; when false the
	// code-line count equals the total line count.
	Analyze(rec metrics.FileRecord, content []byte, excludeComments bool) *metrics.AnalysisResult
}

// python is shared: the analyzer holds no per-file state.
var python = &PythonAnalyzer{}

// patternAnalyzers maps extensions to shared PatternAnalyzer instances,
// one per syntax table.
var patternAnalyzers = buildPatternAnalyzers()

func buildPatternAnalyzers() map[string]*PatternAnalyzer {
	m := make(map[string]*PatternAnalyzer)
	for _, syn := range syntaxes {
		a := &PatternAnalyzer{syntax: syn}
		for _, ext := range syn.Extensions {
			m[ext] = a
		}
	}
	return m
}

// ForExtension returns the analyzer responsible for the given extension
// (".py", ".ts", ...). The second return is false for unsupported
// extensions; discovery filters those out, so hitting false later in the
// pipeline indicates a programming error.
func ForExtension(ext string) (Analyzer, bool) {
	ext = strings.ToLower(ext)
	if ext == ".py" {
		return python, true
	}
	a, ok := patternAnalyzers[ext]
	return a, ok
}

// LanguageForExtension returns the language tag for an extension without
// constructing a result.
func LanguageForExtension(ext string) (string, bool) {
	a, ok := ForExtension(ext)
	if !ok {
		return "", false
	}
	return a.Language(), true
}

// SupportedExtensions lists every extension some analyzer accepts, in no
// particular order.
func SupportedExtensions() []string {
	exts := []string{".py"}
	for ext := range patternAnalyzers {
		exts = append(exts, ext)
	}
	return exts
}

// countLines returns the raw line count of content, matching the behavior
// of splitting on newlines and ignoring a trailing empty fragment.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := strings.Count(string(content), "\n")
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
