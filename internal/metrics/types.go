// Package metrics defines the per-file measurement types and the
// complexity scoring formula shared by the analyzers and reporters.
package metrics

// FileRecord identifies a discovered source file. Records are created at
// discovery time and never modified afterwards.
type FileRecord struct {
	// Path is the absolute filesystem path to the file.
	Path string `json:"path"`

	// RelPath is the path relative to its scan root, used for display.
	RelPath string `json:"rel_path"`

	// Language is the detected language tag (e.g. "python", "typescript").
	Language string `json:"language"`

	// SizeBytes is the raw size of the file on disk.
	SizeBytes int64 `json:"size_bytes"`
}

// AnalysisResult holds everything one analyzer pass measured about a file.
// Exactly one analyzer produces a result per file; after creation only the
// ComplexityScore field is attached, nothing else changes.
type AnalysisResult struct {
	FileRecord

	// CodeLines is the number of lines counted as code after excluding
	// blank lines, comments, and (for Python) docstrings. Always <= TotalLines.
	CodeLines int `json:"code_lines"`

	// TotalLines is the raw line count of the file.
	TotalLines int `json:"total_lines"`

	// FunctionCount includes nested and async function definitions.
	FunctionCount int `json:"function_count"`

	// ClassCount is the number of class definitions.
	ClassCount int `json:"class_count"`

	// ControlCount counts if/for/while/switch/match/try structures.
	// Except and catch clauses belong to their enclosing try.
	ControlCount int `json:"control_structure_count"`

	// ImportCount is tracked for reporting but never contributes to the
	// complexity score.
	ImportCount int `json:"import_count"`

	// ComplexityScore is attached by Score after analysis.
	ComplexityScore int `json:"complexity_score"`

	// ParseFailed is set when the precise parser rejected the file and the
	// analyzer fell back to raw line counting.
	ParseFailed bool `json:"parse_failed,omitempty"`
}
