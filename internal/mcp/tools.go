package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/blackwell-systems/codewatch/internal/engine"
	"github.com/blackwell-systems/codewatch/internal/report"
)

// DetectMonolithsResult is the detect_monoliths tool payload.
type DetectMonolithsResult struct {
	MaxLines       int              `json:"max_lines"`
	TopN           int              `json:"top_n"`
	TotalFiles     int              `json:"total_files"`
	TotalCodeLines int              `json:"total_code_lines"`
	MonolithCount  int              `json:"monolith_count"`
	Files          []any            `json:"files"`
	Warnings       []engine.Warning `json:"warnings"`
}

// slimFile is the per-file shape returned when include_metrics is false.
type slimFile struct {
	Path       string `json:"path"`
	Language   string `json:"language"`
	CodeLines  int    `json:"code_lines"`
	TotalLines int    `json:"total_lines"`
}

// AnalyzeFileResult is the analyze_file_complexity tool payload.
type AnalyzeFileResult struct {
	report.FileDetail
	Warnings []engine.Warning `json:"warnings"`
}

// slimFileDetail is the analyze_file_complexity payload when
// include_ast_analysis is false: line counts only, no structure counts
// or complexity score.
type slimFileDetail struct {
	Path         string           `json:"path"`
	Language     string           `json:"language"`
	TotalLines   int              `json:"total_lines"`
	CodeLines    int              `json:"code_lines"`
	CommentRatio float64          `json:"comment_ratio"`
	Warnings     []engine.Warning `json:"warnings"`
}

// SummaryResult is the get_code_metrics_summary tool payload.
type SummaryResult struct {
	report.CodebaseSummary
	Warnings []engine.Warning `json:"warnings"`
}

var (
	detectSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "directories": {"type": "array", "items": {"type": "string"}, "description": "Directories to scan (default: [\".\"])"},
    "max_lines": {"type": "integer", "description": "Code-line threshold above which a file is a monolith (default 140)"},
    "top_n": {"type": "integer", "description": "Number of files to return, 0 for all (default 20)"},
    "file_types": {"type": "array", "items": {"type": "string"}, "description": "File extensions to analyze (default: .py .ts .tsx .js .jsx)"},
    "exclude_comments": {"type": "boolean", "description": "Exclude comments and blank lines from code-line counts (default true)"},
    "include_metrics": {"type": "boolean", "description": "Include per-file complexity metrics (default true)"}
  },
  "additionalProperties": false
}`)
	fileSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "file_path": {"type": "string", "description": "Path of the file to analyze"},
    "exclude_comments": {"type": "boolean", "description": "Exclude comments and blank lines from code-line counts (default true)"},
    "include_ast_analysis": {"type": "boolean", "description": "Include structure counts and the complexity score (default true)"}
  },
  "required": ["file_path"],
  "additionalProperties": false
}`)
	summarySchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "directories": {"type": "array", "items": {"type": "string"}, "description": "Directories to scan (default: [\".\"])"},
    "file_types": {"type": "array", "items": {"type": "string"}, "description": "File extensions to analyze (default: .py .ts .tsx .js .jsx)"}
  },
  "additionalProperties": false
}`)
)

// addTools registers the three MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "detect_monoliths",
		Description: "Find files whose comment-excluded line count exceeds a threshold, ranked largest first with complexity metrics.",
		InputSchema: detectSchema,
		Handler:     s.handleDetectMonoliths,
	})
	s.registerTool(toolDef{
		Name:        "analyze_file_complexity",
		Description: "Line counts, structure counts, complexity score, and comment ratio for a single file.",
		InputSchema: fileSchema,
		Handler:     s.handleAnalyzeFile,
	})
	s.registerTool(toolDef{
		Name:        "get_code_metrics_summary",
		Description: "Codebase-wide totals: files, code lines, per-language breakdown, large-file count, comment ratio.",
		InputSchema: summarySchema,
		Handler:     s.handleSummary,
	})
}

// requestFromArgs builds an engine request from tool arguments, applying
// the server's configured defaults for everything the caller omitted.
func (s *Server) requestFromArgs(args json.RawMessage) (engine.Request, bool, error) {
	var params struct {
		Directories     []string `json:"directories"`
		MaxLines        *int     `json:"max_lines"`
		TopN            *int     `json:"top_n"`
		FileTypes       []string `json:"file_types"`
		ExcludeComments *bool    `json:"exclude_comments"`
		IncludeMetrics  *bool    `json:"include_metrics"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return engine.Request{}, false, err
	}

	req := engine.Request{
		Directories:     params.Directories,
		FileTypes:       params.FileTypes,
		MaxLines:        s.scan.MaxLines,
		TopN:            s.scan.TopN,
		ExcludeComments: true,
	}
	if len(req.FileTypes) == 0 {
		req.FileTypes = append([]string(nil), s.scan.FileTypes...)
	}
	if params.MaxLines != nil {
		req.MaxLines = *params.MaxLines
	}
	if params.TopN != nil {
		req.TopN = *params.TopN
	}
	if params.ExcludeComments != nil {
		req.ExcludeComments = *params.ExcludeComments
	}
	includeMetrics := true
	if params.IncludeMetrics != nil {
		includeMetrics = *params.IncludeMetrics
	}
	req.Normalize()
	return req, includeMetrics, nil
}

// handleDetectMonoliths runs a scan and returns the ranked monolith list.
func (s *Server) handleDetectMonoliths(ctx context.Context, args json.RawMessage) (any, error) {
	req, includeMetrics, err := s.requestFromArgs(args)
	if err != nil {
		return nil, err
	}

	list, warnings, err := s.engine.DetectMonoliths(ctx, req)
	if err != nil {
		return nil, err
	}

	files := make([]any, 0, len(list.Files))
	for _, f := range list.Files {
		if includeMetrics {
			files = append(files, f)
			continue
		}
		files = append(files, slimFile{
			Path:       f.Path,
			Language:   f.Language,
			CodeLines:  f.CodeLines,
			TotalLines: f.TotalLines,
		})
	}

	if warnings == nil {
		warnings = []engine.Warning{}
	}
	return DetectMonolithsResult{
		MaxLines:       list.MaxLines,
		TopN:           list.TopN,
		TotalFiles:     list.TotalFiles,
		TotalCodeLines: list.TotalCodeLines,
		MonolithCount:  list.MonolithCount,
		Files:          files,
		Warnings:       warnings,
	}, nil
}

// handleAnalyzeFile returns the detail view for a single file.
func (s *Server) handleAnalyzeFile(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		FilePath           string `json:"file_path"`
		ExcludeComments    *bool  `json:"exclude_comments"`
		IncludeASTAnalysis *bool  `json:"include_ast_analysis"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, err
	}
	if params.FilePath == "" {
		return nil, errors.New("file_path is required")
	}
	excludeComments := true
	if params.ExcludeComments != nil {
		excludeComments = *params.ExcludeComments
	}
	includeAST := true
	if params.IncludeASTAnalysis != nil {
		includeAST = *params.IncludeASTAnalysis
	}

	detail, warnings, err := s.engine.AnalyzeFile(ctx, params.FilePath, excludeComments)
	if err != nil {
		return nil, err
	}
	if warnings == nil {
		warnings = []engine.Warning{}
	}
	if !includeAST {
		return slimFileDetail{
			Path:         detail.Path,
			Language:     detail.Language,
			TotalLines:   detail.TotalLines,
			CodeLines:    detail.CodeLines,
			CommentRatio: detail.CommentRatio,
			Warnings:     warnings,
		}, nil
	}
	return AnalyzeFileResult{FileDetail: *detail, Warnings: warnings}, nil
}

// handleSummary returns the codebase-wide summary.
func (s *Server) handleSummary(ctx context.Context, args json.RawMessage) (any, error) {
	req, _, err := s.requestFromArgs(args)
	if err != nil {
		return nil, err
	}

	summary, warnings, err := s.engine.Summarize(ctx, req)
	if err != nil {
		return nil, err
	}
	if warnings == nil {
		warnings = []engine.Warning{}
	}
	return SummaryResult{CodebaseSummary: *summary, Warnings: warnings}, nil
}
