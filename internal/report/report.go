// Package report turns per-file analysis results into the three report
// shapes: a ranked monolith list, a single-file detail, and a codebase
// summary. Everything here is a pure transform over result slices.
package report

import (
	"sort"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

// MonolithList ranks the files whose code-line count exceeds the
// threshold.
type MonolithList struct {
	MaxLines int `json:"max_lines"`
	TopN     int `json:"top_n"`

	// TotalFiles and TotalCodeLines cover every analyzed file, not just
	// the monoliths.
	TotalFiles     int `json:"total_files"`
	TotalCodeLines int `json:"total_code_lines"`

	// MonolithCount is the number of files over the threshold before
	// truncation to TopN.
	MonolithCount int `json:"monolith_count"`

	Files []metrics.AnalysisResult `json:"files"`
}

// FileDetail is a single result plus derived ratios.
type FileDetail struct {
	metrics.AnalysisResult

	// CommentRatio is 1 - code/total, 0 for an empty file.
	CommentRatio float64 `json:"comment_ratio"`
}

// LanguageTotals are the per-language subtotals inside a summary.
type LanguageTotals struct {
	Files      int `json:"files"`
	CodeLines  int `json:"code_lines"`
	TotalLines int `json:"total_lines"`
}

// CodebaseSummary aggregates a whole scan. Build one with NewSummary/Add
// or BuildSummary; partial summaries from parallel workers combine with
// Merge in any order.
type CodebaseSummary struct {
	TotalFiles     int `json:"total_files"`
	TotalCodeLines int `json:"total_code_lines"`
	TotalLines     int `json:"total_lines"`

	// LargeFileCount is the number of files whose code lines exceed the
	// threshold the summary was built with.
	MaxLines       int `json:"max_lines"`
	LargeFileCount int `json:"large_file_count"`

	Languages map[string]LanguageTotals `json:"languages"`

	// CommentRatio is computed from the summed totals, not averaged
	// per file, so small files cannot skew it.
	CommentRatio float64 `json:"comment_ratio"`
}

// BuildMonolithList filters results to code_lines > maxLines, sorts
// descending by code lines with ties broken by ascending path, and
// truncates to topN. topN <= 0 returns the full filtered list.
func BuildMonolithList(results []metrics.AnalysisResult, maxLines, topN int) MonolithList {
	list := MonolithList{
		MaxLines: maxLines,
		TopN:     topN,
		Files:    []metrics.AnalysisResult{},
	}

	for _, r := range results {
		list.TotalFiles++
		list.TotalCodeLines += r.CodeLines
		if r.CodeLines > maxLines {
			list.Files = append(list.Files, r)
		}
	}
	list.MonolithCount = len(list.Files)

	sort.SliceStable(list.Files, func(i, j int) bool {
		if list.Files[i].CodeLines != list.Files[j].CodeLines {
			return list.Files[i].CodeLines > list.Files[j].CodeLines
		}
		return list.Files[i].Path < list.Files[j].Path
	})

	if topN > 0 && len(list.Files) > topN {
		list.Files = list.Files[:topN]
	}
	return list
}

// BuildFileDetail wraps a single result with its comment ratio.
func BuildFileDetail(r metrics.AnalysisResult) FileDetail {
	d := FileDetail{AnalysisResult: r}
	if r.TotalLines > 0 {
		d.CommentRatio = 1 - float64(r.CodeLines)/float64(r.TotalLines)
	}
	return d
}

// NewSummary returns an empty summary for the given threshold.
func NewSummary(maxLines int) *CodebaseSummary {
	return &CodebaseSummary{
		MaxLines:  maxLines,
		Languages: make(map[string]LanguageTotals),
	}
}

// Add folds one result into the summary.
func (s *CodebaseSummary) Add(r metrics.AnalysisResult) {
	s.TotalFiles++
	s.TotalCodeLines += r.CodeLines
	s.TotalLines += r.TotalLines
	if r.CodeLines > s.MaxLines {
		s.LargeFileCount++
	}

	lt := s.Languages[r.Language]
	lt.Files++
	lt.CodeLines += r.CodeLines
	lt.TotalLines += r.TotalLines
	s.Languages[r.Language] = lt
}

// Merge folds another partial summary into s. The operation is
// associative and commutative, so per-worker partials combine in any
// order. Both summaries must share a threshold.
func (s *CodebaseSummary) Merge(other *CodebaseSummary) {
	s.TotalFiles += other.TotalFiles
	s.TotalCodeLines += other.TotalCodeLines
	s.TotalLines += other.TotalLines
	s.LargeFileCount += other.LargeFileCount
	for language, lt := range other.Languages {
		cur := s.Languages[language]
		cur.Files += lt.Files
		cur.CodeLines += lt.CodeLines
		cur.TotalLines += lt.TotalLines
		s.Languages[language] = cur
	}
}

// Finalize computes the derived comment ratio and returns s.
func (s *CodebaseSummary) Finalize() *CodebaseSummary {
	if s.TotalLines > 0 {
		s.CommentRatio = 1 - float64(s.TotalCodeLines)/float64(s.TotalLines)
	}
	return s
}

// BuildSummary aggregates results in one pass.
func BuildSummary(results []metrics.AnalysisResult, maxLines int) *CodebaseSummary {
	s := NewSummary(maxLines)
	for _, r := range results {
		s.Add(r)
	}
	return s.Finalize()
}
