package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

func result(path, language string, code, total int) metrics.AnalysisResult {
	return metrics.AnalysisResult{
		FileRecord: metrics.FileRecord{Path: path, RelPath: path, Language: language},
		CodeLines:  code,
		TotalLines: total,
	}
}

func TestBuildMonolithList_FilterSortTruncate(t *testing.T) {
	results := []metrics.AnalysisResult{
		result("/src/b.py", "python", 150, 160),
		result("/src/a.py", "python", 200, 220),
		result("/src/c.py", "python", 100, 120),
	}

	list := BuildMonolithList(results, 140, 2)

	require.Len(t, list.Files, 2)
	assert.Equal(t, "/src/a.py", list.Files[0].Path)
	assert.Equal(t, "/src/b.py", list.Files[1].Path)
	assert.Equal(t, 2, list.MonolithCount)
	assert.Equal(t, 3, list.TotalFiles)
	assert.Equal(t, 450, list.TotalCodeLines)
}

func TestBuildMonolithList_TiesBreakByPath(t *testing.T) {
	results := []metrics.AnalysisResult{
		result("/src/z.py", "python", 150, 150),
		result("/src/a.py", "python", 150, 150),
		result("/src/m.py", "python", 150, 150),
	}

	list := BuildMonolithList(results, 140, 0)

	require.Len(t, list.Files, 3)
	assert.Equal(t, "/src/a.py", list.Files[0].Path)
	assert.Equal(t, "/src/m.py", list.Files[1].Path)
	assert.Equal(t, "/src/z.py", list.Files[2].Path)
}

func TestBuildMonolithList_NonPositiveTopNReturnsAll(t *testing.T) {
	var results []metrics.AnalysisResult
	for i := 0; i < 30; i++ {
		results = append(results, result(string(rune('a'+i))+".py", "python", 200+i, 200+i))
	}

	list := BuildMonolithList(results, 140, 0)
	assert.Len(t, list.Files, 30)

	list = BuildMonolithList(results, 140, -1)
	assert.Len(t, list.Files, 30)
}

func TestBuildFileDetail_CommentRatio(t *testing.T) {
	d := BuildFileDetail(result("/src/a.py", "python", 80, 100))
	assert.InDelta(t, 0.2, d.CommentRatio, 1e-9)

	empty := BuildFileDetail(result("/src/empty.py", "python", 0, 0))
	assert.Zero(t, empty.CommentRatio)
}

func TestBuildSummary_EmptyInput(t *testing.T) {
	s := BuildSummary(nil, 140)

	assert.Zero(t, s.TotalFiles)
	assert.Zero(t, s.TotalCodeLines)
	assert.Zero(t, s.LargeFileCount)
	assert.Zero(t, s.CommentRatio)
	assert.Empty(t, s.Languages)
}

func TestBuildSummary_PerLanguageAndRatio(t *testing.T) {
	results := []metrics.AnalysisResult{
		result("/src/a.py", "python", 80, 100),
		result("/src/b.py", "python", 200, 200),
		result("/src/c.ts", "typescript", 20, 100),
	}

	s := BuildSummary(results, 140)

	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 300, s.TotalCodeLines)
	assert.Equal(t, 400, s.TotalLines)
	assert.Equal(t, 1, s.LargeFileCount)

	assert.Equal(t, LanguageTotals{Files: 2, CodeLines: 280, TotalLines: 300}, s.Languages["python"])
	assert.Equal(t, LanguageTotals{Files: 1, CodeLines: 20, TotalLines: 100}, s.Languages["typescript"])

	// Ratio from summed totals: 1 - 300/400, not a per-file average.
	assert.InDelta(t, 0.25, s.CommentRatio, 1e-9)
}

func TestSummary_MergeIsOrderIndependent(t *testing.T) {
	a := NewSummary(140)
	a.Add(result("/src/a.py", "python", 80, 100))
	a.Add(result("/src/b.ts", "typescript", 150, 150))

	b := NewSummary(140)
	b.Add(result("/src/c.py", "python", 300, 400))

	left := NewSummary(140)
	left.Merge(a)
	left.Merge(b)

	right := NewSummary(140)
	right.Merge(b)
	right.Merge(a)

	assert.Equal(t, left.Finalize(), right.Finalize())
	assert.Equal(t, 3, left.TotalFiles)
	assert.Equal(t, 2, left.LargeFileCount)
}
