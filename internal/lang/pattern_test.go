package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

func analyzePattern(t *testing.T, ext, src string, excludeComments bool) *metrics.AnalysisResult {
	t.Helper()
	a, ok := ForExtension(ext)
	require.True(t, ok)
	rec := metrics.FileRecord{Path: "/src/sample" + ext, RelPath: "sample" + ext, Language: a.Language()}
	res := a.Analyze(rec, []byte(src), excludeComments)
	require.NotNil(t, res)
	require.LessOrEqual(t, res.CodeLines, res.TotalLines)
	return res
}

func TestPatternAnalyzer_TypeScriptCounts(t *testing.T) {
	src := `import { x } from "./x";
// line comment
/* block
   comment */
export class Widget {
  render() {
    if (x) {
      return x;
    }
    for (const i of [1, 2]) {
      console.log(i);
    }
  }
}
const f = () => x;
`
	res := analyzePattern(t, ".ts", src, true)

	assert.Equal(t, 15, res.TotalLines)
	// Comment-only and blank lines excluded: the line comment and both
	// block-comment lines drop out.
	assert.Equal(t, 12, res.CodeLines)
	assert.Equal(t, 1, res.ClassCount)
	// One arrow function.
	assert.Equal(t, 1, res.FunctionCount)
	// if + for.
	assert.Equal(t, 2, res.ControlCount)
	// import line + export line.
	assert.Equal(t, 2, res.ImportCount)
}

func TestPatternAnalyzer_KeywordsInsideStringsIgnored(t *testing.T) {
	src := `const msg = "if you try, for a while";
const tpl = ` + "`switch\nfor while if\n`" + `;
let n = 1;
`
	res := analyzePattern(t, ".js", src, true)

	assert.Zero(t, res.ControlCount)
	// Template literal body lines still count as code.
	assert.Equal(t, 5, res.TotalLines)
	assert.Equal(t, 5, res.CodeLines)
}

func TestPatternAnalyzer_BlockCommentStateSpansLines(t *testing.T) {
	src := "/*\nif (x) {}\nfor (;;) {}\n*/\nlet a = 1;\n"
	res := analyzePattern(t, ".js", src, true)

	assert.Equal(t, 1, res.CodeLines)
	assert.Zero(t, res.ControlCount)
}

func TestPatternAnalyzer_IncludeCommentsKeepsTotal(t *testing.T) {
	src := "// only a comment\nlet a = 1;\n"
	res := analyzePattern(t, ".js", src, false)
	assert.Equal(t, res.TotalLines, res.CodeLines)
}

func TestPatternAnalyzer_GoCounts(t *testing.T) {
	src := `package main

import "fmt"

type Server struct {
	addr string
}

func main() {
	for i := 0; i < 3; i++ {
		if i > 1 {
			fmt.Println(i)
		}
	}
}
`
	res := analyzePattern(t, ".go", src, true)

	assert.Equal(t, 1, res.FunctionCount)
	assert.Equal(t, 1, res.ClassCount)
	assert.Equal(t, 2, res.ControlCount)
	assert.Equal(t, 1, res.ImportCount)
	assert.Equal(t, 5, res.ComplexityScore) // 1 + 2*1 + 2
}

func TestPatternAnalyzer_JavaBraceFunctions(t *testing.T) {
	src := `import java.util.List;

public class Box {
    public int size() {
        if (true) {
            return 1;
        }
        return 0;
    }
}
`
	res := analyzePattern(t, ".java", src, true)

	assert.Equal(t, 1, res.ClassCount)
	// size() matches the ") {" heuristic; the if header does not.
	assert.Equal(t, 1, res.FunctionCount)
	assert.Equal(t, 1, res.ControlCount)
	assert.Equal(t, 1, res.ImportCount)
}

func TestForExtension_Dispatch(t *testing.T) {
	cases := map[string]string{
		".py":  "python",
		".ts":  "typescript",
		".tsx": "typescript",
		".js":  "javascript",
		".jsx": "javascript",
		".go":  "go",
		".rs":  "rust",
	}
	for ext, want := range cases {
		a, ok := ForExtension(ext)
		require.True(t, ok, ext)
		assert.Equal(t, want, a.Language(), ext)
	}

	_, ok := ForExtension(".exe")
	assert.False(t, ok)
}
