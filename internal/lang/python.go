package lang

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

// PythonAnalyzer measures Python sources with a tree-sitter parse. Code
// lines are the distinct rows touched by non-comment tokens, with module,
// class, and function docstrings excluded when comments are excluded.
// A file the grammar cannot parse falls back to line-oriented counting
// with the ParseFailed flag set.
type PythonAnalyzer struct{}

// Language implements Analyzer.
func (a *PythonAnalyzer) Language() string { return "python" }

// Analyze implements Analyzer.
func (a *PythonAnalyzer) Analyze(rec metrics.FileRecord, content []byte, excludeComments bool) *metrics.AnalysisResult {
	res := &metrics.AnalysisResult{
		FileRecord: rec,
		TotalLines: countLines(content),
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	language := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := parser.SetLanguage(language); err != nil {
		return a.fallback(res, content, excludeComments)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return a.fallback(res, content, excludeComments)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return a.fallback(res, content, excludeComments)
	}

	w := &pyWalker{
		excludeDocstrings: excludeComments,
		rows:              make(map[uint]struct{}),
		docstrings:        make(map[uint]struct{}),
	}
	w.walk(root)

	res.FunctionCount = w.functions
	res.ClassCount = w.classes
	res.ControlCount = w.controls
	res.ImportCount = w.imports
	if excludeComments {
		res.CodeLines = len(w.rows)
	} else {
		res.CodeLines = res.TotalLines
	}
	return metrics.Attach(res)
}

// fallback counts lines without a parse tree: blank lines, comment lines,
// and lines inside triple-quoted strings are dropped, everything else
// counts as code. Structure counts stay zero.
func (a *PythonAnalyzer) fallback(res *metrics.AnalysisResult, content []byte, excludeComments bool) *metrics.AnalysisResult {
	res.ParseFailed = true
	if !excludeComments {
		res.CodeLines = res.TotalLines
		return metrics.Attach(res)
	}

	code := 0
	inTripleString := false
	for _, line := range strings.Split(string(content), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if strings.Contains(line, `"""`) || strings.Contains(line, "'''") {
			inTripleString = !inTripleString
			continue
		}
		if inTripleString {
			continue
		}
		if strings.HasPrefix(stripped, "#") {
			continue
		}
		code++
	}
	res.CodeLines = code
	return metrics.Attach(res)
}

// pyWalker accumulates counts over one parse tree.
type pyWalker struct {
	excludeDocstrings bool

	functions int
	classes   int
	controls  int
	imports   int

	// rows holds the zero-based line numbers touched by code tokens.
	rows map[uint]struct{}
	// docstrings holds the start bytes of expression statements identified
	// as docstrings, populated before their enclosing block is descended.
	docstrings map[uint]struct{}
}

func (w *pyWalker) walk(node *tree_sitter.Node) {
	kind := node.Kind()

	switch kind {
	case "comment":
		return
	case "module":
		w.markDocstring(node)
	case "function_definition":
		w.functions++
		if body := node.ChildByFieldName("body"); body != nil {
			w.markDocstring(body)
		}
	case "class_definition":
		w.classes++
		if body := node.ChildByFieldName("body"); body != nil {
			w.markDocstring(body)
		}
	case "if_statement", "for_statement", "while_statement", "try_statement", "match_statement":
		// except_clause nodes live under try_statement and are not
		// counted separately.
		w.controls++
	case "import_statement", "import_from_statement", "future_import_statement":
		w.imports++
	case "expression_statement":
		if w.excludeDocstrings {
			if _, ok := w.docstrings[node.StartByte()]; ok {
				return
			}
		}
	}

	count := node.ChildCount()
	if count == 0 {
		// Leaf token: every row it spans contains code.
		for row := node.StartPosition().Row; row <= node.EndPosition().Row; row++ {
			w.rows[row] = struct{}{}
		}
		return
	}

	for i := uint(0); i < count; i++ {
		w.walk(node.Child(i))
	}
}

// markDocstring records the leading bare-string statement of a module or
// definition body so the walk can skip it.
func (w *pyWalker) markDocstring(body *tree_sitter.Node) {
	if !w.excludeDocstrings {
		return
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child.Kind() == "comment" {
			continue
		}
		if child.Kind() != "expression_statement" {
			return
		}
		if child.ChildCount() == 1 {
			inner := child.Child(0)
			if k := inner.Kind(); k == "string" || k == "concatenated_string" {
				w.docstrings[child.StartByte()] = struct{}{}
			}
		}
		return
	}
}
