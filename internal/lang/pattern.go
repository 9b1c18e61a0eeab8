package lang

import (
	"strings"

	"github.com/blackwell-systems/codewatch/internal/metrics"
)

// PatternAnalyzer measures curly-brace languages with line-oriented
// heuristics. A small state machine tracks block comments and multi-line
// strings across lines; string contents and comments are stripped before
// the keyword patterns run.
//
// Known approximations: a control keyword used as an object key at the
// start of a wrapped line counts as control flow, arrow functions assigned
// to destructured bindings are missed, and `class` in a TypeScript
// type-only position counts as a class definition.
type PatternAnalyzer struct {
	syntax Syntax
}

// Language implements Analyzer.
func (a *PatternAnalyzer) Language() string { return a.syntax.Name }

// scanState carries the only conditions that survive a line break.
type scanState struct {
	inBlockComment bool
	inMultiString  bool
}

// Analyze implements Analyzer.
func (a *PatternAnalyzer) Analyze(rec metrics.FileRecord, content []byte, excludeComments bool) *metrics.AnalysisResult {
	res := &metrics.AnalysisResult{
		FileRecord: rec,
		TotalLines: countLines(content),
	}

	var st scanState
	code := 0
	for _, line := range strings.Split(string(content), "\n") {
		stripped, hasCode := a.scanLine(line, &st)
		if hasCode {
			code++
		}

		text := strings.TrimSpace(stripped)
		if text == "" {
			continue
		}
		a.countStructures(text, res)
	}

	if excludeComments {
		res.CodeLines = code
	} else {
		res.CodeLines = res.TotalLines
	}
	return metrics.Attach(res)
}

// countStructures applies the syntax's keyword patterns to one line of
// stripped code text.
func (a *PatternAnalyzer) countStructures(text string, res *metrics.AnalysisResult) {
	syn := &a.syntax

	if syn.FunctionPattern != nil {
		res.FunctionCount += len(syn.FunctionPattern.FindAllString(text, -1))
	}
	if syn.BraceFunctions && braceSuffix.MatchString(text) && !startsWithControlKeyword(text) {
		res.FunctionCount++
	}
	if syn.ClassPattern != nil {
		res.ClassCount += len(syn.ClassPattern.FindAllString(text, -1))
	}
	if syn.ControlPattern != nil {
		res.ControlCount += len(syn.ControlPattern.FindAllString(text, -1))
	}
	if syn.ImportPattern != nil && syn.ImportPattern.MatchString(text) {
		res.ImportCount++
	}
}

// startsWithControlKeyword guards the `) {` function heuristic against
// control-flow headers, which also end that way.
func startsWithControlKeyword(text string) bool {
	text = strings.TrimLeft(text, "} ")
	for _, kw := range []string{"if", "for", "while", "switch", "catch", "else"} {
		if strings.HasPrefix(text, kw) {
			rest := text[len(kw):]
			if rest == "" || rest[0] == ' ' || rest[0] == '(' || rest[0] == '{' {
				return true
			}
		}
	}
	return false
}

// scanLine walks one line, advancing the cross-line state machine, and
// returns the line's code text with comments and string contents removed,
// plus whether the line contains any code at all. String delimiters are
// kept in the output so import-style patterns still see their shape.
func (a *PatternAnalyzer) scanLine(line string, st *scanState) (string, bool) {
	syn := &a.syntax
	runes := []rune(line)
	var out strings.Builder
	hasCode := false

	// A line opening inside a multi-line string is code by definition.
	if st.inMultiString {
		hasCode = true
	}

	var inString rune // active single-line string delimiter, 0 when none

	for i := 0; i < len(runes); {
		c := runes[i]

		if st.inBlockComment {
			if strings.HasPrefix(string(runes[i:]), syn.BlockCommentClose) {
				st.inBlockComment = false
				i += len([]rune(syn.BlockCommentClose))
				continue
			}
			i++
			continue
		}

		if st.inMultiString {
			if c == '\\' && i+1 < len(runes) {
				i += 2
				continue
			}
			if c == syn.MultiLineDelim {
				st.inMultiString = false
				out.WriteRune(c)
			}
			i++
			continue
		}

		if inString != 0 {
			hasCode = true
			if c == '\\' && i+1 < len(runes) {
				i += 2
				continue
			}
			if c == inString {
				inString = 0
				out.WriteRune(c)
			}
			i++
			continue
		}

		if _, ok := lineCommentAt(runes[i:], syn.LineComments); ok {
			// Rest of the line is comment.
			break
		}

		if syn.BlockCommentOpen != "" && strings.HasPrefix(string(runes[i:]), syn.BlockCommentOpen) {
			st.inBlockComment = true
			i += len([]rune(syn.BlockCommentOpen))
			continue
		}

		if syn.MultiLineDelim != 0 && c == syn.MultiLineDelim {
			hasCode = true
			st.inMultiString = true
			out.WriteRune(c)
			i++
			continue
		}

		if isStringDelim(c, syn.StringDelims) {
			hasCode = true
			inString = c
			out.WriteRune(c)
			i++
			continue
		}

		if !isSpace(c) {
			hasCode = true
		}
		out.WriteRune(c)
		i++
	}

	// Single-line strings do not survive line breaks; an unterminated one
	// is the file's problem, not the scanner's.
	return out.String(), hasCode
}

func lineCommentAt(rest []rune, markers []string) (string, bool) {
	s := string(rest)
	for _, m := range markers {
		if strings.HasPrefix(s, m) {
			return m, true
		}
	}
	return "", false
}

func isStringDelim(c rune, delims []rune) bool {
	for _, d := range delims {
		if c == d {
			return true
		}
	}
	return false
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r'
}
