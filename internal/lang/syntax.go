package lang

import "regexp"

// Syntax parameterizes the pattern analyzer for one curly-brace language
// family: comment and string delimiters for the line scanner, and keyword
// patterns for structure counting. Patterns run against line text with
// comments and string contents already stripped, so keywords inside
// literals never match.
type Syntax struct {
	Name       string
	Extensions []string

	LineComments      []string
	BlockCommentOpen  string
	BlockCommentClose string

	// StringDelims are quote characters for single-line strings.
	// MultiLineDelim, when non-zero, opens a string that may span lines
	// (template literals in JS/TS, raw strings in Go).
	StringDelims   []rune
	MultiLineDelim rune

	FunctionPattern *regexp.Regexp
	ClassPattern    *regexp.Regexp
	ControlPattern  *regexp.Regexp
	ImportPattern   *regexp.Regexp

	// BraceFunctions enables the `) {` line-suffix heuristic used for
	// languages without a function keyword (Java, C, C++).
	BraceFunctions bool
}

var (
	jsFunction  = regexp.MustCompile(`\b(?:async\s+)?function\b|=>`)
	jsClass     = regexp.MustCompile(`\bclass\s+[A-Za-z_$]`)
	jsControl   = regexp.MustCompile(`\b(?:if|for|while|switch|try|catch)\b`)
	jsImport    = regexp.MustCompile(`^\s*(?:import|export)\b`)
	goFunction  = regexp.MustCompile(`\bfunc\b`)
	goClass     = regexp.MustCompile(`\btype\s+\w+\s+(?:struct|interface)\b`)
	goControl   = regexp.MustCompile(`\b(?:if|for|switch|select)\b`)
	goImport    = regexp.MustCompile(`^\s*import\b`)
	cControl    = regexp.MustCompile(`\b(?:if|for|while|switch|try|catch)\b`)
	cInclude    = regexp.MustCompile(`^\s*#\s*include\b`)
	javaClass   = regexp.MustCompile(`\b(?:class|interface|enum|record)\s+\w`)
	javaImport  = regexp.MustCompile(`^\s*import\b`)
	cppClass    = regexp.MustCompile(`\b(?:class|struct)\s+\w`)
	rsFunction  = regexp.MustCompile(`\bfn\b`)
	rsClass     = regexp.MustCompile(`\b(?:struct|enum|trait)\s+\w`)
	rsControl   = regexp.MustCompile(`\b(?:if|for|while|loop|match)\b`)
	rsImport    = regexp.MustCompile(`^\s*use\b`)
	braceSuffix = regexp.MustCompile(`\)\s*\{$`)
)

// syntaxes is the full table the pattern analyzer knows about. The default
// extension set covers the first two; the rest are available when callers
// ask for those extensions.
var syntaxes = []Syntax{
	{
		Name:              "javascript",
		Extensions:        []string{".js", ".jsx", ".mjs", ".cjs"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'\'', '"'},
		MultiLineDelim:    '`',
		FunctionPattern:   jsFunction,
		ClassPattern:      jsClass,
		ControlPattern:    jsControl,
		ImportPattern:     jsImport,
	},
	{
		Name:              "typescript",
		Extensions:        []string{".ts", ".tsx"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'\'', '"'},
		MultiLineDelim:    '`',
		FunctionPattern:   jsFunction,
		ClassPattern:      jsClass,
		ControlPattern:    jsControl,
		ImportPattern:     jsImport,
	},
	{
		Name:              "go",
		Extensions:        []string{".go"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'"', '\''},
		MultiLineDelim:    '`',
		FunctionPattern:   goFunction,
		ClassPattern:      goClass,
		ControlPattern:    goControl,
		ImportPattern:     goImport,
	},
	{
		Name:              "java",
		Extensions:        []string{".java"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'"', '\''},
		ClassPattern:      javaClass,
		ControlPattern:    cControl,
		ImportPattern:     javaImport,
		BraceFunctions:    true,
	},
	{
		Name:              "c",
		Extensions:        []string{".c", ".h"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'"', '\''},
		ControlPattern:    cControl,
		ImportPattern:     cInclude,
		BraceFunctions:    true,
	},
	{
		Name:              "cpp",
		Extensions:        []string{".cpp", ".cc", ".cxx", ".hpp"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'"', '\''},
		ClassPattern:      cppClass,
		ControlPattern:    cControl,
		ImportPattern:     cInclude,
		BraceFunctions:    true,
	},
	{
		Name:              "rust",
		Extensions:        []string{".rs"},
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		StringDelims:      []rune{'"'},
		FunctionPattern:   rsFunction,
		ClassPattern:      rsClass,
		ControlPattern:    rsControl,
		ImportPattern:     rsImport,
	},
}
