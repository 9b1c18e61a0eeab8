// Package exclude implements the exclusion rule set applied during file
// discovery. Directory rules are exact-name matches that prune whole
// subtrees; file rules are glob patterns matched against base names.
package exclude

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultDirs are directory names that are never descended into:
// version-control metadata, dependency and package caches, build output,
// coverage reports, and editor caches.
var DefaultDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"__pycache__",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
	"venv",
	".venv",
	"env",
	"vendor",
	"third_party",
	"dist",
	"build",
	"target",
	"out",
	"coverage",
	"htmlcov",
	".next",
	".nuxt",
	".idea",
	".vscode",
	"generated",
}

// DefaultFileGlobs are base-name glob patterns for files that are skipped
// even when their extension matches the request: compiled/bundled output,
// generated declarations, lockfiles, logs, and environment/secret files.
var DefaultFileGlobs = []string{
	"*.min.js",
	"*.bundle.js",
	"*.chunk.js",
	"*.vendor.js",
	"*.d.ts",
	"*.generated.*",
	"*.auto.*",
	"*.log",
	"*.pid",
	"*.lock",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	".env",
	".env.*",
	"*.pem",
	"*.key",
	"id_rsa*",
}

// RuleSet is an immutable set of exclusion rules. Construct with New; the
// zero value skips nothing.
type RuleSet struct {
	dirs      map[string]struct{}
	fileGlobs []string
}

// New builds a RuleSet from directory names and file glob patterns. Every
// glob is validated up front so a malformed pattern surfaces as a
// configuration error before any scanning starts.
func New(dirs, fileGlobs []string) (*RuleSet, error) {
	rs := &RuleSet{
		dirs:      make(map[string]struct{}, len(dirs)),
		fileGlobs: make([]string, 0, len(fileGlobs)),
	}
	for _, d := range dirs {
		rs.dirs[d] = struct{}{}
	}
	for _, pattern := range fileGlobs {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclusion pattern %q", pattern)
		}
		rs.fileGlobs = append(rs.fileGlobs, pattern)
	}
	return rs, nil
}

// Default returns a RuleSet built from DefaultDirs and DefaultFileGlobs.
// The defaults are known-valid, so no error is possible.
func Default() *RuleSet {
	rs, err := New(DefaultDirs, DefaultFileGlobs)
	if err != nil {
		panic(err) // unreachable: defaults are validated by tests
	}
	return rs
}

// SkipDir reports whether a directory with the given base name should be
// pruned, subtree included. Matching is case-sensitive and exact.
func (rs *RuleSet) SkipDir(name string) bool {
	if rs == nil || rs.dirs == nil {
		return false
	}
	_, ok := rs.dirs[name]
	return ok
}

// SkipFile reports whether a file with the given base name should be
// skipped. Patterns were validated at construction, so match errors cannot
// occur here.
func (rs *RuleSet) SkipFile(name string) bool {
	if rs == nil {
		return false
	}
	for _, pattern := range rs.fileGlobs {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
