// Package discover walks scan roots and yields the source files a scan
// should analyze, applying the exclusion rule set as it goes.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/codewatch/internal/exclude"
	"github.com/blackwell-systems/codewatch/internal/lang"
	"github.com/blackwell-systems/codewatch/internal/metrics"
)

// Warning records a recoverable discovery problem: a missing root or an
// unreadable subtree. Discovery never fails outright on either.
type Warning struct {
	Kind   string `json:"kind"` // "path_not_found" or "permission"
	Path   string `json:"path"`
	Detail string `json:"detail,omitempty"`
}

// Files walks each root and returns records for every regular file whose
// extension is in extensions, is supported by an analyzer, and survives
// the rule set. Directories matching a rule are pruned whole; symbolic
// links are never followed. The returned order is the WalkDir order per
// root; callers needing ranking stability sort afterwards.
func Files(roots []string, extensions []string, rules *exclude.RuleSet) ([]metrics.FileRecord, []Warning) {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	var records []metrics.FileRecord
	var warnings []Warning

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			absRoot = root
		}

		info, err := os.Stat(absRoot)
		if err != nil {
			if os.IsNotExist(err) {
				warnings = append(warnings, Warning{Kind: "path_not_found", Path: root})
			} else {
				warnings = append(warnings, Warning{Kind: "permission", Path: root, Detail: err.Error()})
			}
			continue
		}

		// A root that is itself a file is analyzed directly.
		if !info.IsDir() {
			if rec, ok := record(absRoot, filepath.Base(absRoot), info.Size(), extSet, rules); ok {
				records = append(records, rec)
			}
			continue
		}

		walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directory: record and keep walking siblings.
				warnings = append(warnings, Warning{Kind: "permission", Path: path, Detail: err.Error()})
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			name := entry.Name()
			if entry.IsDir() {
				if path != absRoot && rules.SkipDir(name) {
					return filepath.SkipDir
				}
				return nil
			}

			// Symlinks are skipped: following them risks loops and
			// double counting.
			if entry.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}

			fi, err := entry.Info()
			if err != nil {
				warnings = append(warnings, Warning{Kind: "permission", Path: path, Detail: err.Error()})
				return nil
			}

			rel, err := filepath.Rel(absRoot, path)
			if err != nil {
				rel = name
			}
			if rec, ok := record(path, filepath.ToSlash(rel), fi.Size(), extSet, rules); ok {
				records = append(records, rec)
			}
			return nil
		})
		if walkErr != nil {
			warnings = append(warnings, Warning{Kind: "permission", Path: absRoot, Detail: walkErr.Error()})
		}
	}

	return records, warnings
}

// record builds a FileRecord when the file passes extension and rule
// filtering.
func record(path, rel string, size int64, extSet map[string]struct{}, rules *exclude.RuleSet) (metrics.FileRecord, bool) {
	name := filepath.Base(path)
	if rules.SkipFile(name) {
		return metrics.FileRecord{}, false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := extSet[ext]; !ok {
		return metrics.FileRecord{}, false
	}
	language, ok := lang.LanguageForExtension(ext)
	if !ok {
		return metrics.FileRecord{}, false
	}
	return metrics.FileRecord{
		Path:      path,
		RelPath:   rel,
		Language:  language,
		SizeBytes: size,
	}, true
}
