// Package engine orchestrates a scan: discovery, the parallel analysis
// pool, cache consultation, and the final reduce into report shapes.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/codewatch/internal/discover"
	"github.com/blackwell-systems/codewatch/internal/exclude"
	"github.com/blackwell-systems/codewatch/internal/lang"
	"github.com/blackwell-systems/codewatch/internal/metrics"
	"github.com/blackwell-systems/codewatch/internal/report"
	"github.com/blackwell-systems/codewatch/internal/store"
)

// DefaultFileTimeout bounds a single file's analysis. Go's regexp cannot
// backtrack, so in practice this only trips on pathologically large files.
const DefaultFileTimeout = 10 * time.Second

// Engine runs scans. The zero value is not usable; construct with New.
type Engine struct {
	rules       *exclude.RuleSet
	workers     int
	fileTimeout time.Duration
	cache       *store.DB
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the analysis pool size. Non-positive means NumCPU.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithFileTimeout sets the per-file analysis budget. Zero disables it.
func WithFileTimeout(d time.Duration) Option {
	return func(e *Engine) { e.fileTimeout = d }
}

// WithCache attaches a metrics cache. A nil cache is allowed and simply
// disables caching.
func WithCache(db *store.DB) Option {
	return func(e *Engine) { e.cache = db }
}

// New builds an Engine using the given exclusion rules. A nil rule set
// means no exclusions.
func New(rules *exclude.RuleSet, opts ...Option) *Engine {
	e := &Engine{
		rules:       rules,
		fileTimeout: DefaultFileTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	return e
}

// ScanOutcome is the raw product of a scan before report shaping:
// analyzed results sorted by path, plus every recovered warning.
type ScanOutcome struct {
	Results  []metrics.AnalysisResult `json:"results"`
	Warnings []Warning                `json:"warnings"`
	Elapsed  time.Duration            `json:"elapsed_ns"`
}

// Scan discovers and analyzes all requested files. Only configuration
// problems (an invalid threshold here; exclusion patterns are validated
// when the rule set is built) return an error; recoverable conditions
// accumulate as warnings.
func (e *Engine) Scan(ctx context.Context, req Request) (*ScanOutcome, error) {
	req.Normalize()
	if req.MaxLines < 0 {
		return nil, fmt.Errorf("max_lines must be >= 0, got %d", req.MaxLines)
	}

	start := time.Now()
	records, discoveryWarnings := discover.Files(req.Directories, req.FileTypes, e.rules)

	outcome := &ScanOutcome{
		Results:  []metrics.AnalysisResult{},
		Warnings: fromDiscovery(discoveryWarnings),
	}

	type item struct {
		res  *metrics.AnalysisResult
		warn *Warning
	}

	g, gctx := errgroup.WithContext(ctx)
	tasks := make(chan metrics.FileRecord)
	out := make(chan item, e.workers)

	g.Go(func() error {
		defer close(tasks)
		for _, rec := range records {
			select {
			case tasks <- rec:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < e.workers; i++ {
		g.Go(func() error {
			for rec := range tasks {
				// Cancellation is checked between files, never mid-file.
				if err := gctx.Err(); err != nil {
					return err
				}
				res, warn := e.analyzeOne(rec, req.ExcludeComments)
				select {
				case out <- item{res: res, warn: warn}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(out)
	}()

	for it := range out {
		if it.res != nil {
			outcome.Results = append(outcome.Results, *it.res)
		}
		if it.warn != nil {
			outcome.Warnings = append(outcome.Warnings, *it.warn)
		}
	}
	if err := <-done; err != nil {
		return nil, err
	}

	// The pool delivers in completion order; sort by path so identical
	// scans produce identical reports.
	sort.Slice(outcome.Results, func(i, j int) bool {
		return outcome.Results[i].Path < outcome.Results[j].Path
	})
	sort.Slice(outcome.Warnings, func(i, j int) bool {
		if outcome.Warnings[i].Path != outcome.Warnings[j].Path {
			return outcome.Warnings[i].Path < outcome.Warnings[j].Path
		}
		return outcome.Warnings[i].Kind < outcome.Warnings[j].Kind
	})

	outcome.Elapsed = time.Since(start)
	return outcome, nil
}

// analyzeOne reads and analyzes a single file, consulting the cache
// first. A nil result with a non-nil warning means the file was skipped.
func (e *Engine) analyzeOne(rec metrics.FileRecord, excludeComments bool) (*metrics.AnalysisResult, *Warning) {
	analyzer, ok := lang.ForExtension(filepath.Ext(rec.Path))
	if !ok {
		// Discovery filters unsupported extensions; reaching here is a bug.
		return nil, &Warning{Kind: WarnInternal, Path: rec.Path, Detail: "no analyzer for extension"}
	}

	var mtime int64
	if e.cache != nil {
		if fi, err := os.Stat(rec.Path); err == nil {
			mtime = fi.ModTime().Unix()
			if cached, hit, err := e.cache.Get(rec, mtime, excludeComments); err == nil && hit {
				// A cached parse failure still warns, so warm scans
				// report the same warnings as cold ones.
				if cached.ParseFailed {
					return cached, &Warning{Kind: WarnParseRecovery, Path: rec.Path, Detail: "parse failed, raw line count used"}
				}
				return cached, nil
			}
		}
	}

	content, err := os.ReadFile(rec.Path)
	if err != nil {
		return nil, &Warning{Kind: WarnPermission, Path: rec.Path, Detail: err.Error()}
	}

	res, finished := e.analyzeWithBudget(analyzer, rec, content, excludeComments)
	if !finished {
		return nil, &Warning{
			Kind:   WarnTimeout,
			Path:   rec.Path,
			Detail: fmt.Sprintf("analysis exceeded %s", e.fileTimeout),
		}
	}

	var warn *Warning
	if res.ParseFailed {
		warn = &Warning{Kind: WarnParseRecovery, Path: rec.Path, Detail: "parse failed, raw line count used"}
	}

	if e.cache != nil && mtime != 0 {
		// Cache write failures are invisible to the report.
		_ = e.cache.Put(res, mtime, excludeComments)
	}
	return res, warn
}

// analyzeWithBudget runs the analyzer under the per-file time budget.
// On expiry the in-flight analysis finishes in the background and its
// result is discarded.
func (e *Engine) analyzeWithBudget(a lang.Analyzer, rec metrics.FileRecord, content []byte, excludeComments bool) (*metrics.AnalysisResult, bool) {
	if e.fileTimeout <= 0 {
		return a.Analyze(rec, content, excludeComments), true
	}

	done := make(chan *metrics.AnalysisResult, 1)
	go func() {
		done <- a.Analyze(rec, content, excludeComments)
	}()

	timer := time.NewTimer(e.fileTimeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res, true
	case <-timer.C:
		return nil, false
	}
}

// DetectMonoliths runs a scan and shapes it into the ranked monolith
// list.
func (e *Engine) DetectMonoliths(ctx context.Context, req Request) (*report.MonolithList, []Warning, error) {
	outcome, err := e.Scan(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	list := report.BuildMonolithList(outcome.Results, req.MaxLines, req.TopN)
	return &list, outcome.Warnings, nil
}

// Summarize runs a scan and shapes it into the codebase summary.
func (e *Engine) Summarize(ctx context.Context, req Request) (*report.CodebaseSummary, []Warning, error) {
	req.Normalize()
	if req.MaxLines == 0 {
		req.MaxLines = DefaultMaxLines
	}
	outcome, err := e.Scan(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return report.BuildSummary(outcome.Results, req.MaxLines), outcome.Warnings, nil
}

// AnalyzeFile analyzes one file and returns its detail view. Unlike a
// scan, a missing or unsupported file is the whole operation failing.
func (e *Engine) AnalyzeFile(ctx context.Context, path string, excludeComments bool) (*report.FileDetail, []Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(abs))
	language, ok := lang.LanguageForExtension(ext)
	if !ok {
		exts := lang.SupportedExtensions()
		sort.Strings(exts)
		return nil, nil, fmt.Errorf("unsupported file type %q (supported: %s)", ext, strings.Join(exts, " "))
	}

	rec := metrics.FileRecord{
		Path:      abs,
		RelPath:   filepath.Base(abs),
		Language:  language,
		SizeBytes: fi.Size(),
	}
	res, warn := e.analyzeOne(rec, excludeComments)
	var warnings []Warning
	if warn != nil {
		if res == nil {
			return nil, nil, fmt.Errorf("analyzing %s: %s", path, warn.Detail)
		}
		warnings = append(warnings, *warn)
	}
	detail := report.BuildFileDetail(*res)
	return &detail, warnings, nil
}
