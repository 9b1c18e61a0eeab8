package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/codewatch/internal/config"
	"github.com/blackwell-systems/codewatch/internal/engine"
	"github.com/blackwell-systems/codewatch/internal/exclude"
	"github.com/blackwell-systems/codewatch/internal/output"
	"github.com/blackwell-systems/codewatch/internal/store"
)

// buildEngine loads configuration and assembles an engine from it plus
// the global flags. The returned cleanup closes the cache database and
// is safe to call when no cache was opened.
func buildEngine() (*engine.Engine, *config.Config, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if !cfg.Output.Color {
		output.SetNoColor(true)
	}

	rules, err := exclude.New(cfg.Exclusions.Dirs, cfg.Exclusions.FilePatterns)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("exclusion rules: %w", err)
	}

	opts := []engine.Option{
		engine.WithFileTimeout(time.Duration(cfg.Scan.TimeoutSeconds) * time.Second),
	}

	workers := cfg.Scan.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	opts = append(opts, engine.WithWorkers(workers))

	cleanup := func() {}
	if cfg.Cache.Enabled && !flagNoCache {
		db, err := store.Open(cfg.Cache.Path)
		if err != nil {
			// A broken cache shouldn't block analysis.
			if flagVerbose {
				fmt.Println(output.StyleMuted.Render(fmt.Sprintf("cache unavailable: %v", err)))
			}
		} else {
			opts = append(opts, engine.WithCache(db))
			cleanup = func() { _ = db.Close() }
		}
	}

	return engine.New(rules, opts...), cfg, cleanup, nil
}

// printWarnings renders scan warnings in verbose mode; otherwise just a
// one-line count so reports stay clean.
func printWarnings(warnings []engine.Warning) {
	if len(warnings) == 0 {
		return
	}
	if !flagVerbose {
		fmt.Println(output.StyleMuted.Render(fmt.Sprintf("\n %d warning(s); rerun with --verbose for details", len(warnings))))
		return
	}
	fmt.Println(output.Section("Warnings"))
	for _, w := range warnings {
		detail := w.Detail
		if detail != "" {
			detail = ": " + detail
		}
		fmt.Printf(" %s %s%s\n",
			output.StyleWarning.Render(w.Kind),
			w.Path,
			output.StyleMuted.Render(detail))
	}
}
