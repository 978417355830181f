package preflight

import (
	"context"
	"fmt"
	"path/filepath"

	"propmeta/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if len(cfg.Paths.PackDirs) == 0 {
		results = append(results, Result{Name: "Pack directories", Detail: fmt.Sprintf("none configured (set paths.pack_dirs or %s)", config.PackDirsEnv)})
	}
	for i, dir := range cfg.Paths.PackDirs {
		if ctx.Err() != nil {
			return results
		}
		results = append(results, CheckPackDir(fmt.Sprintf("Pack %d", i+1), dir))
	}

	results = append(results, CheckWritableDir("Output directory", cfg.Paths.OutputDir))

	// Catalog (when configured)
	if cfg.Paths.IndexPath != "" {
		results = append(results, CheckWritableDir("Pack catalog", filepath.Dir(cfg.Paths.IndexPath)))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckWritableDir("Log directory", cfg.Paths.LogDir))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
