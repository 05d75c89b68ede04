package cache

import (
	"context"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/orchestrator"
)

// IncrementalAnalyzer implements the §6 contract of the same name:
// analyze_incremental, clear_cache, cache_stats. It owns the Cache; the
// Orchestrator is only invoked on a miss.
type IncrementalAnalyzer struct {
	Cache        *Cache
	Orchestrator *orchestrator.Orchestrator
}

// NewIncrementalAnalyzer wires a Cache to an Orchestrator.
func NewIncrementalAnalyzer(c *Cache, o *orchestrator.Orchestrator) *IncrementalAnalyzer {
	return &IncrementalAnalyzer{Cache: c, Orchestrator: o}
}

// AnalyzeIncremental implements §4.5's analyze_incremental: a cache hit
// short-circuits the orchestrator entirely; a miss runs it and, on
// success, stores the fresh result set. Orchestrator failure is
// propagated without touching the cache (§4.5 step 5).
func (ia *IncrementalAnalyzer) AnalyzeIncremental(ctx context.Context, req orchestrator.Request, lines []string, mtime time.Time) (*orchestrator.Result, bool, error) {
	hash := ContentHash(lines)

	if cached, hit := ia.Cache.Lookup(req.InputPath, hash, mtime); hit {
		return &orchestrator.Result{Results: cached}, true, nil
	}

	result := ia.Orchestrator.RunAnalysis(ctx, req)
	if hasOrchestratorFailure(result.Results) {
		return result, false, errOrchestratorFailed(result.Results)
	}

	ia.Cache.Store(req.InputPath, hash, mtime, result.Results)
	return result, false, nil
}

// ClearCache implements §6's clear_cache.
func (ia *IncrementalAnalyzer) ClearCache(path string) {
	ia.Cache.Clear(path)
}

// CacheStats implements §6's cache_stats.
func (ia *IncrementalAnalyzer) CacheStats() Stats {
	return ia.Cache.StatsSnapshot()
}

func hasOrchestratorFailure(results []*analyzer.Result) bool {
	return len(results) == 1 && results[0].AnalyzerName == "orchestrator"
}

func errOrchestratorFailed(results []*analyzer.Result) error {
	if len(results) == 0 {
		return nil
	}
	return &orchestratorError{msg: joinErrors(results[0].Errors)}
}

type orchestratorError struct{ msg string }

func (e *orchestratorError) Error() string { return e.msg }

func joinErrors(errs []string) string {
	if len(errs) == 0 {
		return "orchestrator failed"
	}
	out := errs[0]
	for _, e := range errs[1:] {
		out += "; " + e
	}
	return out
}
