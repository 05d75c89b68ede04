// Package analyzer defines the pluggable analyzer contract (§3, §6) that
// every crash-log check implements, plus the registry the orchestrator
// uses to discover them by name. Individual checks live under
// internal/analyzer/builtins.
package analyzer

import "github.com/scanner111/scanner111/internal/types"

// Analyzer is one independent, re-entrant, cancellation-aware check run
// against a parsed crash log (§3 Analyzer). Implementations must be safe
// to invoke concurrently from multiple goroutines sharing the same
// AnalysisContext, and must never return without a Result: a
// panic inside Analyze is recovered by the orchestrator and turned into a
// failed-with-error Result, but analyzers should catch their own
// recoverable errors and report them via Failed instead of relying on
// that safety net.
type Analyzer interface {
	// Name is the stable, case-insensitive identifier used for
	// --analyzers flag filtering, logging, and the registry.
	Name() string

	// Priority controls ordering (higher runs, and is listed, first);
	// analyzers with equal priority are ordered by Name.
	Priority() int

	// SupportedKinds lists which AnalysisKind values this analyzer
	// applies to. An orchestrator run for a kind not in this list skips
	// the analyzer rather than invoking it.
	SupportedKinds() []types.AnalysisKind

	// Analyze performs the check. It must return promptly after
	// ctx.Cancelled() becomes true.
	Analyze(ctx *AnalysisContext) *Result
}

// Supports reports whether kind appears in an analyzer's SupportedKinds.
func Supports(a Analyzer, kind types.AnalysisKind) bool {
	for _, k := range a.SupportedKinds() {
		if k == kind {
			return true
		}
	}
	return false
}
