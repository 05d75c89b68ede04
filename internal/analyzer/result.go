package analyzer

import (
	"time"

	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// Result is what an Analyzer hands back to the orchestrator (§3
// AnalysisResult). Analyzers never return a Go error from Analyze: any
// internal failure is caught and folded into Status/Errors so one
// misbehaving analyzer can't abort the run.
type Result struct {
	AnalyzerName string
	Duration     time.Duration
	Status       types.AnalyzerStatus
	Severity     types.Severity
	HasFindings  bool
	Fragment     *report.Fragment
	Errors       []string
	Metadata     map[string]string
}

// OK builds a successful Result from a rendered fragment, deriving
// Severity and HasFindings from the fragment tree itself so analyzers
// don't have to compute them twice.
func OK(name string, dur time.Duration, frag *report.Fragment) *Result {
	return &Result{
		AnalyzerName: name,
		Duration:     dur,
		Status:       types.StatusOK,
		Severity:     frag.Severity(),
		HasFindings:  frag.HasContent(),
		Fragment:     frag,
		Metadata:     map[string]string{},
	}
}

// Failed builds a failed-with-error Result. It records the duration and
// the error message; its fragment is always empty.
func Failed(name string, dur time.Duration, err error) *Result {
	return &Result{
		AnalyzerName: name,
		Duration:     dur,
		Status:       types.StatusFailed,
		Severity:     types.SeverityError,
		Fragment:     report.Empty(),
		Errors:       []string{err.Error()},
		Metadata:     map[string]string{},
	}
}

// Skipped builds a Result for an analyzer that declined to run (wrong
// AnalysisKind, or cancellation observed before starting real work).
func Skipped(name, reason string) *Result {
	return &Result{
		AnalyzerName: name,
		Status:       types.StatusSkipped,
		Severity:     types.SeverityNone,
		Fragment:     report.Empty(),
		Metadata:     map[string]string{"skip_reason": reason},
	}
}
