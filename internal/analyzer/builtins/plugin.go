// Package builtins implements the twelve built-in analyzers named in §4.2,
// each grounded on a lookup-table-plus-fragment-emission pattern: scan one
// slice of the parsed log, compare against a small reference table, and
// build a report.Fragment describing any hits. None of them perform I/O
// beyond what's already been read into the ParsedCrashLog, except
// SettingsAnalyzer, GameIntegrityAnalyzer, DocumentsPathAnalyzer, and
// ModFileScanAnalyzer, which are explicitly allowed to stat/read files or
// directories named by the log or settings (§4.2 "reading the files already
// referenced by the log").
package builtins

import (
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// PluginWarning is one entry in the suspect-plugin reference table.
type PluginWarning struct {
	Plugin   string
	Severity types.Severity
	Reason   string
}

// PluginAnalyzer flags individual plugins known to cause trouble, from a
// small warning table (§4.2 "Suspect single plugins via warning DB").
type PluginAnalyzer struct {
	Warnings []PluginWarning
}

// NewPluginAnalyzer builds a PluginAnalyzer over the given warning table.
func NewPluginAnalyzer(warnings []PluginWarning) *PluginAnalyzer {
	return &PluginAnalyzer{Warnings: warnings}
}

func (a *PluginAnalyzer) Name() string     { return "PluginAnalyzer" }
func (a *PluginAnalyzer) Priority() int    { return 50 }
func (a *PluginAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *PluginAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	var children []*report.Fragment
	for _, w := range a.Warnings {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		if _, ok := ctx.ParsedLog.Plugins.Get(w.Plugin); !ok {
			continue
		}
		kind := report.KindInfo
		if w.Severity == types.SeverityWarning || w.Severity == types.SeverityError || w.Severity == types.SeverityCritical {
			kind = report.KindWarning
		}
		children = append(children, report.Leaf(kind, w.Plugin, 0, w.Reason))
	}
	frag := report.Section("Suspect Plugins", 10, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

// timeNow exists so builtins measure their own duration without reaching
// for a shared Clock abstraction the host doesn't need for this purpose.
func timeNow() time.Time { return time.Now() }
