package builtins

import (
	"fmt"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// ConflictRule names two plugins known not to coexist safely.
type ConflictRule struct {
	PluginA, PluginB string
	Severity         types.Severity
	Reason           string
}

// ModConflictAnalyzer flags pairs of installed plugins known to conflict
// (§4.2 "Pairs of plugins known to conflict").
type ModConflictAnalyzer struct {
	Rules []ConflictRule
}

func NewModConflictAnalyzer(rules []ConflictRule) *ModConflictAnalyzer {
	return &ModConflictAnalyzer{Rules: rules}
}

func (a *ModConflictAnalyzer) Name() string  { return "ModConflictAnalyzer" }
func (a *ModConflictAnalyzer) Priority() int { return 45 }
func (a *ModConflictAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *ModConflictAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	var children []*report.Fragment
	for _, rule := range a.Rules {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		_, hasA := ctx.ParsedLog.Plugins.Get(rule.PluginA)
		_, hasB := ctx.ParsedLog.Plugins.Get(rule.PluginB)
		if !hasA || !hasB {
			continue
		}
		kind := report.KindWarning
		if rule.Severity == types.SeverityError || rule.Severity == types.SeverityCritical {
			kind = report.KindError
		}
		title := fmt.Sprintf("%s + %s", rule.PluginA, rule.PluginB)
		children = append(children, report.Leaf(kind, title, 0, rule.Reason))
	}
	frag := report.Section("Plugin Conflicts", 11, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

// RecommendedMod is one entry in the recommended-mods reference table used
// by ImportantModsAnalyzer.
type RecommendedMod struct {
	Plugin string
	Reason string
}

// ImportantModsAnalyzer reports presence/absence of recommended mods
// (§4.2). Presence is reported as info; absence is a warning, not an
// error: a missing recommended mod is a suggestion, not a defect.
type ImportantModsAnalyzer struct {
	Recommended []RecommendedMod
}

func NewImportantModsAnalyzer(recommended []RecommendedMod) *ImportantModsAnalyzer {
	return &ImportantModsAnalyzer{Recommended: recommended}
}

func (a *ImportantModsAnalyzer) Name() string  { return "ImportantModsAnalyzer" }
func (a *ImportantModsAnalyzer) Priority() int { return 20 }
func (a *ImportantModsAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog, types.KindModScan}
}

func (a *ImportantModsAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	var children []*report.Fragment
	for _, mod := range a.Recommended {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		if _, ok := ctx.ParsedLog.Plugins.Get(mod.Plugin); ok {
			children = append(children, report.Leaf(report.KindInfo, mod.Plugin, 0, "installed"))
			continue
		}
		children = append(children, report.Leaf(report.KindWarning, mod.Plugin, 1, "not installed — "+mod.Reason))
	}
	frag := report.Section("Recommended Mods", 12, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}
