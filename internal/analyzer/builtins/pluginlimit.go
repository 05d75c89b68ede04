package builtins

import (
	"fmt"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/parser"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// Plugin-limit thresholds from §8 S4: the engine's hard cap on full
// (non-ESL) plugins is 254 load-order slots (0x00-0xFD; 0xFE is reserved
// for the light-plugin header and 0xFF is never issued).
const (
	pluginLimitWarnAt     = 240
	pluginLimitCriticalAt = 255
)

// pluginLimitState is the classifier named in §4.2's state-machine list.
type pluginLimitState string

const (
	stateUnderThreshold pluginLimitState = "under-threshold"
	stateApproaching    pluginLimitState = "approaching"
	stateExceeded       pluginLimitState = "exceeded"
)

func classifyPluginCount(count int) pluginLimitState {
	switch {
	case count >= pluginLimitCriticalAt:
		return stateExceeded
	case count >= pluginLimitWarnAt:
		return stateApproaching
	default:
		return stateUnderThreshold
	}
}

// PluginLimitAnalyzer counts full (non-ESL) plugins toward the engine's
// load-order cap and classifies the result (§4.2, §8 S4).
type PluginLimitAnalyzer struct{}

func NewPluginLimitAnalyzer() *PluginLimitAnalyzer { return &PluginLimitAnalyzer{} }

func (a *PluginLimitAnalyzer) Name() string  { return "PluginLimitAnalyzer" }
func (a *PluginLimitAnalyzer) Priority() int { return 60 }
func (a *PluginLimitAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *PluginLimitAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	full := 0
	ctx.ParsedLog.Plugins.Range(func(name, token string) {
		if parser.IsFullPlugin(token) {
			full++
		}
	})

	state := classifyPluginCount(full)
	var frag *report.Fragment
	switch state {
	case stateExceeded:
		frag = report.Leaf(report.KindCritical, "Full Plugin Limit Exceeded",
			0, fmt.Sprintf("%d full plugins loaded (limit 254)", full))
	case stateApproaching:
		frag = report.Leaf(report.KindWarning, "Approaching Full Plugin Limit",
			0, fmt.Sprintf("%d full plugins loaded (limit 254)", full))
	default:
		frag = report.Empty()
	}

	result := analyzer.OK(a.Name(), time.Since(start), frag)
	result.Metadata["full_plugin_count"] = fmt.Sprintf("%d", full)
	result.Metadata["state"] = string(state)
	return result
}
