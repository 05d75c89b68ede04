package builtins

import (
	"fmt"
	"strings"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// recordKinds are the named record-type prefixes scanned for in the call
// stack (§4.2 "NPC_, ACTI, ..."). Matching is substring, case-sensitive,
// against the four-letter editor ID convention Bethesda record types use.
var recordKinds = []string{"NPC_", "ACTI", "MISC", "ARMO", "WEAP", "CONT", "DOOR", "FURN"}

// RecordScannerAnalyzer counts references to named record kinds in the
// call stack (§4.2).
type RecordScannerAnalyzer struct{}

func NewRecordScannerAnalyzer() *RecordScannerAnalyzer { return &RecordScannerAnalyzer{} }

func (a *RecordScannerAnalyzer) Name() string  { return "RecordScannerAnalyzer" }
func (a *RecordScannerAnalyzer) Priority() int { return 15 }
func (a *RecordScannerAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *RecordScannerAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	counts := make(map[string]int)
	for _, line := range ctx.ParsedLog.CallStack {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		for _, kind := range recordKinds {
			if strings.Contains(line, kind) {
				counts[kind]++
			}
		}
	}

	var children []*report.Fragment
	for _, kind := range recordKinds {
		if n := counts[kind]; n > 0 {
			children = append(children, report.Leaf(report.KindInfo, kind, 0, fmt.Sprintf("%d reference(s)", n)))
		}
	}
	frag := report.Section("Record References", 30, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}
