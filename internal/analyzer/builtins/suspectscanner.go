package builtins

import (
	"fmt"
	"regexp"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// SuspectPattern is one entry in SuspectScannerAnalyzer's reference table:
// a regular expression matched against the main error, and the stable ID
// reported when it hits (§8 S5).
type SuspectPattern struct {
	ID      string
	Pattern *regexp.Regexp
}

// suspectScannerState mirrors the state machine named in §4.2: for each
// configured pattern, unmatched / matched-once / matched-many.
type suspectScannerState string

const (
	suspectUnmatched   suspectScannerState = "unmatched"
	suspectMatchedOnce suspectScannerState = "matched-once"
	suspectMatchedMany suspectScannerState = "matched-many"
)

// defaultSuspectPatterns is the built-in table from §8 S5.
var defaultSuspectPatterns = []SuspectPattern{
	{ID: "MemoryError", Pattern: regexp.MustCompile(`(?i)out of memory`)},
	{ID: "NullReferenceError", Pattern: regexp.MustCompile(`(?i)null pointer`)},
	{ID: "GraphicsError", Pattern: regexp.MustCompile(`(?i)directx error`)},
}

// SuspectScannerAnalyzer matches the main error against a table of known
// crash signatures, each emitted as critical (§4.2, §8 S5).
type SuspectScannerAnalyzer struct {
	Patterns []SuspectPattern
}

// NewSuspectScannerAnalyzer builds a SuspectScannerAnalyzer. A nil/empty
// patterns slice falls back to the built-in table.
func NewSuspectScannerAnalyzer(patterns []SuspectPattern) *SuspectScannerAnalyzer {
	if len(patterns) == 0 {
		patterns = defaultSuspectPatterns
	}
	return &SuspectScannerAnalyzer{Patterns: patterns}
}

func (a *SuspectScannerAnalyzer) Name() string  { return "SuspectScannerAnalyzer" }
func (a *SuspectScannerAnalyzer) Priority() int { return 90 }
func (a *SuspectScannerAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *SuspectScannerAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	mainError := ctx.ParsedLog.MainError

	var children []*report.Fragment
	for _, p := range a.Patterns {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		matches := p.Pattern.FindAllStringIndex(mainError, -1)
		state := suspectUnmatched
		switch {
		case len(matches) == 1:
			state = suspectMatchedOnce
		case len(matches) > 1:
			state = suspectMatchedMany
		}
		if state == suspectUnmatched {
			continue
		}
		content := string(state)
		if p.ID == "GraphicsError" {
			// Absent key is handled defensively (§5): GpuAnalyzer may not
			// have run yet, or may not have found a recognised vendor.
			if vendor, ok := ctx.Shared.Get("gpu_vendor"); ok {
				content = fmt.Sprintf("%s (GPU vendor: %s)", content, vendor)
			}
		}
		children = append(children, report.Leaf(report.KindCritical, p.ID, 0, content))
	}

	frag := report.Section("Suspect Patterns", 1, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}
