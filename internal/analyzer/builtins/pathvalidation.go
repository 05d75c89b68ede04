package builtins

import (
	"strings"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

// pathRedFlags are substrings that indicate an install location the game
// itself is known to misbehave under (§4.2 "not inside OneDrive/Program
// Files").
var pathRedFlags = []string{"OneDrive", "Program Files"}

// PathValidationAnalyzer checks that the configured game root is not
// nested under a known-problematic path (§4.2).
type PathValidationAnalyzer struct{}

func NewPathValidationAnalyzer() *PathValidationAnalyzer { return &PathValidationAnalyzer{} }

func (a *PathValidationAnalyzer) Name() string  { return "PathValidationAnalyzer" }
func (a *PathValidationAnalyzer) Priority() int { return 25 }
func (a *PathValidationAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindFileIntegrity, types.KindCrashLog}
}

func (a *PathValidationAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	root := settings.Get(ctx.Settings, settings.ScopeGame, "game_root", "")

	var children []*report.Fragment
	if root == "" {
		frag := report.Section("Path Validation", 60)
		result := analyzer.OK(a.Name(), time.Since(start), frag)
		result.Metadata["skip_reason"] = "game_root not configured"
		return result
	}

	for _, flag := range pathRedFlags {
		if strings.Contains(root, flag) {
			children = append(children, report.Leaf(report.KindWarning, "Install Location", 0,
				"game root is under a path containing \""+flag+"\", which is known to cause file-locking and permission issues"))
		}
	}

	frag := report.Section("Path Validation", 60, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}
