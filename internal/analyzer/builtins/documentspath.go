package builtins

import (
	"os"
	"path/filepath"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

// IniToggle is one key this analyzer reports the value of within a
// per-game "My Games" INI (§4.2 "key toggles").
type IniToggle struct {
	File string
	Key  string
}

// DocumentsPathAnalyzer locates the per-game "My Games" directory and
// reports the presence of its INI files plus any configured toggles
// (§4.2). It never fails the run when the directory is absent — a
// from-scratch install legitimately has none yet.
type DocumentsPathAnalyzer struct {
	Toggles []IniToggle
}

func NewDocumentsPathAnalyzer(toggles []IniToggle) *DocumentsPathAnalyzer {
	return &DocumentsPathAnalyzer{Toggles: toggles}
}

func (a *DocumentsPathAnalyzer) Name() string  { return "DocumentsPathAnalyzer" }
func (a *DocumentsPathAnalyzer) Priority() int { return 10 }
func (a *DocumentsPathAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindFileIntegrity, types.KindCrashLog}
}

func (a *DocumentsPathAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	myGames := settings.Get(ctx.Settings, settings.ScopeGameLocal, "my_games_path", "")

	var children []*report.Fragment
	if myGames == "" {
		frag := report.Section("Documents Path", 70)
		return analyzer.OK(a.Name(), time.Since(start), frag)
	}

	for _, t := range a.Toggles {
		path := filepath.Join(myGames, t.File)
		data, err := os.ReadFile(path)
		if err != nil {
			children = append(children, report.Leaf(report.KindInfo, t.File, 0, "not found"))
			continue
		}
		present := containsKey(string(data), t.Key)
		status := "not set"
		if present {
			status = "set"
		}
		children = append(children, report.Leaf(report.KindInfo, t.File+": "+t.Key, 1, status))
	}

	frag := report.Section("Documents Path", 70, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

func containsKey(iniText, key string) bool {
	for _, line := range splitLinesSimple(iniText) {
		if len(line) > len(key) && line[:len(key)] == key {
			return true
		}
	}
	return false
}

func splitLinesSimple(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}
