package builtins

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// ExpectedSetting is one entry in the table SettingsAnalyzer compares a
// parsed TOML document against (§4.2 "compares each key to an expected
// value table").
type ExpectedSetting struct {
	File     string // e.g. "Buffout4.toml"
	Key      string // dotted TOML key path
	Expected interface{}
	Reason   string
}

// SettingsAnalyzer parses Buffout4.toml / CrashLogger.toml / EngineFixes.toml
// and compares each configured key to its expected value (§4.2). Files are
// located via the settings view's "mods_root" key joined with File; a
// missing file is skipped, not an error, since not every game has every
// mod installed.
type SettingsAnalyzer struct {
	Expected []ExpectedSetting
}

func NewSettingsAnalyzer(expected []ExpectedSetting) *SettingsAnalyzer {
	return &SettingsAnalyzer{Expected: expected}
}

func (a *SettingsAnalyzer) Name() string  { return "SettingsAnalyzer" }
func (a *SettingsAnalyzer) Priority() int { return 40 }
func (a *SettingsAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog, types.KindFileIntegrity}
}

func (a *SettingsAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()

	byFile := make(map[string][]ExpectedSetting)
	for _, e := range a.Expected {
		byFile[e.File] = append(byFile[e.File], e)
	}

	var children []*report.Fragment
	for file, checks := range byFile {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		doc, err := a.loadTOML(ctx, file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			children = append(children, report.Leaf(report.KindError, file, 0, err.Error()))
			continue
		}
		for _, check := range checks {
			actual, ok := doc[check.Key]
			switch {
			case !ok:
				children = append(children, report.Leaf(report.KindWarning, fmt.Sprintf("%s: %s", file, check.Key),
					1, "missing — "+check.Reason))
			case fmt.Sprintf("%v", actual) != fmt.Sprintf("%v", check.Expected):
				children = append(children, report.Leaf(report.KindWarning, fmt.Sprintf("%s: %s", file, check.Key),
					1, fmt.Sprintf("expected %v, got %v — %s", check.Expected, actual, check.Reason)))
			default:
				children = append(children, report.Leaf(report.KindSuccess, fmt.Sprintf("%s: %s", file, check.Key),
					2, "matches expected value"))
			}
		}
	}

	frag := report.Section("Settings Validation", 40, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

func (a *SettingsAnalyzer) loadTOML(ctx *analyzer.AnalysisContext, file string) (map[string]interface{}, error) {
	root := settingsRootFor(ctx)
	path := root + string(os.PathSeparator) + file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	return flattenTOML(doc, ""), nil
}

// flattenTOML turns a nested TOML document into dotted-key lookups so
// ExpectedSetting.Key can name e.g. "Patches.Achievements" directly.
func flattenTOML(doc map[string]interface{}, prefix string) map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flattenTOML(nested, key) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}
