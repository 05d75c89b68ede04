package builtins

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// formIDRe matches a Form ID reference in a call-stack line (§8 S2):
// "Form ID: 0x0001A332".
var formIDRe = regexp.MustCompile(`(?i)Form ID:\s*0x([0-9A-Fa-f]{8})`)

// FormIdAnalyzer extracts Form IDs referenced in the call stack, drops
// engine-internal IDs (top byte 0xFF, never issued to a plugin), tallies
// duplicates, and resolves the owning plugin from its load-order slot —
// the top byte of a full-plugin Form ID is that plugin's 2-hex token
// (§4.2, §8 S2/S3).
type FormIdAnalyzer struct {
	// DB optionally maps a Form ID (8 hex chars, uppercase) to a
	// human-readable description, e.g. from an external Form-ID
	// database. Nil is a valid, empty database.
	DB map[string]string
}

func NewFormIdAnalyzer(db map[string]string) *FormIdAnalyzer {
	return &FormIdAnalyzer{DB: db}
}

func (a *FormIdAnalyzer) Name() string  { return "FormIdAnalyzer" }
func (a *FormIdAnalyzer) Priority() int { return 70 }
func (a *FormIdAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *FormIdAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()

	counts := make(map[string]int)
	var order []string
	for _, line := range ctx.ParsedLog.CallStack {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		m := formIDRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id := strings.ToUpper(m[1])
		if strings.HasPrefix(id, "FF") {
			continue // §8 property 2: top byte 0xFF is never a plugin-owned ID.
		}
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}

	// owner maps a plugin's 2-hex load-order token to its name, for
	// resolving which plugin owns a given Form ID's top byte.
	owner := make(map[string]string)
	ctx.ParsedLog.Plugins.Range(func(name, token string) {
		owner[strings.ToUpper(token)] = name
	})

	ids := make([]string, len(order))
	copy(ids, order)
	sort.Strings(ids)

	result := analyzer.OK(a.Name(), time.Since(start), report.Empty())
	result.Metadata["form_ids"] = strings.Join(ids, ",")

	if len(ids) == 0 {
		frag := report.Leaf(report.KindInfo, "Form ID Suspects", 0, "COULDN'T FIND ANY FORM ID SUSPECTS")
		result.Fragment = frag
		result.Severity = frag.Severity()
		return result
	}

	var lines []string
	for _, id := range ids {
		plugin := "UNKNOWN"
		if name, ok := owner[id[:2]]; ok {
			plugin = name
		}
		line := fmt.Sprintf("- Form ID: %s | [%s] | %d", id, plugin, counts[id])
		if desc, ok := a.DB[id]; ok {
			line += " | " + desc
		}
		lines = append(lines, line)
	}
	frag := report.Leaf(report.KindInfo, "Form ID Suspects", 0, strings.Join(lines, "\n"))
	result.Fragment = frag
	result.Severity = frag.Severity()
	result.HasFindings = true
	return result
}
